package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessonquiz/internal/model"
)

const mixedPayload = `[
  {"id": "q1", "questionText": "Plain text?", "options": ["a", "b"], "correctAnswer": "1", "explanation": "b it is"},
  {"id": 2, "question": {"text": "Nested text?"}, "options": [{"text": "x"}, "y", {"text": "z"}], "correctAnswer": 2},
  {"id": "q3", "questionText": "Bad option", "options": ["ok", 42], "correctAnswer": "0"},
  {"questionText": "No id", "options": ["a"], "correctAnswer": "0"},
  {"id": "q5", "question": {"title": "no text member"}, "options": ["a"], "correctAnswer": "0"},
  {"id": "q6", "questionText": "No options", "correctAnswer": "0"},
  {"id": "q7", "questionText": "Empty options", "options": [], "correctAnswer": "0"},
  {"id": "q8", "questionText": "", "question": "Fallback text?", "options": ["a", "b"], "correctAnswer": "0"},
  "not an object"
]`

func TestLessonQuestionsNormalizesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/quizzes/lesson/lesson%2F1", r.URL.EscapedPath())
		w.Write([]byte(mixedPayload))
	}))
	defer srv.Close()

	qs, err := New(srv.URL+"/v1").LessonQuestions(context.Background(), "lesson/1")
	require.NoError(t, err)
	require.Len(t, qs, 3)

	assert.Equal(t, model.Question{
		ID:            "q1",
		Text:          "Plain text?",
		Options:       []model.Option{{ID: "0", Text: "a"}, {ID: "1", Text: "b"}},
		CorrectAnswer: "1",
		Explanation:   "b it is",
	}, qs[0])

	assert.Equal(t, "2", qs[1].ID)
	assert.Equal(t, "Nested text?", qs[1].Text)
	assert.Equal(t, "2", qs[1].CorrectAnswer)
	require.Len(t, qs[1].Options, 3)
	assert.Equal(t, model.Option{ID: "1", Text: "y"}, qs[1].Options[1])

	assert.Equal(t, "q8", qs[2].ID)
	assert.Equal(t, "Fallback text?", qs[2].Text)
	for _, q := range qs {
		assert.NotEmpty(t, q.Options, q.ID)
	}
}

func TestLessonQuestionsRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	qs, err := New(srv.URL).LessonQuestions(context.Background(), "l1")
	require.NoError(t, err)
	assert.Empty(t, qs)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLessonQuestionsDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"lesson has no quiz"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).LessonQuestions(context.Background(), "l1")
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "lesson has no quiz", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestEnrollThenSubmit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/learners", func(w http.ResponseWriter, r *http.Request) {
		var req model.EnrollRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ada", req.Name)
		json.NewEncoder(w).Encode(model.EnrollResponse{Token: "tok", LearnerID: "learner_1"})
	})
	mux.HandleFunc("/quizzes/submit", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var req model.SubmitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "l1", req.LessonID)
		assert.Equal(t, map[string]string{"q1": "1"}, req.Answers)
		json.NewEncoder(w).Encode(model.ScoreResult{Score: 100, TotalQuestions: 1, CorrectAnswers: 1, Passed: true,
			QuestionResults: map[string]bool{"q1": true}})
	})
	mux.HandleFunc("/lessons/l1/complete", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(model.LessonProgress{LearnerID: "learner_1", LessonID: "l1"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()
	enrolled, err := c.Enroll(ctx, "Ada", "")
	require.NoError(t, err)
	assert.Equal(t, "learner_1", enrolled.LearnerID)

	res, err := c.SubmitQuiz(ctx, "l1", map[string]string{"q1": "1"})
	require.NoError(t, err)
	assert.True(t, res.Passed)

	progress, err := c.CompleteLesson(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "l1", progress.LessonID)
}

func TestSubmitIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithToken("tok")).SubmitQuiz(context.Background(), "l1", map[string]string{"q": "0"})
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "upstream down", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
