package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessonquiz/internal/logger"
	"lessonquiz/internal/model"
	"lessonquiz/internal/notify"
	"lessonquiz/internal/repository/memory"
	"lessonquiz/internal/scoring"
	"lessonquiz/internal/service"
	"lessonquiz/internal/transport/ws"
	"lessonquiz/internal/validation"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
	admin   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := logger.Discard()
	db := memory.Open()
	attempts := memory.NewAttemptRepo(db)

	auth, err := service.NewAuthService(service.AuthConfig{AdminUsername: "admin", AdminPassword: "pw", JWTSecret: "secret"})
	require.NoError(t, err)
	quiz := service.NewQuizService(memory.NewQuestionRepo(db), attempts, memory.NewQuestionCache(), memory.NewBoardCache(),
		notify.NewConsoleNotifier("Test", log), scoring.DefaultPassThreshold, log)
	hub := ws.NewHub(log)
	quiz.SetBroadcaster(hub)

	api := &testAPI{t: t}
	api.handler = NewRouter(&Container{
		AuthService:     auth,
		QuizService:     quiz,
		ProgressService: service.NewProgressService(memory.NewProgressRepo(db), attempts, quiz),
		WSHub:           hub,
		Validator:       validation.New(),
		Logger:          log,
	})

	var login model.LoginResponse
	api.do("POST", "/v1/auth/login", "", model.LoginRequest{Username: "admin", Password: "pw"}, http.StatusOK, &login)
	api.admin = login.Token
	return api
}

func (a *testAPI) do(method, path, token string, body interface{}, wantStatus int, out interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	require.Equal(a.t, wantStatus, rec.Code, rec.Body.String())
	if out != nil {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func (a *testAPI) seed(lessonID string, correct ...string) []string {
	ids := make([]string, 0, len(correct))
	for _, c := range correct {
		var q model.LessonQuestion
		a.do("POST", "/v1/quizzes", a.admin, model.QuestionInput{
			LessonID:      lessonID,
			QuestionText:  "question",
			Options:       []string{"a", "b", "c"},
			CorrectAnswer: c,
			Explanation:   "because",
		}, http.StatusCreated, &q)
		ids = append(ids, q.ID)
	}
	return ids
}

func (a *testAPI) enroll() string {
	var resp model.EnrollResponse
	a.do("POST", "/v1/auth/learners", "", model.EnrollRequest{Name: "Ada", Email: "ada@example.com"}, http.StatusCreated, &resp)
	return resp.Token
}

func TestHealthAndDoc(t *testing.T) {
	api := newTestAPI(t)
	api.do("GET", "/health", "", nil, http.StatusOK, nil)

	var doc map[string]interface{}
	api.do("GET", "/swagger/doc.json", "", nil, http.StatusOK, &doc)
	assert.Equal(t, "/v1", doc["basePath"])
	assert.Contains(t, doc["paths"], "/quizzes/submit")
}

func TestLearnerFlow(t *testing.T) {
	api := newTestAPI(t)
	ids := api.seed("lesson-1", "0", "1", "2")
	learner := api.enroll()

	var raw []model.RawQuestion
	api.do("GET", "/v1/quizzes/lesson/lesson-1", "", nil, http.StatusOK, &raw)
	require.Len(t, raw, 3)
	q, err := raw[0].Normalize()
	require.NoError(t, err)
	assert.Equal(t, ids[0], q.ID)
	assert.Equal(t, []model.Option{{ID: "0", Text: "a"}, {ID: "1", Text: "b"}, {ID: "2", Text: "c"}}, q.Options)

	var errResp struct {
		Error string `json:"error"`
	}
	api.do("POST", "/v1/lessons/lesson-1/complete", learner, nil, http.StatusForbidden, &errResp)

	incomplete := map[string]string{ids[0]: "0", ids[1]: "1"}
	api.do("POST", "/v1/quizzes/submit", learner, model.SubmitRequest{LessonID: "lesson-1", Answers: incomplete}, http.StatusBadRequest, &errResp)
	assert.Equal(t, service.ErrIncompleteAnswers.Error(), errResp.Error)

	var result model.ScoreResult
	answers := map[string]string{ids[0]: "0", ids[1]: "1", ids[2]: "0"}
	api.do("POST", "/v1/quizzes/submit", learner, model.SubmitRequest{LessonID: "lesson-1", Answers: answers}, http.StatusOK, &result)
	assert.Equal(t, 67, result.Score)
	assert.False(t, result.Passed)
	assert.False(t, result.QuestionResults[ids[2]])

	answers[ids[2]] = "2"
	api.do("POST", "/v1/quizzes/submit", learner, model.SubmitRequest{LessonID: "lesson-1", Answers: answers}, http.StatusOK, &result)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)

	var progress model.LessonProgress
	api.do("POST", "/v1/lessons/lesson-1/complete", learner, nil, http.StatusOK, &progress)
	assert.Equal(t, "lesson-1", progress.LessonID)

	var done []model.LessonProgress
	api.do("GET", "/v1/me/progress", learner, nil, http.StatusOK, &done)
	assert.Len(t, done, 1)

	var mine []model.Attempt
	api.do("GET", "/v1/me/attempts/lesson-1", learner, nil, http.StatusOK, &mine)
	assert.Len(t, mine, 2)

	var board []model.BoardEntry
	api.do("GET", "/v1/lessons/lesson-1/leaderboard?top=5", api.admin, nil, http.StatusOK, &board)
	require.Len(t, board, 1)
	assert.Equal(t, 100, board[0].Score)
	assert.Equal(t, "Ada", board[0].Name)
}

func TestSubmitUnknownLesson(t *testing.T) {
	api := newTestAPI(t)
	learner := api.enroll()
	api.do("POST", "/v1/quizzes/submit", learner,
		model.SubmitRequest{LessonID: "missing", Answers: map[string]string{"q": "0"}}, http.StatusNotFound, nil)
}

func TestRoleChecks(t *testing.T) {
	api := newTestAPI(t)
	learner := api.enroll()

	api.do("POST", "/v1/quizzes/submit", "", model.SubmitRequest{}, http.StatusUnauthorized, nil)
	api.do("POST", "/v1/quizzes/submit", api.admin, model.SubmitRequest{}, http.StatusUnauthorized, nil)
	api.do("POST", "/v1/quizzes", learner, model.QuestionInput{}, http.StatusUnauthorized, nil)
	api.do("GET", "/v1/lessons/l/attempts", learner, nil, http.StatusUnauthorized, nil)
	api.do("POST", "/v1/auth/login", "", model.LoginRequest{Username: "admin", Password: "nope"}, http.StatusUnauthorized, nil)
}

func TestValidationErrors(t *testing.T) {
	api := newTestAPI(t)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	api.do("POST", "/v1/quizzes", api.admin, model.QuestionInput{
		LessonID: "l", Options: []string{"only"}, CorrectAnswer: "0",
	}, http.StatusBadRequest, &resp)
	assert.Contains(t, resp.Fields, "questionText")
	assert.Contains(t, resp.Fields, "options")

	api.do("POST", "/v1/quizzes", api.admin, model.QuestionInput{
		LessonID: "l", QuestionText: "t", Options: []string{"a", "b"}, CorrectAnswer: "5",
	}, http.StatusBadRequest, &resp)
	assert.Equal(t, service.ErrInvalidCorrectAnswer.Error(), resp.Error)

	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/auth/learners", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminQuestionManagement(t *testing.T) {
	api := newTestAPI(t)
	ids := api.seed("lesson-2", "0", "1")

	var reordered []model.LessonQuestion
	api.do("PUT", "/v1/quizzes/lesson/lesson-2/order", api.admin,
		model.ReorderRequest{QuestionIDs: []string{ids[1], ids[0]}}, http.StatusOK, &reordered)
	require.Len(t, reordered, 2)
	assert.Equal(t, ids[1], reordered[0].ID)

	api.do("PUT", "/v1/quizzes/lesson/lesson-2/order", api.admin,
		model.ReorderRequest{QuestionIDs: []string{ids[1]}}, http.StatusBadRequest, nil)

	var updated model.LessonQuestion
	api.do("PUT", "/v1/quizzes/"+ids[0], api.admin, model.QuestionInput{
		LessonID: "lesson-2", QuestionText: "edited", Options: []string{"x", "y"}, CorrectAnswer: "1",
	}, http.StatusOK, &updated)
	assert.Equal(t, "edited", updated.QuestionText)

	api.do("DELETE", "/v1/quizzes/"+ids[0], api.admin, nil, http.StatusNoContent, nil)
	api.do("DELETE", "/v1/quizzes/"+ids[0], api.admin, nil, http.StatusNotFound, nil)

	var left []model.LessonQuestion
	api.do("GET", "/v1/quizzes/lesson/lesson-2", "", nil, http.StatusOK, &left)
	require.Len(t, left, 1)
	assert.Equal(t, ids[1], left[0].ID)

	api.do("GET", "/v1/lessons/lesson-2/leaderboard?top=zero", api.admin, nil, http.StatusBadRequest, nil)
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do("OPTIONS", "/v1/quizzes/submit", "", nil, http.StatusOK, nil)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
