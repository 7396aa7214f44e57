package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lessonquiz/internal/model"
)

func threeQuestions() []model.Question {
	opts := model.PositionalOptions([]string{"a", "b", "c", "d"})
	return []model.Question{
		{ID: "q1", Text: "one", Options: opts, CorrectAnswer: "1"},
		{ID: "q2", Text: "two", Options: opts, CorrectAnswer: "0"},
		{ID: "q3", Text: "three", Options: opts, CorrectAnswer: "3"},
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name           string
		correct, total int
		wantScore      int
		wantPassed     bool
	}{
		{"two of three", 2, 3, 67, false},
		{"all correct", 3, 3, 100, true},
		{"exactly seventy", 7, 10, 70, true},
		{"just under", 69, 100, 69, false},
		{"none", 0, 4, 0, false},
		{"no questions", 0, 0, 0, false},
		{"over count clamps", 5, 4, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(tt.correct, tt.total, DefaultPassThreshold)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantPassed, got.Passed)
		})
	}
}

func TestGradeMatchesRatio(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for correct := 0; correct <= total; correct++ {
			got := Grade(correct, total, DefaultPassThreshold)
			want := correct*10 >= 7*total
			assert.Equal(t, want, got.Passed, "%d/%d", correct, total)
		}
	}
}

func TestGradeAnswers(t *testing.T) {
	qs := threeQuestions()

	res := GradeAnswers(qs, map[string]string{"q1": "1", "q2": "0", "q3": "2"}, DefaultPassThreshold)
	assert.Equal(t, 67, res.Score)
	assert.Equal(t, 2, res.CorrectAnswers)
	assert.Equal(t, 3, res.TotalQuestions)
	assert.False(t, res.Passed)
	assert.Equal(t, map[string]bool{"q1": true, "q2": true, "q3": false}, res.QuestionResults)

	res = GradeAnswers(qs, map[string]string{"q1": "1", "q2": "0", "q3": "3"}, DefaultPassThreshold)
	assert.Equal(t, 100, res.Score)
	assert.True(t, res.Passed)
}

func TestGradeAnswersUnansweredIsWrong(t *testing.T) {
	qs := []model.Question{{ID: "q1", CorrectAnswer: ""}}
	res := GradeAnswers(qs, map[string]string{}, DefaultPassThreshold)
	assert.False(t, res.QuestionResults["q1"])
	assert.Equal(t, 0, res.CorrectAnswers)
}
