package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMissingQuestionID   = errors.New("question has no id")
	ErrMissingQuestionText = errors.New("question has no text")
	ErrMalformedOption     = errors.New("option is neither a string nor an object with text")
	ErrNoOptions           = errors.New("question has no options")
)

// TextValue decodes either a JSON string or an object with a "text" member.
type TextValue struct {
	Text  string
	Valid bool
}

func (t *TextValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = TextValue{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TextValue{Text: s, Valid: true}
		return nil
	}
	var obj struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.Wrap(err, "text value")
	}
	if obj.Text == nil {
		*t = TextValue{}
		return nil
	}
	*t = TextValue{Text: *obj.Text, Valid: true}
	return nil
}

// Scalar decodes a JSON string or number into its string form.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Scalar(v)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return errors.Wrap(err, "scalar value")
		}
		*s = Scalar(n.String())
	}
	return nil
}

// RawQuestion is the question payload as received from
// GET /quizzes/lesson/{lessonId}. It is only ever used to build a Question.
type RawQuestion struct {
	ID            Scalar            `json:"id"`
	QuestionText  TextValue         `json:"questionText"`
	Question      TextValue         `json:"question"`
	Options       []json.RawMessage `json:"options"`
	CorrectAnswer Scalar            `json:"correctAnswer"`
	Explanation   string            `json:"explanation"`
}

// Normalize validates the payload and produces the single internal shape.
func (r RawQuestion) Normalize() (Question, error) {
	id := strings.TrimSpace(string(r.ID))
	if id == "" {
		return Question{}, ErrMissingQuestionID
	}

	// a blank questionText counts as absent
	text := r.QuestionText
	if !text.Valid || strings.TrimSpace(text.Text) == "" {
		text = r.Question
	}
	if !text.Valid || strings.TrimSpace(text.Text) == "" {
		return Question{}, errors.Wrapf(ErrMissingQuestionText, "question %s", id)
	}

	if len(r.Options) == 0 {
		return Question{}, errors.Wrapf(ErrNoOptions, "question %s", id)
	}
	texts := make([]string, 0, len(r.Options))
	for i, raw := range r.Options {
		var tv TextValue
		if err := json.Unmarshal(raw, &tv); err != nil || !tv.Valid {
			return Question{}, errors.Wrapf(ErrMalformedOption, "question %s option %d", id, i)
		}
		texts = append(texts, tv.Text)
	}

	return Question{
		ID:            id,
		Text:          text.Text,
		Options:       PositionalOptions(texts),
		CorrectAnswer: strings.TrimSpace(string(r.CorrectAnswer)),
		Explanation:   r.Explanation,
	}, nil
}
