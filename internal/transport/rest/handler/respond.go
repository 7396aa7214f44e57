package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"lessonquiz/internal/logger"
	"lessonquiz/internal/service"
	"lessonquiz/internal/validation"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// decode reads a JSON body into v and runs struct validation on it.
func decode(w http.ResponseWriter, r *http.Request, vd *validation.Validator, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := vd.Struct(v); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Fields: verr.Fields})
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeServiceError maps service sentinels to status codes. Anything
// unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error) {
	switch errors.Cause(err) {
	case service.ErrLessonNotFound, service.ErrQuestionNotFound:
		writeError(w, http.StatusNotFound, errors.Cause(err).Error())
	case service.ErrIncompleteAnswers, service.ErrUnknownQuestion,
		service.ErrInvalidCorrectAnswer, service.ErrInvalidOrder:
		writeError(w, http.StatusBadRequest, errors.Cause(err).Error())
	case service.ErrQuizNotPassed:
		writeError(w, http.StatusForbidden, errors.Cause(err).Error())
	case service.ErrInvalidCredentials, service.ErrInvalidToken:
		writeError(w, http.StatusUnauthorized, errors.Cause(err).Error())
	default:
		log.Error("[REST] request failed", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
