package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"lessonquiz/internal/logger"
	"lessonquiz/internal/model"
	"lessonquiz/internal/service"
	"lessonquiz/internal/transport/rest/middleware"
	"lessonquiz/internal/validation"
)

const defaultBoardSize = 10

// QuizHandler handles quiz endpoints for learners and admins
type QuizHandler struct {
	quizSvc   *service.QuizService
	validator *validation.Validator
	log       logger.Logger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService, validator *validation.Validator, log logger.Logger) *QuizHandler {
	return &QuizHandler{
		quizSvc:   quizSvc,
		validator: validator,
		log:       log,
	}
}

// LessonQuestions handles GET /v1/quizzes/lesson/{lessonId}
//
//	@Summary	Questions of a lesson quiz, in order
//	@Tags		quizzes
//	@Produce	json
//	@Param		lessonId	path		string	true	"lesson id"
//	@Success	200			{array}		model.LessonQuestion
//	@Router		/quizzes/lesson/{lessonId} [get]
func (h *QuizHandler) LessonQuestions(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["lessonId"]

	questions, err := h.quizSvc.GetLessonQuestions(r.Context(), lessonID)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// Submit handles POST /v1/quizzes/submit
//
//	@Summary	Grade a complete set of answers
//	@Tags		quizzes
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		model.SubmitRequest	true	"answers by question id"
//	@Success	200		{object}	model.ScoreResult
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/quizzes/submit [post]
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	learner, ok := middleware.GetLearner(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.SubmitRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	result, err := h.quizSvc.Submit(r.Context(), learner, &req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// MyAttempts handles GET /v1/me/attempts/{lessonId}
//
//	@Summary	The caller's attempts at a lesson, newest first
//	@Tags		learners
//	@Produce	json
//	@Security	BearerAuth
//	@Param		lessonId	path	string	true	"lesson id"
//	@Success	200			{array}	model.Attempt
//	@Router		/me/attempts/{lessonId} [get]
func (h *QuizHandler) MyAttempts(w http.ResponseWriter, r *http.Request) {
	learner, ok := middleware.GetLearner(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	attempts, err := h.quizSvc.LearnerAttempts(r.Context(), learner.ID, mux.Vars(r)["lessonId"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, attempts)
}

// Create handles POST /v1/quizzes
//
//	@Summary	Append a question to a lesson
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		model.QuestionInput	true	"question"
//	@Success	201		{object}	model.LessonQuestion
//	@Failure	400		{object}	ErrorResponse
//	@Router		/quizzes [post]
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.QuestionInput
	if !decode(w, r, h.validator, &in) {
		return
	}

	q, err := h.quizSvc.CreateQuestion(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	h.log.Info("[REST] question created", q.ID, q.LessonID, middleware.GetAdminID(r.Context()))
	writeJSON(w, http.StatusCreated, q)
}

// Update handles PUT /v1/quizzes/{questionId}
//
//	@Summary	Replace a question
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		questionId	path		string				true	"question id"
//	@Param		body		body		model.QuestionInput	true	"question"
//	@Success	200			{object}	model.LessonQuestion
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/quizzes/{questionId} [put]
func (h *QuizHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in model.QuestionInput
	if !decode(w, r, h.validator, &in) {
		return
	}

	q, err := h.quizSvc.UpdateQuestion(r.Context(), mux.Vars(r)["questionId"], in)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// Delete handles DELETE /v1/quizzes/{questionId}
//
//	@Summary	Delete a question
//	@Tags		admin
//	@Security	BearerAuth
//	@Param		questionId	path	string	true	"question id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/quizzes/{questionId} [delete]
func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.quizSvc.DeleteQuestion(r.Context(), mux.Vars(r)["questionId"]); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles PUT /v1/quizzes/lesson/{lessonId}/order
//
//	@Summary	Reorder a lesson's questions
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		lessonId	path	string					true	"lesson id"
//	@Param		body		body	model.ReorderRequest	true	"every question id, in the new order"
//	@Success	200			{array}	model.LessonQuestion
//	@Failure	400			{object}	ErrorResponse
//	@Router		/quizzes/lesson/{lessonId}/order [put]
func (h *QuizHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req model.ReorderRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	questions, err := h.quizSvc.ReorderQuestions(r.Context(), mux.Vars(r)["lessonId"], req.QuestionIDs)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// Attempts handles GET /v1/lessons/{lessonId}/attempts
//
//	@Summary	Every attempt at a lesson, newest first
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		lessonId	path	string	true	"lesson id"
//	@Success	200			{array}	model.Attempt
//	@Router		/lessons/{lessonId}/attempts [get]
func (h *QuizHandler) Attempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.quizSvc.ListAttempts(r.Context(), mux.Vars(r)["lessonId"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, attempts)
}

// Leaderboard handles GET /v1/lessons/{lessonId}/leaderboard
//
//	@Summary	Best score per learner
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		lessonId	path	string	true	"lesson id"
//	@Param		top			query	int		false	"rows to return (default 10)"
//	@Success	200			{array}	model.BoardEntry
//	@Router		/lessons/{lessonId}/leaderboard [get]
func (h *QuizHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	top := defaultBoardSize
	if s := r.URL.Query().Get("top"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		top = n
	}

	entries, err := h.quizSvc.Leaderboard(r.Context(), mux.Vars(r)["lessonId"], top)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
