package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"lessonquiz/internal/logger"
	"lessonquiz/internal/service"
	"lessonquiz/internal/transport/rest/middleware"
)

// ProgressHandler handles lesson completion endpoints
type ProgressHandler struct {
	progressSvc *service.ProgressService
	log         logger.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressSvc *service.ProgressService, log logger.Logger) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc, log: log}
}

// Complete handles POST /v1/lessons/{lessonId}/complete
//
//	@Summary	Mark a lesson complete
//	@Description	Lessons with a quiz require a passing attempt first.
//	@Tags		learners
//	@Produce	json
//	@Security	BearerAuth
//	@Param		lessonId	path		string	true	"lesson id"
//	@Success	200			{object}	model.LessonProgress
//	@Failure	403			{object}	ErrorResponse
//	@Router		/lessons/{lessonId}/complete [post]
func (h *ProgressHandler) Complete(w http.ResponseWriter, r *http.Request) {
	learner, ok := middleware.GetLearner(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	progress, err := h.progressSvc.CompleteLesson(r.Context(), learner.ID, mux.Vars(r)["lessonId"])
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// List handles GET /v1/me/progress
//
//	@Summary	Lessons the caller has completed
//	@Tags		learners
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	model.LessonProgress
//	@Router		/me/progress [get]
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	learner, ok := middleware.GetLearner(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	progress, err := h.progressSvc.ListCompleted(r.Context(), learner.ID)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}
