package handler

import (
	"net/http"

	"lessonquiz/internal/logger"
	"lessonquiz/internal/model"
	"lessonquiz/internal/service"
	"lessonquiz/internal/validation"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc   *service.AuthService
	validator *validation.Validator
	log       logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService, validator *validation.Validator, log logger.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, validator: validator, log: log}
}

// Login handles POST /v1/auth/login
//
//	@Summary	Admin login
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.LoginRequest	true	"credentials"
//	@Success	200		{object}	model.LoginResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Enroll handles POST /v1/auth/learners
//
//	@Summary	Enroll a learner and issue a learner token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		model.EnrollRequest	true	"learner"
//	@Success	201		{object}	model.EnrollResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/auth/learners [post]
func (h *AuthHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req model.EnrollRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	resp, err := h.authSvc.Enroll(req.Name, req.Email)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
