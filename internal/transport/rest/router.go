// Package rest exposes the quiz service over HTTP.
package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	_ "lessonquiz/internal/docs"
	"lessonquiz/internal/logger"
	"lessonquiz/internal/service"
	"lessonquiz/internal/transport/rest/handler"
	"lessonquiz/internal/transport/rest/middleware"
	"lessonquiz/internal/transport/ws"
	"lessonquiz/internal/validation"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	QuizService        *service.QuizService
	ProgressService    *service.ProgressService
	WSHub              *ws.Hub
	Validator          *validation.Validator
	Logger             logger.Logger
	CORSAllowedOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.Validator, c.Logger)
	quizHandler := handler.NewQuizHandler(c.QuizService, c.Validator, c.Logger)
	progressHandler := handler.NewProgressHandler(c.ProgressService, c.Logger)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSAllowedOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			c.Logger.Error("[REST] read api doc", err)
			http.Error(w, `{"error":"api document unavailable"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/learners", authHandler.Enroll).Methods("POST", "OPTIONS")
	v1.HandleFunc("/quizzes/lesson/{lessonId}", quizHandler.LessonQuestions).Methods("GET", "OPTIONS")

	// WebSocket routes (admin token in query param)
	v1.HandleFunc("/ws/lessons/{lessonId}", wsHandler.LessonWS).Methods("GET")

	// Learner routes (require learner auth)
	learnerRoutes := v1.NewRoute().Subrouter()
	learnerRoutes.Use(authMW.RequireLearner)

	learnerRoutes.HandleFunc("/quizzes/submit", quizHandler.Submit).Methods("POST", "OPTIONS")
	learnerRoutes.HandleFunc("/lessons/{lessonId}/complete", progressHandler.Complete).Methods("POST", "OPTIONS")
	learnerRoutes.HandleFunc("/me/progress", progressHandler.List).Methods("GET", "OPTIONS")
	learnerRoutes.HandleFunc("/me/attempts/{lessonId}", quizHandler.MyAttempts).Methods("GET", "OPTIONS")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/quizzes", quizHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/quizzes/lesson/{lessonId}/order", quizHandler.Reorder).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/quizzes/{questionId}", quizHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/quizzes/{questionId}", quizHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/lessons/{lessonId}/attempts", quizHandler.Attempts).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/lessons/{lessonId}/leaderboard", quizHandler.Leaderboard).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
