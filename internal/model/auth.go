package model

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin   = "admin"
	RoleLearner = "learner"
)

// AdminClaims are JWT claims for back-office authentication
type AdminClaims struct {
	AdminID string `json:"adminId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// LearnerClaims are JWT claims for a learner taking quizzes
type LearnerClaims struct {
	LearnerID string `json:"learnerId"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Learner returns the identity carried by the claims.
func (c *LearnerClaims) Learner() Learner {
	return Learner{ID: c.LearnerID, Name: c.Name, Email: c.Email}
}

// Learner identifies whoever is taking a quiz.
type Learner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}

// EnrollRequest is the request body for learner enrollment
type EnrollRequest struct {
	Name  string `json:"name" validate:"required,max=80"`
	Email string `json:"email" validate:"omitempty,email"`
}

// EnrollResponse carries a learner-scoped token
type EnrollResponse struct {
	Token     string `json:"token"`
	LearnerID string `json:"learnerId"`
}
