package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"lessonquiz/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const learnerTokenTTL = 24 * time.Hour

// AuthConfig configures the auth service
type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	JWTSecret     string
	AdminTokenTTL time.Duration
}

// AuthService handles admin and learner authentication
type AuthService struct {
	adminUsername string
	adminHash     []byte
	jwtSecret     []byte
	adminTTL      time.Duration
	now           func() time.Time
}

// NewAuthService hashes the configured admin password once.
func NewAuthService(cfg AuthConfig) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash admin password")
	}
	return &AuthService{
		adminUsername: cfg.AdminUsername,
		adminHash:     hash,
		jwtSecret:     []byte(cfg.JWTSecret),
		adminTTL:      cfg.AdminTokenTTL,
		now:           time.Now,
	}, nil
}

// Login validates admin credentials and returns a signed token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.adminUsername {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	adminID := "admin_" + uuid.New().String()[:8]
	now := s.now()
	claims := &model.AdminClaims{
		AdminID: adminID,
		Role:    model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.adminTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.adminTTL))
	}

	tokenString, err := s.sign(claims)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{
		Token:   tokenString,
		AdminID: adminID,
	}, nil
}

// Enroll issues a learner token for a new learner id
func (s *AuthService) Enroll(name, email string) (*model.EnrollResponse, error) {
	learnerID := "learner_" + uuid.New().String()
	now := s.now()
	claims := &model.LearnerClaims{
		LearnerID: learnerID,
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      model.RoleLearner,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(learnerTokenTTL)),
		},
	}

	tokenString, err := s.sign(claims)
	if err != nil {
		return nil, err
	}
	return &model.EnrollResponse{
		Token:     tokenString,
		LearnerID: learnerID,
	}, nil
}

func (s *AuthService) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	return signed, errors.Wrap(err, "sign token")
}

func (s *AuthService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// ValidateAdminToken validates an admin JWT and returns claims
func (s *AuthService) ValidateAdminToken(tokenString string) (*model.AdminClaims, error) {
	claims := &model.AdminClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Role != model.RoleAdmin || claims.AdminID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateLearnerToken validates a learner JWT and returns claims
func (s *AuthService) ValidateLearnerToken(tokenString string) (*model.LearnerClaims, error) {
	claims := &model.LearnerClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Role != model.RoleLearner || claims.LearnerID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
