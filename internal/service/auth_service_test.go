package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	svc, err := NewAuthService(AuthConfig{
		AdminUsername: "admin",
		AdminPassword: "s3cret",
		JWTSecret:     "test-secret",
		AdminTokenTTL: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestLogin(t *testing.T) {
	svc := newAuth(t)

	_, err := svc.Login("admin", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
	_, err = svc.Login("root", "s3cret")
	assert.Equal(t, ErrInvalidCredentials, err)

	resp, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)

	claims, err := svc.ValidateAdminToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.AdminID, claims.AdminID)

	_, err = svc.ValidateLearnerToken(resp.Token)
	assert.Equal(t, ErrInvalidToken, err, "admin token is not a learner token")
}

func TestEnroll(t *testing.T) {
	svc := newAuth(t)

	resp, err := svc.Enroll(" Ada ", "Ada@Example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateLearnerToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.LearnerID, claims.LearnerID)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)

	_, err = svc.ValidateAdminToken(resp.Token)
	assert.Equal(t, ErrInvalidToken, err, "learner token is not an admin token")
}

func TestTokenExpiry(t *testing.T) {
	svc := newAuth(t)
	resp, err := svc.Enroll("Ada", "")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = svc.ValidateLearnerToken(resp.Token)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestTokenSignedWithOtherSecret(t *testing.T) {
	other, err := NewAuthService(AuthConfig{AdminUsername: "admin", AdminPassword: "x", JWTSecret: "other"})
	require.NoError(t, err)
	resp, err := other.Enroll("Ada", "")
	require.NoError(t, err)

	_, err = newAuth(t).ValidateLearnerToken(resp.Token)
	assert.Equal(t, ErrInvalidToken, err)
}
