package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhismart8/resume-builder/internal/auth"
	"github.com/abhismart8/resume-builder/internal/database"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name  string
		body map[string]any
		code int
	}{
		{"missing password", map[string]any{"email": "a@example.com"}, http.StatusBadRequest},
		{"invalid email", map[string]any{"email": "nope", "password": "Str0ng!pass"}, http.StatusBadRequest},
		{"weak password", map[string]any{"email": "a@example.com", "password": "password"}, http.StatusBadRequest},
		{"ok", map[string]any{"email": " A@Example.com ", "password": "Str0ng!pass"}, http.StatusCreated},
		{"duplicate", map[string]any{"email": "a@example.com", "password": "Str0ng!pass"}, http.StatusConflict},
	}
	for _, tc := range cases {
		w := env.do(http.MethodPost, "/v1/auth/register", "", tc.body)
		assert.Equal(t, tc.code, w.Code, "%s: %s", tc.name, w.Body.String())
	}

	var u database.User
	require.NoError(t, env.db.Where("email = ?", "a@example.com").First(&u).Error)
	assert.Equal(t, database.RoleUser, u.Role)
	assert.True(t, auth.CheckPasswordHash("Str0ng!pass", u.PasswordHash))
}

func TestVerifyEmail(t *testing.T) {
	env := newTestEnv(t)
	register := func(email string) database.EmailVerification {
		t.Helper()
		w := env.do(http.MethodPost, "/v1/auth/register", "", map[string]any{"email": email, "password": "Str0ng!pass"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var v database.EmailVerification
		require.NoError(t, env.db.Where("email = ?", email).First(&v).Error)
		return v
	}

	v := register("grace@example.com")
	assert.Len(t, v.Token, auth.VerificationTokenBytes*2)
	assert.False(t, v.Verified)
	assert.WithinDuration(t, time.Now().Add(auth.VerificationTTL), v.ExpiresAt, time.Minute)

	var u database.User
	require.NoError(t, env.db.Where("email = ?", "grace@example.com").First(&u).Error)
	assert.False(t, u.EmailVerified)

	w := env.do(http.MethodGet, "/v1/auth/verify-email", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/v1/auth/verify-email?token=unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/v1/auth/verify-email?token="+v.Token, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, env.db.First(&u, u.ID).Error)
	assert.True(t, u.EmailVerified)

	w = env.do(http.MethodGet, "/v1/auth/verify-email?token="+v.Token, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email already verified", decode(t, w)["error"])

	stale := register("late@example.com")
	require.NoError(t, env.db.Model(&stale).Update("expires_at", time.Now().Add(-time.Hour)).Error)
	w = env.do(http.MethodGet, "/v1/auth/verify-email?token="+stale.Token, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "verification token has expired", decode(t, w)["error"])

	var count int64
	require.NoError(t, env.db.Model(&database.EmailVerification{}).Where("id = ?", stale.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, env.db.Where("email = ?", "late@example.com").First(&u).Error)
	assert.False(t, u.EmailVerified)
}
