package api

import (
	"net/http"
	"testing"
	"time"

	"openstudy/shop-api/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginVerifyFlow(t *testing.T) {
	a, mailer := newTestAPI(t)

	rec := doJSON(t, a, http.MethodPost, "/api/auth/register", gin.H{
		"full_name": "Jane Doe",
		"email":     "jane@example.com",
		"password":  "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, mailer.count())

	verifyToken := tokenFromLink(t, mailer.last())

	// Login before verification fails and re-sends the mail
	rec = doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "not verified")
	require.Equal(t, 2, mailer.count())

	rec = doJSON(t, a, http.MethodGet, "/api/auth/verify?token="+verifyToken, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Now the login succeeds and returns a session token with profile fields
	rec = doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "Jane Doe", body["full_name"])
	require.Equal(t, "jane@example.com", body["email"])

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	rec = doJSON(t, a, http.MethodGet, "/api/users/me", nil, map[string]string{"x-auth-token": token})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "jane@example.com", decodeBody(t, rec)["email"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a, _ := newTestAPI(t)

	body := gin.H{
		"full_name": "First",
		"email":     "dup@example.com",
		"password":  "password123",
	}

	rec := doJSON(t, a, http.MethodPost, "/api/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, a, http.MethodPost, "/api/auth/register", body, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "already taken")

	// No second record and no dangling verification token
	var users int64
	require.NoError(t, a.DB.Model(&model.User{}).Where("email = ?", "dup@example.com").Count(&users).Error)
	require.EqualValues(t, 1, users)

	var tokens int64
	require.NoError(t, a.DB.Model(&model.VerificationToken{}).Count(&tokens).Error)
	require.EqualValues(t, 1, tokens)
}

func TestVerifyIdempotent(t *testing.T) {
	a, mailer := newTestAPI(t)

	rec := doJSON(t, a, http.MethodPost, "/api/auth/register", gin.H{
		"full_name": "Jane",
		"email":     "idem@example.com",
		"password":  "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	verifyToken := tokenFromLink(t, mailer.last())

	rec = doJSON(t, a, http.MethodGet, "/api/auth/verify?token="+verifyToken, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", decodeBody(t, rec)["status"])

	// Second call with the same token reports already-verified, not an error
	rec = doJSON(t, a, http.MethodGet, "/api/auth/verify?token="+verifyToken, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "info", decodeBody(t, rec)["status"])
}

func TestVerifyUnknownToken(t *testing.T) {
	a, _ := newTestAPI(t)

	rec := doJSON(t, a, http.MethodGet, "/api/auth/verify?token="+uuid.NewString(), nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "Invalid token")
}

func TestLoginWrongPasswordNoLockout(t *testing.T) {
	a, _ := newTestAPI(t)

	createUser(t, a, "victim@example.com", "rightpassword", model.RoleUser, true)

	// Three failed attempts in a row, none of which mint a token
	for range 3 {
		rec := doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "victim@example.com",
			"password": "wrongpassword",
		}, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeBody(t, rec)
		require.Contains(t, body["error"], "Invalid password")
		require.NotContains(t, body, "token")
	}

	// No lockout: the correct password still works afterwards
	loginToken(t, a, "victim@example.com", "rightpassword")
}

func TestForgotResetFlow(t *testing.T) {
	a, mailer := newTestAPI(t)

	createUser(t, a, "reset@example.com", "oldpassword1", model.RoleUser, true)

	rec := doJSON(t, a, http.MethodPost, "/api/auth/forgot-password", gin.H{
		"email": "reset@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The reset mail is dispatched asynchronously
	require.Eventually(t, func() bool {
		return mailer.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	resetToken := tokenFromLink(t, mailer.last())

	rec = doJSON(t, a, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token":        resetToken,
		"new_password": "newpassword1",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Old password is gone, new one works
	rec = doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "reset@example.com",
		"password": "oldpassword1",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	loginToken(t, a, "reset@example.com", "newpassword1")

	// The token is single use
	rec = doJSON(t, a, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token":        resetToken,
		"new_password": "anotherpassword1",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "used already")
}

func TestResetExpiredToken(t *testing.T) {
	a, _ := newTestAPI(t)

	user := createUser(t, a, "expired@example.com", "password123", model.RoleUser, true)

	rec := &model.VerificationToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		Purpose:   model.PurposePasswordReset,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, a.DB.Create(rec).Error)

	resp := doJSON(t, a, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token":        rec.Token,
		"new_password": "newpassword1",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, decodeBody(t, resp)["error"], "expired")
}

func TestResetUnknownToken(t *testing.T) {
	a, _ := newTestAPI(t)

	rec := doJSON(t, a, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token":        uuid.NewString(),
		"new_password": "newpassword1",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "Invalid or expired")
}

func TestForgotPasswordUnverified(t *testing.T) {
	a, mailer := newTestAPI(t)

	createUser(t, a, "unverified@example.com", "password123", model.RoleUser, false)

	rec := doJSON(t, a, http.MethodPost, "/api/auth/forgot-password", gin.H{
		"email": "unverified@example.com",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "not verified")
	require.Equal(t, 0, mailer.count())
}

func TestResendVerificationCooldown(t *testing.T) {
	a, mailer := newTestAPI(t)

	createUser(t, a, "resend@example.com", "password123", model.RoleUser, false)

	rec := doJSON(t, a, http.MethodPost, "/api/auth/resend-verification", gin.H{
		"email": "resend@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, mailer.count())

	// Second request inside the cooldown window is rejected
	rec = doJSON(t, a, http.MethodPost, "/api/auth/resend-verification", gin.H{
		"email": "resend@example.com",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 1, mailer.count())
}

func TestLoginUnverifiedSurvivesMailFailure(t *testing.T) {
	a, mailer := newTestAPI(t)
	mailer.fail = true

	createUser(t, a, "noverify@example.com", "password123", model.RoleUser, false)

	// The failed resend is logged and dropped, the caller still learns
	// why the login was rejected
	rec := doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "noverify@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "not verified")
}

func TestVerifyExpiredTokenVerifiedUser(t *testing.T) {
	a, _ := newTestAPI(t)

	user := createUser(t, a, "stale@example.com", "password123", model.RoleUser, true)

	stale := &model.VerificationToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		Purpose:   model.PurposeEmailVerify,
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-25 * time.Hour),
	}
	require.NoError(t, a.DB.Create(stale).Error)

	// A stale link reports its expiry even when the account already
	// got verified through another one
	rec := doJSON(t, a, http.MethodGet, "/api/auth/verify?token="+stale.Token, nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["error"], "expired")
}

func TestRegisterMailFailureKeepsAccount(t *testing.T) {
	a, mailer := newTestAPI(t)
	mailer.fail = true

	rec := doJSON(t, a, http.MethodPost, "/api/auth/register", gin.H{
		"full_name": "Unlucky",
		"email":     "unlucky@example.com",
		"password":  "password123",
	}, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// The account survives the failed send and stays unverified
	var user model.User
	require.NoError(t, a.DB.Where("email = ?", "unlucky@example.com").First(&user).Error)
	require.False(t, user.Verified)
}
