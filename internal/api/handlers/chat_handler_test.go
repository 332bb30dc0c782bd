package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barman-ayush/imitate.ai/internal/api/middleware"
	"github.com/barman-ayush/imitate.ai/internal/logger"
	"github.com/barman-ayush/imitate.ai/internal/utils"
)

type fakeChatService struct {
	reply string
	err   error
	calls int

	gotUserID      string
	gotCompanionID string
}

func (f *fakeChatService) Respond(ctx context.Context, userID, companionID, prompt string) (string, error) {
	f.calls++
	f.gotUserID = userID
	f.gotCompanionID = companionID
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (f *fakeLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	f.calls++
	return f.allowed, f.err
}

const chatTestSecret = "handler-test-secret"

func signToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(chatTestSecret))
	require.NoError(t, err)
	return token
}

func newChatRouter(t *testing.T, svc *fakeChatService, limiter *fakeLimiter) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", chatTestSecret)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	auth := r.Group("/api")
	auth.Use(middleware.JWTAuth())
	auth.POST("/chat/:companion_id", middleware.RateLimit(limiter, logger.New()), NewChatHandler(svc).Send)

	return r
}

func doChat(r *gin.Engine, token, companionID, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/api/chat/"+companionID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatUnauthenticated(t *testing.T) {
	svc := &fakeChatService{reply: "hello"}
	limiter := &fakeLimiter{allowed: true}
	r := newChatRouter(t, svc, limiter)

	w := doChat(r, "", "comp-1", `{"prompt":"hi"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, svc.calls, "pipeline must not run without auth")
	assert.Zero(t, limiter.calls)
}

func TestChatInvalidToken(t *testing.T) {
	svc := &fakeChatService{reply: "hello"}
	r := newChatRouter(t, svc, &fakeLimiter{allowed: true})

	w := doChat(r, "not-a-jwt", "comp-1", `{"prompt":"hi"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, svc.calls)
}

func TestChatRateLimited(t *testing.T) {
	svc := &fakeChatService{reply: "hello"}
	limiter := &fakeLimiter{allowed: false}
	r := newChatRouter(t, svc, limiter)

	w := doChat(r, signToken(t, "user-1"), "comp-1", `{"prompt":"hi"}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), string(utils.CodeResourceExhausted))
	assert.Zero(t, svc.calls, "over-quota requests stop before any lookup")
}

func TestChatCompanionNotFound(t *testing.T) {
	svc := &fakeChatService{err: utils.E(utils.CodeNotFound, "CompanionService.Get", "companion not found", nil)}
	r := newChatRouter(t, svc, &fakeLimiter{allowed: true})

	w := doChat(r, signToken(t, "user-1"), "ghost", `{"prompt":"hi"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ghost", svc.gotCompanionID)
}

func TestChatSuccessStreamsReply(t *testing.T) {
	svc := &fakeChatService{reply: "Hello friend!"}
	r := newChatRouter(t, svc, &fakeLimiter{allowed: true})

	w := doChat(r, signToken(t, "user-1"), "comp-1", `{"prompt":"say hi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello friend!", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "user-1", svc.gotUserID)
}

func TestChatEmptyReplyStillOK(t *testing.T) {
	svc := &fakeChatService{reply: ""}
	r := newChatRouter(t, svc, &fakeLimiter{allowed: true})

	w := doChat(r, signToken(t, "user-1"), "comp-1", `{"prompt":"whisper"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestChatMissingPrompt(t *testing.T) {
	svc := &fakeChatService{reply: "hello"}
	r := newChatRouter(t, svc, &fakeLimiter{allowed: true})

	w := doChat(r, signToken(t, "user-1"), "comp-1", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestChatLimiterOutageFailsOpen(t *testing.T) {
	svc := &fakeChatService{reply: "still here"}
	limiter := &fakeLimiter{err: assert.AnError}
	r := newChatRouter(t, svc, limiter)

	w := doChat(r, signToken(t, "user-1"), "comp-1", `{"prompt":"hi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.calls)
}
