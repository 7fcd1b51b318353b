package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/dbtest"
	"github.com/abhismart8/resume-builder/internal/sharelink"
	"github.com/abhismart8/resume-builder/internal/store"
)

func TestShareFlow(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user("share@example.com", database.RoleUser)
	id := env.createResume(token, map[string]any{
		"title":    "Public CV",
		"personal": map[string]any{"name": "Ada Lovelace"},
	})
	sharePath := fmt.Sprintf("/v1/resumes/%d/share", id)

	w := env.do(http.MethodGet, sharePath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode(t, w)
	assert.Equal(t, false, status["isPublic"])
	assert.Nil(t, status["shareUrl"])

	w = env.do(http.MethodPost, sharePath, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	issued := decode(t, w)
	assert.Equal(t, true, issued["isPublic"])
	link := issued["shareableLink"].(string)
	assert.Len(t, link, sharelink.TokenBytes*2)
	assert.Equal(t, "https://resumes.example/resume/share/"+link, issued["shareUrl"])

	w = env.do(http.MethodGet, "/v1/public/resume/"+link, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	public := decode(t, w)
	assert.Equal(t, "Public CV", public["title"])
	assert.Equal(t, "Ada Lovelace", public["personal"].(map[string]any)["name"])
	for _, hidden := range []string{"id", "userId", "shareableLink", "isPublic"} {
		assert.NotContains(t, public, hidden)
	}

	w = env.do(http.MethodDelete, sharePath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	revoked := decode(t, w)
	assert.Equal(t, false, revoked["isPublic"])
	assert.Nil(t, revoked["shareableLink"])

	w = env.do(http.MethodGet, "/v1/public/resume/"+link, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resume not found or not shared publicly", decode(t, w)["error"])

	w = env.do(http.MethodDelete, sharePath, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShare_Ownership(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.user("owner@example.com", database.RoleUser)
	_, other := env.user("other@example.com", database.RoleUser)
	id := env.createResume(owner, map[string]any{"title": "mine"})

	w := env.do(http.MethodPost, fmt.Sprintf("/v1/resumes/%d/share", id), other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/v1/resumes/9999/share", owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type countingRedis struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (r *countingRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[key]++
	return redis.NewIntResult(r.counts[key], nil)
}

func (r *countingRedis) Expire(ctx context.Context, key string, _ time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func TestGetPublicResume_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	counter := &countingRedis{counts: map[string]int64{}}
	h := NewShareHandler(
		sharelink.NewManager(store.NewResumeStore(db)),
		counter,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		"https://resumes.example",
		2,
	)
	r := gin.New()
	r.GET("/public/resume/:token", h.GetPublicResume)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public/resume/abc", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNotFound, http.StatusNotFound, http.StatusTooManyRequests}, codes)

	for key := range counter.counts {
		assert.True(t, strings.HasPrefix(key, "rate:public:"), key)
	}
}
