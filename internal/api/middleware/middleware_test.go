package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newEngine(setup gin.HandlerFunc, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{setup}, mw...)
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/x", handlers...)
	return r
}

func serve(r *gin.Engine) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w.Code
}

func TestRequireAdmin(t *testing.T) {
	cases := map[string]int{
		"admin": http.StatusNoContent,
		"user":  http.StatusForbidden,
		"":      http.StatusForbidden,
	}
	for role, want := range cases {
		r := newEngine(func(c *gin.Context) { c.Set(RoleKey, role) }, RequireAdmin())
		if got := serve(r); got != want {
			t.Errorf("role %q: status = %d, want %d", role, got, want)
		}
	}
}

func TestRequirePasswordChangeCompleted(t *testing.T) {
	blocked := newEngine(func(c *gin.Context) { c.Set(MustChangePasswordKey, true) }, RequirePasswordChangeCompletedMiddleware())
	if got := serve(blocked); got != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", got)
	}
	allowed := newEngine(func(c *gin.Context) { c.Set(MustChangePasswordKey, false) }, RequirePasswordChangeCompletedMiddleware())
	if got := serve(allowed); got != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", got)
	}
}

func TestCorrelationID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorrelationIDMiddleware())
	var seen string
	r.GET("/x", func(c *gin.Context) { seen = GetCorrelationID(c) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Correlation-ID", "abc")
	r.ServeHTTP(w, req)
	if seen != "abc" || w.Header().Get("X-Correlation-ID") != "abc" {
		t.Fatalf("correlation id not propagated: %q", seen)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if seen == "" || seen == "abc" {
		t.Fatalf("expected generated correlation id, got %q", seen)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(CorrelationIDHeader, "line\tbreak")
	r.ServeHTTP(w, req)
	if seen == "line\tbreak" || w.Header().Get(CorrelationIDHeader) != seen {
		t.Fatalf("unsafe correlation id kept: %q", seen)
	}
}

func TestSlogLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := gin.New()
	r.Use(CorrelationIDMiddleware(), SlogLoggerMiddleware(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) {
		c.Set(UserIDKey, uint(7))
		c.Status(http.StatusInternalServerError)
	})
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/ok", "/boom", "/health"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 access log lines, got %d: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "level=INFO") || !strings.Contains(lines[0], "path=/ok") {
		t.Errorf("unexpected ok line: %s", lines[0])
	}
	if !strings.Contains(lines[1], "level=ERROR") || !strings.Contains(lines[1], "user_id=7") {
		t.Errorf("unexpected error line: %s", lines[1])
	}
}
