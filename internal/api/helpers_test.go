package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/abhismart8/resume-builder/internal/auth"
	"github.com/abhismart8/resume-builder/internal/config"
	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/dbtest"
)

var (
	keyOnce sync.Once
	keyPriv []byte
	keyPub  []byte
)

func testAuthService(t *testing.T) *auth.AuthService {
	t.Helper()
	keyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		if err != nil {
			panic(err)
		}
		keyPriv = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
		keyPub = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	})
	svc, err := auth.NewAuthService(keyPriv, keyPub, time.Minute, time.Hour)
	require.NoError(t, err)
	return svc
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

func (f *fakeEnqueuer) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t.Type())
	}
	return out
}

type fakeObjects struct {
	mu       sync.Mutex
	prefixes []string
}

func (f *fakeObjects) PresignDownload(_ context.Context, key, filename string, _ time.Duration) (string, error) {
	return "https://objects.example/" + key + "?filename=" + filename, nil
}

func (f *fakeObjects) DeletePrefix(_ context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefixes = append(f.prefixes, prefix)
	return nil
}

type testEnv struct {
	t        *testing.T
	db       *gorm.DB
	auth     *auth.AuthService
	router   *gin.Engine
	enqueuer *fakeEnqueuer
	objects  *fakeObjects
}

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{PublicBaseURL: "https://resumes.example", MaxResumes: 2},
		Auth: config.AuthConfig{
			LoginRateLimitPerHour: 10,
			LoginLockThreshold:    5,
			LoginLockTTL:          time.Minute,
		},
		Share:  config.ShareConfig{PublicRatePerMinute: 60, DownloadLinkTTL: 5 * time.Minute},
		Worker: config.WorkerConfig{Concurrency: 1, ExportMaxRetry: 3},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		t:        t,
		db:       dbtest.Open(t),
		auth:     testAuthService(t),
		enqueuer: &fakeEnqueuer{},
		objects:  &fakeObjects{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()
	env.router = NewRouter(cfg, logger)
	RegisterRoutes(env.router, cfg, Dependencies{
		DB:          env.db,
		Enqueuer:    env.enqueuer,
		AuthService: env.auth,
		Objects:     env.objects,
		Logger:      logger,
	})
	return env
}

func (e *testEnv) user(email, role string) (database.User, string) {
	e.t.Helper()
	u := database.User{Email: email, PasswordHash: "x", Role: role}
	require.NoError(e.t, e.db.Create(&u).Error)
	pair, err := e.auth.GenerateTokenPair(identityOf(u))
	require.NoError(e.t, err)
	return u, pair.AccessToken
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (e *testEnv) createResume(token string, body any) uint {
	e.t.Helper()
	w := e.do(http.MethodPost, "/v1/resumes", token, body)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	return uint(decode(e.t, w)["id"].(float64))
}
