package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/diyhub/backend/config"
	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/events"
	"github.com/diyhub/backend/services"
	"github.com/diyhub/backend/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type fakeMeet struct {
	link  string
	err   error
	token string
	req   services.MeetingRequest
}

func (f *fakeMeet) Schedule(_ context.Context, token string, req services.MeetingRequest) (string, error) {
	f.token = token
	f.req = req
	return f.link, f.err
}

type testEnv struct {
	t         *testing.T
	handler   http.Handler
	db        database.Database
	hub       *events.Hub
	tokens    TokenIssuer
	meet      *fakeMeet
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db := database.New(gormDB)
	require.NoError(t, db.Migrate())

	uploadDir := t.TempDir()
	images, err := storage.NewDiskStore(uploadDir)
	require.NoError(t, err)

	cfg := config.Config{
		JWTSecret:       testSecret,
		TokenTTL:        time.Hour,
		AcceptedOrigins: []string{"http://app.test"},
	}
	hub := events.NewHub()
	meet := &fakeMeet{link: "https://meet.google.com/xyz"}

	handler := newRouter(db,
		withConfig(cfg),
		withStartupTime(time.Now()),
		withImageStore(images, uploadDir),
		withHub(hub),
		withMeetScheduler(meet),
	)

	return &testEnv{
		t:         t,
		handler:   handler,
		db:        db,
		hub:       hub,
		tokens:    NewTokenIssuer(testSecret, time.Hour),
		meet:      meet,
		uploadDir: uploadDir,
	}
}

// do sends body as JSON (unless it is already an io.Reader) with an optional bearer token
func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
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
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its id and a valid token
func (e *testEnv) register(email string) (uuid.UUID, string) {
	e.t.Helper()

	rec := e.do(http.MethodPost, "/api/users/register", map[string]any{
		"first_name": "Grace",
		"last_name":  "Hopper",
		"email":      email,
		"password":   "hunter22",
		"age":        30,
	}, "")
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": "hunter22",
	}, "")
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	var login LoginResponse
	decode(e.t, rec, &login)

	userID, _, err := e.tokens.Verify(login.Token)
	require.NoError(e.t, err)
	return userID, login.Token
}

// createProject creates a project through the API and returns its id
func (e *testEnv) createProject(token, title string, tags ...string) uint {
	e.t.Helper()
	if len(tags) == 0 {
		tags = []string{"wood"}
	}
	rec := e.do(http.MethodPost, "/api/projects", map[string]any{
		"title":       title,
		"tags":        tags,
		"level":       "easy",
		"description": "<p>steps</p>",
	}, token)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp ProjectResponse
	decode(e.t, rec, &resp)
	return resp.Project.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	decode(t, rec, &m)
	return m
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func jsonReader(t *testing.T, v any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}
