package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/careerlens/internal/ai"
	"github.com/spigell/careerlens/internal/cache"
	"github.com/spigell/careerlens/internal/guidance"
)

type stubGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.reply, g.err
}

func (g *stubGenerator) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	return g.Generate(ctx, "")
}

func (g *stubGenerator) Ping(ctx context.Context) error { return g.err }
func (g *stubGenerator) Provider() string               { return "stub" }
func (g *stubGenerator) Model() string                  { return "stub-1" }

func newTestServer(t *testing.T, gen *stubGenerator, cfg Config) http.Handler {
	t.Helper()
	svc := guidance.New(gen, cache.New(cache.DefaultCapacity), zap.NewNop(), guidance.Config{})
	return New(svc, zap.NewNop(), cfg).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestPing(t *testing.T) {
	h := newTestServer(t, &stubGenerator{}, Config{})

	rec, body := do(t, h, http.MethodGet, "/api/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"ok": true}, body)

	h = newTestServer(t, &stubGenerator{err: errors.New("invalid api key")}, Config{})
	rec, body = do(t, h, http.MethodGet, "/api/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "invalid api key", body["error"])
}

func TestNotFound(t *testing.T) {
	h := newTestServer(t, &stubGenerator{}, Config{})

	for _, path := range []string{"/api/unknown", "/nowhere", "/"} {
		rec, body := do(t, h, http.MethodPost, path, "{}")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, map[string]any{"error": "Not found"}, body, path)
	}
}

func TestJSONHeaders(t *testing.T) {
	h := newTestServer(t, &stubGenerator{reply: `{"matches": []}`}, Config{})

	rec, _ := do(t, h, http.MethodPost, "/api/quiz", `{"answers": ["sql"]}`)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestTrailingSlashIsTolerated(t *testing.T) {
	h := newTestServer(t, &stubGenerator{reply: `{"job": "Chef", "weeks": [{"week": 1, "skills": ["knives"]}]}`}, Config{})

	rec, body := do(t, h, http.MethodPost, "/api/roadmap/", `{"job": "Chef"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Chef", body["job"])
	assert.Len(t, body["weeks"], 1)
}

func TestValidationErrors(t *testing.T) {
	h := newTestServer(t, &stubGenerator{reply: "{}"}, Config{})

	tests := []struct {
		path  string
		body  string
		where string
		field string
	}{
		{path: "/api/market", body: `{"role": "  "}`, where: "market", field: "role"},
		{path: "/api/recommend", body: `{}`, where: "recommend", field: "role"},
		{path: "/api/compare", body: `{"role_a": "Chef"}`, where: "compare", field: "role_b"},
		{path: "/api/resume/analyze", body: `{"target_role": "SRE"}`, where: "resume", field: "resume_text"},
		{path: "/api/roadmap", body: `not json`, where: "roadmap", field: "job"},
		{path: "/api/adaptive_quiz/next", body: `{"history": [{"role": "robot", "content": "x"}]}`, where: "adaptive_quiz_next", field: "role"},
	}

	for _, tt := range tests {
		rec, body := do(t, h, http.MethodPost, tt.path, tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.path)
		assert.Equal(t, tt.where, body["where"], tt.path)
		assert.Contains(t, body["error"], tt.field, tt.path)
	}
}

func TestMalformedBodyIsEmptyObject(t *testing.T) {
	h := newTestServer(t, &stubGenerator{reply: "{}"}, Config{})

	rec, body := do(t, h, http.MethodPost, "/api/quiz", `{"answers": [`)
	require.Equal(t, http.StatusOK, rec.Code)

	matches, ok := body["matches"].([]any)
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Equal(t, "Generalist (Explore)", matches[0].(map[string]any)["role"])
}

func TestDegradedResponseKeepsStatus200(t *testing.T) {
	h := newTestServer(t, &stubGenerator{err: errors.New("upstream timeout")}, Config{})

	rec, body := do(t, h, http.MethodPost, "/api/market", `{"role": "Data Analyst"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "market", body["where"])
	assert.Equal(t, "upstream timeout", body["error"])
	assert.Equal(t, "global", body["region"])
	assert.NotEmpty(t, body["top_skills"])
	assert.Equal(t, []any{}, body["salary_by_region"])
}

func TestAdaptiveQuiz(t *testing.T) {
	gen := &stubGenerator{reply: `Here you go: {"id": "q1", "text": "Pick", "options": ["a", "b"]}`}
	h := newTestServer(t, gen, Config{})

	rec, body := do(t, h, http.MethodPost, "/api/adaptive_quiz/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"id": "q1", "text": "Pick", "options": []any{"a", "b"}}, body["question"])

	rec, body = do(t, h, http.MethodPost, "/api/adaptive_quiz/next", `{"history": [{"role": "assistant", "content": "Pick"}, {"role": "user", "content": "a"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, body["question"])
	assert.Nil(t, body["error"])
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, &stubGenerator{}, Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func upload(t *testing.T, h http.Handler, field, filename, content string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/extract", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestResumeExtract(t *testing.T) {
	h := newTestServer(t, &stubGenerator{}, Config{MaxUploadBytes: 1 << 10})

	rec, body := upload(t, h, "file", "cv.txt", "Jane Doe\n\n  Go,   SQL ")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jane Doe\nGo, SQL", body["text"])

	rec, body = upload(t, h, "file", "cv.odt", "whatever")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "resume_extract", body["where"])

	rec, _ = upload(t, h, "document", "cv.txt", "Jane")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = upload(t, h, "file", "cv.txt", strings.Repeat("x", 2<<10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStaticPages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>home</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.js"), []byte("console.log(1)"), 0o600))

	h := newTestServer(t, &stubGenerator{}, Config{StaticDir: dir})

	rec, _ := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "home")

	rec, _ = do(t, h, http.MethodGet, "/static/shared.js", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := do(t, h, http.MethodGet, "/quiz", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", body["error"])
}
