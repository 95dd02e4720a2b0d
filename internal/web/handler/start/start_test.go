package start

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eingabe/eingabe/internal/config"
	"github.com/eingabe/eingabe/internal/db/models"
	"github.com/eingabe/eingabe/internal/db/store"
)

// recordingViews is a minimal Fiber Views engine used for tests.
// It writes the template name and the "Input" value so tests can assert
// what the handler rendered.
type recordingViews struct{}

func (recordingViews) Load() error { return nil }

func (recordingViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["Input"]; exists {
			_, _ = io.WriteString(w, "\n"+v.(string))
		}
	}

	return nil
}

type testEnv struct {
	app      *fiber.App
	accessor *store.Accessor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Title: "Eingabe",
		DB: config.DB{
			GormEngine: config.GormEngineSqlite,
			Name:       filepath.Join(t.TempDir(), "eingabe.db"),
			Extras:     config.DefaultSqliteExtras,
		},
	}

	accessor, err := store.New(cfg)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{Views: recordingViews{}})

	var s Service
	s.Init(app, cfg, accessor)

	return &testEnv{app: app, accessor: accessor}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (int, string) {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func (e *testEnv) postForm(t *testing.T, form url.Values) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return e.do(t, req)
}

func (e *testEnv) count(t *testing.T) int64 {
	t.Helper()

	var count int64

	err := e.accessor.With(func(db *gorm.DB) error {
		return db.Model(&models.Submission{}).Count(&count).Error
	})
	require.NoError(t, err)

	return count
}

func TestGet_EmptyTableIsServerError(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, httptest.NewRequest(http.MethodGet, Path, nil))
	assert.Equal(t, fiber.StatusInternalServerError, status)

	// the table was still created by the request
	assert.Zero(t, env.count(t))
}

func TestPost_InputRequired(t *testing.T) {
	multipartEmpty := func() *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		_ = mw.WriteField("other", "x")
		_ = mw.Close()

		req := httptest.NewRequest(http.MethodPost, Path, &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		return req
	}

	formReq := func(target string, form url.Values) *http.Request {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		return req
	}

	tests := []struct {
		name string
		req  func() *http.Request
	}{
		{
			name: "empty input",
			req:  func() *http.Request { return formReq(Path, url.Values{"input": {""}}) },
		},
		{
			name: "missing input",
			req:  func() *http.Request { return formReq(Path, url.Values{"other": {"x"}}) },
		},
		{
			name: "no body and no content type",
			req:  func() *http.Request { return httptest.NewRequest(http.MethodPost, Path, nil) },
		},
		{
			name: "query string is not the form",
			req:  func() *http.Request { return formReq(Path+"?input=query", url.Values{}) },
		},
		{
			name: "multipart without input",
			req:  multipartEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			status, body := env.do(t, tt.req())

			assert.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, MsgInputRequired, body)
			assert.Zero(t, env.count(t))
		})
	}
}

func TestPost_RejectedDoesNotChangeCount(t *testing.T) {
	env := newTestEnv(t)

	_, _ = env.postForm(t, url.Values{"input": {"erste"}})
	require.Equal(t, int64(1), env.count(t))

	status, body := env.postForm(t, url.Values{"input": {""}})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, MsgInputRequired, body)
	assert.Equal(t, int64(1), env.count(t))
}

func TestPost_StoresAndRendersLatest(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.postForm(t, url.Values{"input": {"hallo welt"}})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, TemplateName+"\nhallo welt", body)
	assert.Equal(t, int64(1), env.count(t))

	status, body = env.postForm(t, url.Values{"input": {"zweite"}})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, TemplateName+"\nzweite", body)

	// GET shows the last row without inserting
	status, body = env.do(t, httptest.NewRequest(http.MethodGet, Path, nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, TemplateName+"\nzweite", body)
	assert.Equal(t, int64(2), env.count(t))
}

func TestPost_Multipart(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("input", "aus multipart"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, Path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	status, body := env.do(t, req)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, TemplateName+"\naus multipart", body)
}

func TestPost_WhitespaceIsContent(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.postForm(t, url.Values{"input": {" "}})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, TemplateName+"\n ", body)
	assert.Equal(t, int64(1), env.count(t))
}
