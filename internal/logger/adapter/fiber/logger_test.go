package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eingabe/eingabe/internal/logger"
	adapter "github.com/eingabe/eingabe/internal/logger/adapter/fiber"
)

// accessLine implements the access log json format.
type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Error  string `json:"error"`
}

var consoleAccessLog = adapter.Config{
	Config: logger.Log{
		EnableAccessLogToConsole: true,
		DisableCheckAlive:        true,
		Console:                  logger.Console{Enabled: true},
	},
	CheckAliveURI: "/checkalive",
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		method     string
		targetPath string
		want       *accessLine
	}{
		{
			name:       "empty config no output at all",
			method:     fiber.MethodGet,
			targetPath: "/",
		},
		{
			name:       "get / log to console json",
			config:     consoleAccessLog,
			method:     fiber.MethodGet,
			targetPath: "/",
			want:       &accessLine{IP: "0.0.0.0", Status: fiber.StatusOK, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "post /Liste keeps path case",
			config:     consoleAccessLog,
			method:     fiber.MethodPost,
			targetPath: "/Liste",
			want:       &accessLine{IP: "0.0.0.0", Status: fiber.StatusOK, URI: "/Liste", Method: fiber.MethodPost, Host: "example.com"},
		},
		{
			name:       "query string is logged",
			config:     consoleAccessLog,
			method:     fiber.MethodGet,
			targetPath: "/?test=123",
			want:       &accessLine{IP: "0.0.0.0", Status: fiber.StatusOK, URI: "/?test=123", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "unknown route logs 404 with error",
			config:     consoleAccessLog,
			method:     fiber.MethodGet,
			targetPath: "//unknown",
			want:       &accessLine{IP: "0.0.0.0", Status: fiber.StatusNotFound, URI: "//unknown", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "handler error logs 500",
			config:     consoleAccessLog,
			method:     fiber.MethodGet,
			targetPath: "/fail",
			want: &accessLine{
				IP: "0.0.0.0", Status: fiber.StatusInternalServerError, URI: "/fail",
				Method: fiber.MethodGet, Host: "example.com", Error: "no such table: Eingaben",
			},
		},
		{
			name:       "checkalive is not logged",
			config:     consoleAccessLog,
			method:     fiber.MethodGet,
			targetPath: "/checkalive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testMiddlewareHelper(t, tt.method, tt.targetPath, tt.config)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			require.NotEmpty(t, output)

			var decoded accessLine
			require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), &decoded))

			assert.Equal(t, tt.want.IP, decoded.IP)
			assert.Equal(t, tt.want.Status, decoded.Status)
			assert.Equal(t, tt.want.URI, decoded.URI)
			assert.Equal(t, tt.want.Method, decoded.Method)
			assert.Equal(t, tt.want.Host, decoded.Host)

			if tt.want.Error != "" {
				assert.Contains(t, decoded.Error, tt.want.Error)
			}
		})
	}
}

func testMiddlewareHelper(t *testing.T, method, targetPath string, adapterConfig adapter.Config) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(adapterConfig))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})
	app.Post("/Liste", func(ctx *fiber.Ctx) error {
		return ctx.SendString("liste")
	})
	app.Get("/checkalive", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	app.Get("/fail", func(_ *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "no such table: Eingaben")
	})

	resp, testErr := app.Test(httptest.NewRequest(method, targetPath, nil), -1)

	outC := make(chan string)

	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr
	out := <-outC

	require.NoError(t, testErr)
	assert.NotEmpty(t, resp.Header.Get("X-Performance"))

	return out
}
