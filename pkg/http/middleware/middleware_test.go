package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	applogger "RxPulse/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileLogger(t *testing.T) (*applogger.Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	log, err := applogger.New(&applogger.Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)
	return log, path
}

func TestRequestLoggingWritesStructuredLine(t *testing.T) {
	log, path := fileLogger(t)

	e := echo.New()
	e.Use(RequestLogging(log))
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"method":"GET"`)
	assert.Contains(t, string(out), `"uri":"/ping"`)
	assert.Contains(t, string(out), `"status":200`)
}

func TestRecoverConvertsPanicTo500(t *testing.T) {
	log, path := fileLogger(t)

	e := echo.New()
	e.Use(Recover(log))
	e.GET("/boom", func(echo.Context) error { panic("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), "panic recovered")
	assert.Contains(t, string(out), "boom")
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	e := echo.New()
	e.Use(CORS(CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	e.POST("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://pharmacy.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://pharmacy.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
