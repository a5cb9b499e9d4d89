package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/response"
	"edu-admin/internal/pkg/xerrors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	logger := log.NewNopLogger()
	writer := response.NewResponseHandler(logger, "development")

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(writer, logger)
	e.Use(LoggingMiddlewareWithConfig(logger, DefaultLoggingConfig()))
	e.Use(RecoveryMiddleware(writer, logger))
	e.Use(ErrorMiddleware(writer, logger))
	return e
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestErrorMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   xerrors.ErrorCode
	}{
		{"业务错误", xerrors.NewResourceLockedError("signup", "jane@example.com"), http.StatusConflict, xerrors.CodeResourceLocked},
		{"Echo 错误", echo.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported"), http.StatusBadRequest, xerrors.CodeInvalidRequest},
		{"未知错误", errors.New("boom"), http.StatusInternalServerError, xerrors.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			e.GET("/fail", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, int(tt.wantCode), decodeCode(t, rec))
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	e := newTestEcho()
	e.GET("/panic", func(c echo.Context) error { panic("unexpected") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, int(xerrors.CodeInternalError), decodeCode(t, rec))
}

func TestRateLimitMiddleware(t *testing.T) {
	e := newTestEcho()
	e.POST("/register", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		RateLimitMiddleware(1, 1))

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/register", nil))
	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/register", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, int(xerrors.CodeRateLimitExceeded), decodeCode(t, second))
}

func TestHTTPErrorHandler_WritesEnvelope(t *testing.T) {
	logger := log.NewNopLogger()
	writer := response.NewResponseHandler(logger, "production")

	// 不挂 ErrorMiddleware，只依赖错误处理器
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(writer, logger)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Error(xerrors.FromCode(xerrors.CodeRateLimitExceeded))
			return nil
		}
	})
	e.GET("/limited", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/limited", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, int(xerrors.CodeRateLimitExceeded), decodeCode(t, rec))
}

func TestRateLimitMiddleware_IgnoresForwardedFor(t *testing.T) {
	e := newTestEcho()
	e.IPExtractor = echo.ExtractIPDirect()
	e.POST("/register", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		RateLimitMiddleware(1, 1))

	codes := make([]int, 0, 2)
	for _, forwarded := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodPost, "/register", nil)
		req.Header.Set(echo.HeaderXForwardedFor, forwarded)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRedactPasswords(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "JSON 请求体",
			body: `{"email":"jane@example.com","password":"abc123","confirmPassword":"abc123"}`,
			want: `{"email":"jane@example.com","password":"***REDACTED***","confirmPassword":"***REDACTED***"}`,
		},
		{
			name: "表单请求体",
			body: "email=jane%40example.com&password=abc123&confirmPassword=abc123",
			want: "email=jane%40example.com&password=***REDACTED***&confirmPassword=***REDACTED***",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redactPasswords(tt.body))
		})
	}
}
