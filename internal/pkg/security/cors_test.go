package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewCORSConfig(t *testing.T) {
	wildcard := NewCORSConfig(nil)
	assert.Equal(t, []string{"*"}, wildcard.AllowOrigins)
	assert.False(t, wildcard.AllowCredentials)

	restricted := NewCORSConfig([]string{"https://admin.example.com"})
	assert.True(t, restricted.AllowCredentials)
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	e := echo.New()
	e.Use(CORSMiddlewareWithConfig(NewCORSConfig([]string{"https://admin.example.com"})))
	e.POST("/api/v1/admin/auth/register", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/admin/auth/register", nil)
	req.Header.Set(echo.HeaderOrigin, "https://admin.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://admin.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), "Accept-Language")
}
