package middleware

import (
	"edu-admin/internal/pkg/xerrors"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware 按客户端 IP 限流，perSecond <= 0 时不限流
func RateLimitMiddleware(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(perSecond),
			Burst: burst,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return xerrors.FromCode(xerrors.CodeInternalError).
				WithService("echo-middleware", "rate_limiter").
				WithMetadata("client_ip", c.RealIP())
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return xerrors.FromCode(xerrors.CodeRateLimitExceeded).
				WithService("echo-middleware", "rate_limiter").
				WithMetadata("client_ip", identifier)
		},
	}

	return middleware.RateLimiterWithConfig(config)
}
