package security

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SecurityHeadersMiddleware 安全响应头
//
// swagger UI 需要内联脚本，CSP 仅在 production 下启用。
func SecurityHeadersMiddleware(environment string) echo.MiddlewareFunc {
	cfg := middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}
	if environment == "production" {
		cfg.ContentSecurityPolicy = "default-src 'self'"
	}
	return middleware.SecureWithConfig(cfg)
}
