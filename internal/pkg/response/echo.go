// File: internal/pkg/response/echo.go
package response

import (
	"edu-admin/internal/pkg/xerrors"

	"github.com/labstack/echo/v4"
)

// Echo 框架适配器，写入 c.Response() 以便中间件拿到真实状态码

// EchoOK Echo 成功响应
func EchoOK[T any](c echo.Context, h Writer, data T) error {
	return h.WriteSuccess(c.Request().Context(), c.Response(), data)
}

// EchoError Echo 错误响应
func EchoError(c echo.Context, h Writer, err error) error {
	return h.WriteError(c.Request().Context(), c.Response(), err)
}

// EchoErrorWithData 错误响应并携带 data（如字段级校验信息）
func EchoErrorWithData(c echo.Context, h Writer, err error, data any) error {
	return h.WriteErrorWithData(c.Request().Context(), c.Response(), err, data)
}

// EchoBadRequest Echo 400 错误响应
func EchoBadRequest(c echo.Context, h Writer, message string) error {
	err := xerrors.NewValidationError("request", message)
	return h.WriteError(c.Request().Context(), c.Response(), err)
}

// EchoJSON 直接返回 JSON 响应(跳过统一包装)
func EchoJSON(c echo.Context, h Writer, data any, statusCode int) error {
	return h.WriteJSON(c.Request().Context(), c.Response(), data, statusCode)
}
