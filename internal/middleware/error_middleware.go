package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/response"
	"edu-admin/internal/pkg/xerrors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware 统一错误处理中间件，将 handler 返回的错误写成统一响应
func ErrorMiddleware(respWriter response.Writer, logger log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil || c.Response().Committed {
				return err
			}
			return writeError(c, respWriter, logger, err)
		}
	}
}

// HTTPErrorHandler 替换 Echo 默认的错误处理器
//
// 中间件内部通过 c.Error 上报的错误（如限流拒绝）不会经过 ErrorMiddleware，
// 需要由它写成统一响应。
func HTTPErrorHandler(respWriter response.Writer, logger log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}
		if writeErr := writeError(c, respWriter, logger, err); writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "写入错误响应失败", log.Err(writeErr))
		}
	}
}

func writeError(c echo.Context, respWriter response.Writer, logger log.Logger, err error) error {
	ctx := c.Request().Context()

	var appErr *xerrors.AppError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		return respWriter.WriteError(ctx, c.Response(), appErr)

	case errors.As(err, &echoErr):
		return respWriter.WriteError(ctx, c.Response(), convertEchoError(echoErr))

	default:
		logger.ErrorContext(ctx, "未处理的错误",
			log.Any("original_error", err),
			log.String("error_type", fmt.Sprintf("%T", err)),
		)
		wrapped := xerrors.NewWithError(xerrors.CodeInternalError, "系统内部错误", err).
			WithService("echo-middleware", "error_handler")
		return respWriter.WriteError(ctx, c.Response(), wrapped)
	}
}

// convertEchoError 将 Echo 错误转换为业务错误
func convertEchoError(echoErr *echo.HTTPError) *xerrors.AppError {
	var code xerrors.ErrorCode
	switch echoErr.Code {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		code = xerrors.CodeInvalidRequest
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		code = xerrors.CodeResourceNotFound
	case http.StatusConflict:
		code = xerrors.CodeDuplicateResource
	case http.StatusTooManyRequests:
		code = xerrors.CodeRateLimitExceeded
	default:
		code = xerrors.CodeInternalError
	}
	return xerrors.FromCode(code).
		WithMetadata("echo_code", echoErr.Code).
		WithMetadata("echo_message", fmt.Sprintf("%v", echoErr.Message))
}
