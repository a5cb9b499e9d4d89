package response

import (
	"context"
	"encoding/json"
	"net/http"

	"edu-admin/internal/pkg/i18n"
	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/trace"
	"edu-admin/internal/pkg/xerrors"
)

// Writer 统一响应写入接口，handler 与中间件共用
type Writer interface {
	WriteSuccess(ctx context.Context, w http.ResponseWriter, data any) error
	WriteError(ctx context.Context, w http.ResponseWriter, err error) error
	WriteErrorWithData(ctx context.Context, w http.ResponseWriter, err error, data any) error
	WriteJSON(ctx context.Context, w http.ResponseWriter, data any, statusCode int) error
}

// ResponseHandler Writer 的默认实现
type ResponseHandler struct {
	logger      log.Logger
	environment string
}

// NewResponseHandler 创建响应处理器，production 环境不返回错误详情
func NewResponseHandler(logger log.Logger, environment string) *ResponseHandler {
	return &ResponseHandler{
		logger:      logger,
		environment: environment,
	}
}

func (h *ResponseHandler) WriteSuccess(ctx context.Context, w http.ResponseWriter, data any) error {
	lang := i18n.GetLanguage(ctx)
	resp := Success(&data, i18n.GetErrorMessage(xerrors.CodeSuccess, lang))
	resp.TraceId = trace.GetTraceID(ctx)
	return JSON(w, http.StatusOK, resp)
}

func (h *ResponseHandler) WriteError(ctx context.Context, w http.ResponseWriter, err error) error {
	return h.writeError(ctx, w, err, nil)
}

func (h *ResponseHandler) WriteErrorWithData(ctx context.Context, w http.ResponseWriter, err error, data any) error {
	return h.writeError(ctx, w, err, &data)
}

func (h *ResponseHandler) WriteJSON(ctx context.Context, w http.ResponseWriter, data any, statusCode int) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func (h *ResponseHandler) writeError(ctx context.Context, w http.ResponseWriter, err error, data *any) error {
	appErr := xerrors.Wrap(err, xerrors.CodeInternalError, "未处理的错误")
	if appErr == nil {
		appErr = xerrors.FromCode(xerrors.CodeInternalError)
	}

	traceID := trace.GetTraceID(ctx)
	if traceID != "" {
		appErr.WithTraceID(traceID)
	}

	status := xerrors.GetHTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		log.LogAppError(ctx, h.logger, "请求处理失败", appErr)
	}

	var detail string
	if h.exposeDetail(appErr) {
		detail = appErr.Error()
	}

	resp := Error(int(appErr.Code), i18n.GetErrorMessage(appErr.Code, i18n.GetLanguage(ctx)), detail, data)
	resp.TraceId = traceID
	return JSON(w, status, resp)
}

// exposeDetail 非 production 环境返回错误详情，外部服务错误除外：
// 其原因链包含 Kratos / 数据库的原始响应，只允许出现在日志中
func (h *ResponseHandler) exposeDetail(appErr *xerrors.AppError) bool {
	if h.environment == "production" {
		return false
	}
	return !xerrors.IsExternal(appErr.Code)
}
