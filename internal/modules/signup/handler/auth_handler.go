package handler

import (
	"context"

	authreq "edu-admin/internal/api/request/auth"
	authresp "edu-admin/internal/api/response/auth"
	"edu-admin/internal/modules/signup/service"
	"edu-admin/internal/pkg/response"

	"github.com/labstack/echo/v4"
)

// Registrar 注册流程
type Registrar interface {
	Submit(ctx context.Context, form authreq.RegisterRequest) (*service.SubmitResult, error)
}

var _ Registrar = (*service.RegistrationService)(nil)

// AuthHandler handles admin signup HTTP requests
type AuthHandler struct {
	registrar  Registrar
	respWriter response.Writer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(registrar Registrar, respWriter response.Writer) *AuthHandler {
	return &AuthHandler{
		registrar:  registrar,
		respWriter: respWriter,
	}
}

// Register handles admin registration
// @Summary 管理员注册
// @Description 校验表单后依次创建 Kratos 身份与管理员资料，成功时返回跳转地址与通知
// @Tags 认证
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body authreq.RegisterRequest true "注册请求"
// @Success 200 {object} response.ResponseResult[authresp.RegisterResult] "注册成功"
// @Failure 400 {object} response.ResponseResult[authresp.RegisterFailure] "表单校验失败"
// @Failure 409 {object} response.ResponseResult[authresp.RegisterFailure] "同一邮箱的注册正在处理中"
// @Failure 429 {object} response.ResponseResult[any] "请求过于频繁"
// @Failure 502 {object} response.ResponseResult[authresp.RegisterFailure] "远程服务调用失败"
// @Router /admin/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req authreq.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.EchoBadRequest(c, h.respWriter, "invalid request body")
	}

	result, err := h.registrar.Submit(c.Request().Context(), req)
	if err != nil {
		failure := authresp.RegisterFailure{}
		if result != nil {
			failure.FieldErrors = result.FieldErrors
			failure.Notification = result.Notification
		}
		return response.EchoErrorWithData(c, h.respWriter, err, failure)
	}

	resp := authresp.RegisterResult{
		UserID:     result.UserID,
		RedirectTo: result.RedirectTo,
	}
	if result.Notification != nil {
		resp.Notification = *result.Notification
	}
	return response.EchoOK(c, h.respWriter, resp)
}
