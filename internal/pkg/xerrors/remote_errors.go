// File: internal/pkg/xerrors/remote_errors.go
package xerrors

import "net/http"

// 元数据键
const (
	MetaReason       = "reason"
	MetaFieldErrors  = "field_errors"
	MetaKratosStatus = "kratos_status"
	MetaPgCode       = "pg_code"
)

// 远程调用失败原因，只出现在日志、指标与事件中
const (
	ReasonDuplicateIdentity = "duplicate_identity"
	ReasonPolicyViolation   = "policy_violation"
	ReasonUnavailable       = "unavailable"
	ReasonInvalidResponse   = "invalid_response"
	ReasonDuplicateProfile  = "duplicate_profile"
	ReasonStoreError        = "store_error"
	ReasonUnknown           = "unknown"
)

// ClassifyKratosStatus 按 Kratos Admin API 返回的 HTTP 状态码归类失败原因
//
// status 为 0 表示请求未得到响应（网络错误、超时）。
func ClassifyKratosStatus(status int) string {
	switch {
	case status == http.StatusConflict:
		return ReasonDuplicateIdentity
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ReasonPolicyViolation
	case status == 0, status >= http.StatusInternalServerError:
		return ReasonUnavailable
	default:
		return ReasonUnknown
	}
}

// NewKratosError 创建 Kratos 调用错误，status 为 0 时视为网络层失败
func NewKratosError(operation string, status int, err error) *AppError {
	appErr := FromCode(CodeKratosError).
		WithMetadata("kratos_operation", operation).
		WithMetadata(MetaKratosStatus, status).
		WithMetadata(MetaReason, ClassifyKratosStatus(status))
	if err != nil {
		appErr.Err = err
	}
	return appErr
}

// NewKratosDataIntegrityError Kratos 返回的数据不符合预期
func NewKratosDataIntegrityError(field string, reason string) *AppError {
	return FromCode(CodeDataIntegrityError).
		WithMetadata("field", field).
		WithMetadata("integrity_reason", reason).
		WithMetadata(MetaReason, ReasonInvalidResponse).
		WithMetadata("source", "kratos")
}

// NewDuplicateProfileError profiles 表唯一约束冲突
func NewDuplicateProfileError(constraint, pgCode string, err error) *AppError {
	appErr := FromCode(CodeDuplicateResource).
		WithMetadata("resource", "profile").
		WithMetadata("constraint", constraint).
		WithMetadata(MetaPgCode, pgCode).
		WithMetadata(MetaReason, ReasonDuplicateProfile)
	appErr.Err = err
	return appErr
}

// ReasonOf 读取错误链中 AppError 携带的失败原因
func ReasonOf(err error) string {
	appErr, ok := As(err)
	if !ok {
		return ""
	}
	if reason, ok := appErr.Metadata(MetaReason).(string); ok {
		return reason
	}
	return ""
}

// FieldErrorsOf 读取校验错误中的字段提示
func FieldErrorsOf(err error) map[string]string {
	appErr, ok := As(err)
	if !ok {
		return nil
	}
	fields, _ := appErr.Metadata(MetaFieldErrors).(map[string]string)
	return fields
}
