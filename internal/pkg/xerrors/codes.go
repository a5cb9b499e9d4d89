// File: internal/pkg/xerrors/codes.go
package xerrors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型（类型安全）
type ErrorCode int

// IsValid 检查错误码是否在预定义列表中
func (c ErrorCode) IsValid() bool {
	_, exists := codeMessages[c]
	return exists
}

// String 返回错误码的字符串表示
func (c ErrorCode) String() string {
	if msg, ok := codeMessages[c]; ok {
		return fmt.Sprintf("%d (%s)", c, msg)
	}
	return fmt.Sprintf("%d (未定义的错误码)", c)
}

// Message 返回错误码对应的默认消息
func (c ErrorCode) Message() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// -----------------------------------------------------------------------------
// 业务错误码统一定义，按领域分段
// -----------------------------------------------------------------------------
const (
	// 1xxxxx: 通用错误码
	CodeSuccess           ErrorCode = 100000 // 操作成功
	CodeInternalError     ErrorCode = 100001 // 内部服务错误
	CodeInvalidParams     ErrorCode = 100002 // 参数错误
	CodeInvalidRequest    ErrorCode = 100003 // 请求格式错误
	CodeResourceNotFound  ErrorCode = 100404 // 资源不存在
	CodeDuplicateResource ErrorCode = 100409 // 资源已存在
	CodeRateLimitExceeded ErrorCode = 100429 // 请求频率限制

	// 4xxxxx: 用户管理错误码
	CodeUserAlreadyExists ErrorCode = 400002 // 用户已存在
	CodeUsernameExists    ErrorCode = 400003 // 用户名已存在
	CodeEmailExists       ErrorCode = 400004 // 邮箱已存在

	// 6xxxxx: 业务逻辑错误码
	CodeDataIntegrityError  ErrorCode = 600002 // 数据完整性错误
	CodeOperationNotAllowed ErrorCode = 600003 // 操作不被允许
	CodeResourceLocked      ErrorCode = 600004 // 资源被锁定（同一邮箱的提交仍在处理中）

	// 7xxxxx: 外部服务错误码
	CodeExternalServiceError ErrorCode = 700001 // 外部服务错误
	CodeKratosError          ErrorCode = 700002 // Kratos服务错误
	CodeDatabaseError        ErrorCode = 700003 // 数据库错误
	CodeCacheError           ErrorCode = 700004 // 缓存服务错误
	CodeMessageQueueError    ErrorCode = 700005 // 消息队列错误
)

// 默认消息为英文，本地化消息见 i18n 包
var codeMessages = map[ErrorCode]string{
	CodeSuccess:           "Success",
	CodeInternalError:     "Internal server error",
	CodeInvalidParams:     "Invalid parameters",
	CodeInvalidRequest:    "Invalid request format",
	CodeResourceNotFound:  "Resource not found",
	CodeDuplicateResource: "Resource already exists",
	CodeRateLimitExceeded: "Too many requests",

	CodeUserAlreadyExists: "User already exists",
	CodeUsernameExists:    "Username already exists",
	CodeEmailExists:       "Email already exists",

	CodeDataIntegrityError:  "Data integrity error",
	CodeOperationNotAllowed: "Operation not allowed",
	CodeResourceLocked:      "A submission is already in progress",

	CodeExternalServiceError: "Failed to submit the form. Please try again.",
	CodeKratosError:          "Identity service error",
	CodeDatabaseError:        "Database error",
	CodeCacheError:           "Cache service error",
	CodeMessageQueueError:    "Message queue error",
}

// GetHTTPStatus 根据业务错误码获取HTTP状态码
func GetHTTPStatus(code ErrorCode) int {
	switch {
	case code == CodeSuccess:
		return http.StatusOK
	case code == CodeInvalidParams || code == CodeInvalidRequest:
		return http.StatusBadRequest
	case code == CodeResourceNotFound:
		return http.StatusNotFound
	case code == CodeDuplicateResource:
		return http.StatusConflict
	case code == CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case code >= 400000 && code < 500000:
		return http.StatusConflict
	case code == CodeResourceLocked:
		return http.StatusConflict
	case code >= 600000 && code < 700000:
		return http.StatusBadRequest
	case code == CodeExternalServiceError:
		return http.StatusBadGateway
	case code >= 700000 && code < 800000:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsExternal 是否为外部服务（Kratos、数据库、缓存、消息队列）错误
func IsExternal(code ErrorCode) bool {
	return code >= 700000 && code < 800000
}

// getCategoryByCode 根据错误码获取分类
func getCategoryByCode(code ErrorCode) string {
	switch {
	case code >= 100000 && code < 200000:
		return "system"
	case code >= 400000 && code < 500000:
		return "user"
	case code >= 600000 && code < 700000:
		return "business"
	case code >= 700000 && code < 800000:
		return "external"
	default:
		return "unknown"
	}
}

// getLevelByCode 根据错误码获取级别
func getLevelByCode(code ErrorCode) ErrorLevel {
	switch {
	case code == CodeSuccess:
		return LevelInfo
	case code >= 100002 && code <= 100003, code == CodeResourceLocked:
		return LevelWarn
	default:
		return LevelError
	}
}

// isRetryableByCode 根据错误码判断是否可重试
func isRetryableByCode(code ErrorCode) bool {
	switch code {
	case CodeInternalError, CodeExternalServiceError, CodeKratosError,
		CodeDatabaseError, CodeCacheError, CodeMessageQueueError,
		CodeRateLimitExceeded, CodeResourceLocked:
		return true
	default:
		return false
	}
}
