// File: internal/pkg/i18n/error_messages.go
package i18n

import (
	"edu-admin/internal/pkg/xerrors"

	"golang.org/x/text/language"
)

// ErrorMessages 错误消息的多语言映射
var ErrorMessages = map[xerrors.ErrorCode]map[language.Tag]string{
	xerrors.CodeSuccess:           {language.English: "Success", language.Chinese: "操作成功"},
	xerrors.CodeInternalError:     {language.English: "Internal server error", language.Chinese: "内部服务错误"},
	xerrors.CodeInvalidParams:     {language.English: "Invalid parameters", language.Chinese: "参数错误"},
	xerrors.CodeInvalidRequest:    {language.English: "Invalid request format", language.Chinese: "请求格式错误"},
	xerrors.CodeResourceNotFound:  {language.English: "Resource not found", language.Chinese: "资源不存在"},
	xerrors.CodeDuplicateResource: {language.English: "Resource already exists", language.Chinese: "资源已存在"},
	xerrors.CodeRateLimitExceeded: {language.English: "Too many requests", language.Chinese: "请求频率限制"},

	xerrors.CodeUserAlreadyExists: {language.English: "User already exists", language.Chinese: "用户已存在"},
	xerrors.CodeUsernameExists:    {language.English: "Username already exists", language.Chinese: "用户名已存在"},
	xerrors.CodeEmailExists:       {language.English: "Email already exists", language.Chinese: "邮箱已存在"},

	xerrors.CodeDataIntegrityError:  {language.English: "Data integrity error", language.Chinese: "数据完整性错误"},
	xerrors.CodeOperationNotAllowed: {language.English: "Operation not allowed", language.Chinese: "操作不被允许"},
	xerrors.CodeResourceLocked:      {language.English: "A submission is already in progress", language.Chinese: "该邮箱的注册请求正在处理中"},

	xerrors.CodeExternalServiceError: {language.English: "Failed to submit the form. Please try again.", language.Chinese: "表单提交失败，请重试。"},
	xerrors.CodeKratosError:          {language.English: "Identity service error", language.Chinese: "身份服务错误"},
	xerrors.CodeDatabaseError:        {language.English: "Database error", language.Chinese: "数据库错误"},
	xerrors.CodeCacheError:           {language.English: "Cache service error", language.Chinese: "缓存服务错误"},
	xerrors.CodeMessageQueueError:    {language.English: "Message queue error", language.Chinese: "消息队列错误"},
}

// GetErrorMessage 获取错误码对应语言的消息，缺少翻译时回退到英文
func GetErrorMessage(code xerrors.ErrorCode, lang language.Tag) string {
	if messages, ok := ErrorMessages[code]; ok {
		if msg, ok := messages[lang]; ok {
			return msg
		}
		if msg, ok := messages[DefaultLanguage]; ok {
			return msg
		}
	}
	return code.Message()
}
