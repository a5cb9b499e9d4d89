// File: internal/pkg/i18n/messages.go
package i18n

import "golang.org/x/text/language"

// 注册表单与通知相关的消息键
const (
	KeyNameMin            = "validation.name.min"
	KeyEmailInvalid       = "validation.email.email"
	KeyPhoneMin           = "validation.phone.min"
	KeyUsernameMin        = "validation.username.min"
	KeyPasswordMin        = "validation.password.min"
	KeyPasswordAlnum      = "validation.password.alnum_char"
	KeyPasswordMismatch   = "validation.confirmPassword.eqfield"
	KeyFieldInvalid       = "validation.invalid"
	KeySignupSuccessTitle = "signup.success.title"
	KeySignupSuccessBody  = "signup.success.message"
	KeySignupFailureTitle = "signup.failure.title"
	KeySignupFailureBody  = "signup.failure.message"
	KeySignupPendingBody  = "signup.pending.message"
)

var catalogEntries = map[string]map[language.Tag]string{
	KeyNameMin: {
		language.English: "Name must be at least 2 characters long",
		language.Chinese: "姓名至少需要 2 个字符",
	},
	KeyEmailInvalid: {
		language.English: "Invalid email address",
		language.Chinese: "邮箱地址无效",
	},
	KeyPhoneMin: {
		language.English: "Phone number must be valid",
		language.Chinese: "请输入有效的手机号码",
	},
	KeyUsernameMin: {
		language.English: "Username must be at least 3 characters long",
		language.Chinese: "用户名至少需要 3 个字符",
	},
	KeyPasswordMin: {
		language.English: "Password must be at least 6 characters long",
		language.Chinese: "密码至少需要 6 个字符",
	},
	KeyPasswordAlnum: {
		language.English: "Password must be alphanumeric",
		language.Chinese: "密码必须包含字母或数字",
	},
	KeyPasswordMismatch: {
		language.English: "Passwords do not match",
		language.Chinese: "两次输入的密码不一致",
	},
	KeyFieldInvalid: {
		language.English: "Invalid value",
		language.Chinese: "字段值无效",
	},
	KeySignupSuccessTitle: {
		language.English: "You submitted the following values:",
		language.Chinese: "您提交了以下信息：",
	},
	KeySignupSuccessBody: {
		language.English: "Admin account created",
		language.Chinese: "管理员账号已创建",
	},
	KeySignupFailureTitle: {
		language.English: "Error",
		language.Chinese: "错误",
	},
	KeySignupFailureBody: {
		language.English: "Failed to submit the form. Please try again.",
		language.Chinese: "表单提交失败，请重试。",
	},
	KeySignupPendingBody: {
		language.English: "A submission is already in progress",
		language.Chinese: "该邮箱的注册请求正在处理中",
	},
}

func init() {
	for key, translations := range catalogEntries {
		for lang, msg := range translations {
			if err := messages.SetString(lang, key, msg); err != nil {
				panic(err)
			}
		}
	}
}

// Has 判断消息键是否已注册
func Has(key string) bool {
	_, ok := catalogEntries[key]
	return ok
}
