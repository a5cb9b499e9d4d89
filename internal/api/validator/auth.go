package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var alnumCharPattern = regexp.MustCompile(`[a-zA-Z0-9]`)

// RegisterAuthValidators 注册认证相关的自定义验证器
func RegisterAuthValidators(v *validator.Validate) error {
	return v.RegisterValidation("alnum_char", validateAlnumChar)
}

// validateAlnumChar 至少包含一个 ASCII 字母或数字
func validateAlnumChar(fl validator.FieldLevel) bool {
	return alnumCharPattern.MatchString(fl.Field().String())
}
