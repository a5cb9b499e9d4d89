package validator

import (
	"reflect"
	"strings"

	"edu-admin/internal/pkg/xerrors"

	"github.com/go-playground/validator/v10"
)

// Registrar 注册自定义校验规则
type Registrar func(v *validator.Validate) error

// NewEngine 创建 validator 实例，错误中的字段名使用 json tag
func NewEngine(registrars ...Registrar) (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	for _, register := range registrars {
		if err := register(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// CustomValidator wraps go-playground validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// New 创建 Echo 使用的校验器
func New(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return xerrors.NewFieldValidationError(TranslateFieldErrors(err, defaultLanguage()))
	}
	return nil
}
