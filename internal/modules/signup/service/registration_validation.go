package service

import (
	"strings"
	"sync"

	authreq "edu-admin/internal/api/request/auth"
	apivalidator "edu-admin/internal/api/validator"
	"edu-admin/internal/pkg/i18n"
	pkgvalidator "edu-admin/internal/pkg/validator"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// Registration 通过校验、已规范化的注册数据
type Registration struct {
	Name     string
	Email    string
	Phone    string
	Username string
	Password string
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
	engineErr  error
)

func registrationEngine() (*validator.Validate, error) {
	engineOnce.Do(func() {
		engine, engineErr = pkgvalidator.NewEngine(apivalidator.RegisterAuthValidators)
	})
	return engine, engineErr
}

// NormalizeForm 去除姓名、邮箱、手机号、用户名两端空白，邮箱转小写；密码原样保留
func NormalizeForm(form authreq.RegisterRequest) authreq.RegisterRequest {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.Phone = strings.TrimSpace(form.Phone)
	form.Username = strings.TrimSpace(form.Username)
	return form
}

// ValidateRegistration 校验注册表单，不做任何网络调用
//
// 返回的 FieldErrors 非空时表示表单无效，每个字段只保留第一条提示。
func ValidateRegistration(form authreq.RegisterRequest, lang language.Tag) (Registration, pkgvalidator.FieldErrors) {
	form = NormalizeForm(form)

	v, err := registrationEngine()
	if err != nil {
		return Registration{}, pkgvalidator.FieldErrors{"request": i18n.Translate(lang, i18n.KeyFieldInvalid)}
	}

	if err := v.Struct(&form); err != nil {
		return Registration{}, pkgvalidator.TranslateFieldErrors(err, lang)
	}

	return Registration{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Username: form.Username,
		Password: form.Password,
	}, nil
}
