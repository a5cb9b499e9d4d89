package validator

import (
	"errors"

	"edu-admin/internal/pkg/i18n"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// FieldErrors 字段名 -> 提示消息，每个字段只保留第一条
type FieldErrors map[string]string

// TranslateFieldErrors 将 validator 错误翻译为字段级消息
//
// 消息键为 "validation.<field>.<tag>"，未注册时使用通用提示。
func TranslateFieldErrors(err error, lang language.Tag) FieldErrors {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return FieldErrors{"request": i18n.Translate(lang, i18n.KeyFieldInvalid)}
	}

	result := make(FieldErrors, len(validationErrs))
	for _, fieldErr := range validationErrs {
		field := fieldErr.Field()
		if _, seen := result[field]; seen {
			continue
		}
		result[field] = translateFieldError(fieldErr, lang)
	}
	return result
}

func translateFieldError(fieldErr validator.FieldError, lang language.Tag) string {
	key := "validation." + fieldErr.Field() + "." + fieldErr.Tag()
	if !i18n.Has(key) {
		key = i18n.KeyFieldInvalid
	}
	return i18n.Translate(lang, key)
}

func defaultLanguage() language.Tag {
	return i18n.DefaultLanguage
}
