// File: internal/pkg/i18n/i18n.go
package i18n

import (
	"context"
	"strings"

	"edu-admin/internal/pkg/ctxkey"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	// DefaultLanguage 默认语言为英文，与管理后台前端保持一致
	DefaultLanguage = language.English
	// SupportedLanguages 支持的语言列表，顺序即匹配优先级
	SupportedLanguages = []language.Tag{
		language.English,
		language.Chinese,
	}
	matcher = language.NewMatcher(SupportedLanguages)

	messages = catalog.NewBuilder(catalog.Fallback(DefaultLanguage))
)

// WithLanguage 在 context 中设置语言偏好
func WithLanguage(ctx context.Context, lang language.Tag) context.Context {
	return context.WithValue(ctx, ctxkey.Language, lang)
}

// GetLanguage 从 context 中获取语言偏好
func GetLanguage(ctx context.Context) language.Tag {
	if lang, ok := ctx.Value(ctxkey.Language).(language.Tag); ok {
		return lang
	}
	return DefaultLanguage
}

// ParseAcceptLanguage 解析 Accept-Language 头部并返回支持列表中的语言
// 例如: "zh-CN,zh;q=0.9,en;q=0.8"
func ParseAcceptLanguage(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return DefaultLanguage
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}

	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage
	}
	return SupportedLanguages[idx]
}

// ParseLanguageCode 从语言代码解析 Tag，支持 "zh", "zh-CN", "en", "en-US" 等
func ParseLanguageCode(code string) language.Tag {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return DefaultLanguage
	}

	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLanguage
	}

	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLanguage
	}
	return SupportedLanguages[idx]
}

// T 翻译函数，从 context 中获取语言
func T(ctx context.Context, key string, args ...interface{}) string {
	return Translate(GetLanguage(ctx), key, args...)
}

// Translate 直接翻译（不依赖 context）
func Translate(lang language.Tag, key string, args ...interface{}) string {
	p := message.NewPrinter(lang, message.Catalog(messages))
	return p.Sprintf(key, args...)
}

// GetLanguageCode 获取语言代码 (zh, en)
func GetLanguageCode(lang language.Tag) string {
	base, _ := lang.Base()
	return base.String()
}
