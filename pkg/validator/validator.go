// Package validator wraps go-playground/validator with en / zh translations.
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/pkg/errors"

	"github.com/haierkeys/note-discord-share/pkg/code"
)

// Validator 带翻译的结构体校验器
type Validator struct {
	validate *validatorV10.Validate
	uni      *ut.UniversalTranslator
}

// New creates a validator reporting field names by their json tag.
// New 创建校验器，字段名使用 json 标签
func New() (*Validator, error) {
	validate := validatorV10.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	uni := ut.New(en.New(), en.New(), zh.New())

	zhTran, _ := uni.GetTranslator("zh")
	enTran, _ := uni.GetTranslator("en")

	if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
		return nil, errors.Wrap(err, "register zh translations")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
		return nil, errors.Wrap(err, "register en translations")
	}

	return &Validator{validate: validate, uni: uni}, nil
}

// Struct validates s and returns the translated messages of every failing field.
// The translation follows the global notice language.
// Struct 校验结构体，返回按当前提示语言翻译后的错误信息
func (v *Validator) Struct(s any) ([]string, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validatorV10.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, errors.Wrap(err, "validate")
	}

	locale := "en"
	if code.GetGlobalDefaultLang() == code.LangZhCN {
		locale = "zh"
	}
	trans, _ := v.uni.GetTranslator(locale)

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return msgs, nil
}

// Var validates a single value against a tag, e.g. Var(u, "required,url").
func (v *Validator) Var(field any, tag string) bool {
	return v.validate.Var(field, tag) == nil
}
