package server

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// requestValidator validates request bodies and reports violations with the
// JSON field names clients actually sent.
type requestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newRequestValidator() (*requestValidator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &requestValidator{
		validate:   validate,
		translator: trans,
	}, nil
}

func (v *requestValidator) check(req any) []fieldViolation {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []fieldViolation{{Field: "", Description: err.Error()}}
	}

	violations := make([]fieldViolation, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		violations = append(violations, fieldViolation{
			Field:       fieldError.Field(),
			Description: fieldError.Translate(v.translator),
		})
	}
	return violations
}
