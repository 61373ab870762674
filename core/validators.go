package core

import (
	"reflect"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom validation tags & texts
const (
	extIDTag  = "extid"
	extIDText = "must look like STU-001 (3 letters, a dash, digits)"

	requiredTag  = "required"
	requiredText = "this field is required"
)

var extIDRegex = regexp.MustCompile(`^[A-Za-z]{3}-\d+$`)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// external-ID shape (the role-scoped credential identifier)
	_ = validate.RegisterValidation(extIDTag, func(fl validator.FieldLevel) bool {
		return extIDRegex.MatchString(fl.Field().String())
	})
	RegisterCustomTranslation(validate, translator, extIDTag, extIDText, false)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override bool) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}
