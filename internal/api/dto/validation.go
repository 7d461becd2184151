package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/noorskin/storefront/pkg/util/errorutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldMessages = map[string]string{
	"required": "هذا الحقل مطلوب",
	"email":    "البريد الإلكتروني غير صالح",
	"url":      "الرابط غير صالح",
	"gt":       "القيمة يجب أن تكون أكبر من الصفر",
	"gte":      "القيمة أقل من الحد المسموح",
	"gtefield": "القيمة أقل من الحد المسموح",
	"lte":      "القيمة أكبر من الحد المسموح",
	"min":      "القيمة أقصر من الحد المسموح",
	"max":      "القيمة أطول من الحد المسموح",
}

// Validate checks struct tags and returns a VALIDATION_ERROR keyed by json field name.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("", nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "القيمة غير صالحة"
		}
		details[fieldPath(fe)] = msg
	}
	return apperrors.NewValidationError("", details)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}
