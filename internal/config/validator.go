package config

import (
	"reflect"
	"strings"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/models"
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("report_type", validateReportType)
	_ = v.RegisterValidation("report_status", validateReportStatus)
	_ = v.RegisterValidation("email_or_empty", emptyOr(v, "email"))
	_ = v.RegisterValidation("url_or_empty", emptyOr(v, "url"))
	return v
}

// emptyOr accepts "" and otherwise applies tag. omitempty does not skip a
// non-nil pointer to an empty string, which a clearing PATCH sends.
func emptyOr(v *validator.Validate, tag string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || v.Var(s, tag) == nil
	}
}

func validateReportType(fl validator.FieldLevel) bool {
	return models.IsValidReportType(fl.Field().String())
}

func validateReportStatus(fl validator.FieldLevel) bool {
	return models.IsValidReportStatus(fl.Field().String())
}
