package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/apperr"
	"github.com/go-playground/validator/v10"
)

// validationError turns validator output into a single client-facing message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperr.Validation(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "report_type":
		return field + " must be one of investment_scam, phishing, romance_scam, lottery_scam, scam_token, fake_airdrop, other"
	case "report_status":
		return field + " must be one of open, in-progress, closed, pending"
	case "email", "email_or_empty":
		return field + " must be a valid email address"
	case "url", "url_or_empty":
		return field + " must be a valid URL"
	case "gte":
		return field + " must not be negative"
	case "min":
		return field + " must not be empty"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	}
	return field + " is invalid"
}
