package validator

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	ErrRequired       = "is required"
	ErrMinLength      = "must be at least %s"
	ErrMaxLength      = "must be at most %s"
	ErrPositiveAmount = "must be a positive amount"
	ErrSectionPos     = "must be one of LEFT, CENTER, RIGHT"
	ErrDefaultInvalid = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// decimal.Decimal is a struct; validate it by its value so "required" means non-zero
	validator.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			if d.IsZero() {
				return ""
			}
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	validator.RegisterValidation("positive_amount", validatePositiveAmount)
	validator.RegisterValidation("section_position", validateSectionPosition)

	return validator
}

func validatePositiveAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}

	return amount.IsPositive()
}

func validateSectionPosition(fl validator.FieldLevel) bool {
	_, err := domain.ParseSectionPosition(fl.Field().String())
	return err == nil
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "positive_amount":
		return ErrPositiveAmount
	case "section_position":
		return ErrSectionPos
	default:
		return ErrDefaultInvalid
	}
}
