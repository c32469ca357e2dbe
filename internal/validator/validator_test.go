package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type topUp struct {
	Amount decimal.Decimal `validate:"required,positive_amount"`
}

type toggle struct {
	SectionPosition string   `validate:"required,section_position"`
	SeatIds         []string `validate:"required,min=1,max=2"`
}

func firstMessage(t *testing.T, err error) string {
	t.Helper()

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs), "expected validation errors, got %v", err)

	return ValidationMessage(validationErrs[0])
}

func TestDecimalRules(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantMsg string
	}{
		{name: "positive", amount: decimal.RequireFromString("12.50")},
		{name: "zero counts as missing", amount: decimal.Zero, wantMsg: ErrRequired},
		{name: "negative", amount: decimal.RequireFromString("-1"), wantMsg: ErrPositiveAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(topUp{Amount: tt.amount})
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			assert.Equal(t, tt.wantMsg, firstMessage(t, err))
		})
	}
}

func TestSectionPositionAndLength(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(toggle{SectionPosition: "left", SeatIds: []string{"s-1"}}))
	assert.Equal(t, ErrSectionPos, firstMessage(t, v.Struct(toggle{SectionPosition: "BALCONY", SeatIds: []string{"s-1"}})))
	assert.Equal(t, "must be at least 1", firstMessage(t, v.Struct(toggle{SectionPosition: "RIGHT", SeatIds: []string{}})))
	assert.Equal(t, "must be at most 2", firstMessage(t, v.Struct(toggle{SectionPosition: "RIGHT", SeatIds: []string{"a", "b", "c"}})))
}
