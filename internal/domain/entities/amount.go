package entities

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidAmountValue = errors.New("amount value must be a decimal string like \"100.00\"")
	ErrInvalidCurrency    = errors.New("currency must be a 3-letter uppercase code")
)

// Amount is a monetary value as the gateway represents it: the value is a
// fixed-format decimal string, never a float, so nothing is lost to rounding.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

var (
	amountValuePattern = regexp.MustCompile(`^\d+\.\d{2}$`)
	currencyPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Validate checks the wire-format invariants before an amount is sent out.
func (a Amount) Validate() error {
	if !amountValuePattern.MatchString(a.Value) {
		return ErrInvalidAmountValue
	}
	if !currencyPattern.MatchString(a.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}
