package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a payment amount in the currency's minor unit. "Explicitly
// zero" (zero-dollar mandate setup, account verification) is distinguishable
// from a missing amount at the type level: the zero value of Amount is Zero,
// and absent amounts are represented as *Amount(nil) by callers.
//
// An Amount can never hold a negative value - construction and
// deserialization both reject them rather than clamping.
type Amount struct {
	value int64
}

// AmountZero is the explicit zero amount.
var AmountZero = Amount{}

// NewAmount builds an Amount from a minor-unit value.
// Negative inputs are rejected, never clamped.
func NewAmount(v int64) (Amount, error) {
	if v < 0 {
		return Amount{}, fmt.Errorf("amount cannot be negative: %d", v)
	}
	return Amount{value: v}, nil
}

// I64 returns the minor-unit value. Total and lossless for every
// constructible Amount.
func (a Amount) I64() int64 {
	return a.value
}

// IsZero reports whether this is the explicit zero amount.
func (a Amount) IsZero() bool {
	return a.value == 0
}

// MarshalJSON encodes the amount as a plain minor-unit integer.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.value)
}

// UnmarshalJSON decodes a minor-unit integer, rejecting negatives.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	amt, err := NewAmount(v)
	if err != nil {
		return err
	}
	*a = amt
	return nil
}

// MinorUnitConverter converts minor-unit amounts to the decimal string
// representation a connector expects and back. Adapters share one immutable
// converter instance; it holds no mutable state and is safe for concurrent
// use without locking.
type MinorUnitConverter struct{}

// exponents for currencies that don't use two decimal places
var currencyExponents = map[Currency]int32{
	CurrencyJPY: 0,
	CurrencyKRW: 0,
	CurrencyVND: 0,
	CurrencyBHD: 3,
	CurrencyKWD: 3,
	CurrencyOMR: 3,
}

func currencyExponent(currency Currency) int32 {
	if exp, ok := currencyExponents[currency]; ok {
		return exp
	}
	return 2
}

// ToMajorUnitString renders an Amount as a decimal string in major units,
// e.g. 1000 minor units of USD -> "10.00", of JPY -> "1000".
func (MinorUnitConverter) ToMajorUnitString(amount Amount, currency Currency) string {
	exp := currencyExponent(currency)
	return decimal.NewFromInt(amount.I64()).Shift(-exp).StringFixed(exp)
}

// FromMajorUnitString parses a connector decimal string back into a
// minor-unit Amount. Fails on negative values or amounts with more
// precision than the currency carries.
func (MinorUnitConverter) FromMajorUnitString(s string, currency Currency) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	minor := d.Shift(currencyExponent(currency))
	if !minor.IsInteger() {
		return Amount{}, fmt.Errorf("amount %q has sub-minor-unit precision for %s", s, currency)
	}
	return NewAmount(minor.IntPart())
}
