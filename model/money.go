/*
Copyright 2025 Concilia Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package model

import (
	"math"

	"github.com/rmachado/concilia/internal/apierror"
	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary value held as an integer number of
// centavos. Arithmetic on Money never touches binary floating point;
// conversion from decimal input happens once, at construction, with
// round-half-up to two fractional digits.
type Money int64

// ParseMoney builds a Money from a decimal string such as "12.34".
// Values with more than two fractional digits are rounded half-up.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInvalidMonetaryValue, "invalid monetary value: "+s, err)
	}
	return fromDecimal(d), nil
}

// MoneyFromFloat builds a Money from a float64 carried by a parsed
// record. Non-finite values are rejected with InvalidMonetaryValue.
func MoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apierror.NewAPIError(apierror.ErrInvalidMonetaryValue, "monetary value is not finite", f)
	}
	return fromDecimal(decimal.NewFromFloat(f)), nil
}

// MoneyFromCents wraps an already-scaled centavo amount.
func MoneyFromCents(cents int64) Money {
	return Money(cents)
}

func fromDecimal(d decimal.Decimal) Money {
	// Round rounds half away from zero, which is half-up for the
	// non-negative amounts billing extracts carry.
	return Money(d.Round(2).Shift(2).IntPart())
}

func (m Money) Add(other Money) Money { return m + other }

func (m Money) Sub(other Money) Money { return m - other }

// MulInt multiplies by an integer quantity. Exact: centavos times a
// count needs no rounding.
func (m Money) MulInt(qty int64) Money { return m * Money(qty) }

func (m Money) Neg() Money { return -m }

func (m Money) Cents() int64 { return int64(m) }

// EqualsWithinTolerance reports whether two values differ by at most
// toleranceCents centavos.
func (m Money) EqualsWithinTolerance(other Money, toleranceCents int64) bool {
	diff := int64(m - other)
	if diff < 0 {
		diff = -diff
	}
	return diff <= toleranceCents
}

// Decimal returns the value as a two-place decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON encodes Money as a decimal string, e.g. "12.34".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both a quoted decimal string and a bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
