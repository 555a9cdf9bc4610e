package entities

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/eurofurence/reg-paycomet-client/internal/apierrors"
)

// Money is an amount in minor units (cents) together with its currency code.
//
// The currency is kept exactly as it was given. Use ISOCurrency when sending it anywhere.
type Money struct {
	Cents    int64
	Currency string
}

const centsExponent = 2

var (
	amountPattern   = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
	maxCents        = decimal.NewFromInt(math.MaxInt64)
)

// ParseMoney parses values like "150.00EUR", "15eur" or "0.5USD".
func ParseMoney(text string) (Money, error) {
	s := strings.TrimSpace(text)

	split := strings.IndexFunc(s, unicode.IsLetter)
	if split < 0 {
		return Money{}, apierrors.NewParseError("money", "missing currency in "+quote(text), nil)
	}
	number, currency := s[:split], s[split:]

	if number == "" {
		return Money{}, apierrors.NewParseError("money", "missing amount in "+quote(text), nil)
	}
	if !currencyPattern.MatchString(currency) {
		return Money{}, apierrors.NewParseError("money", "invalid currency in "+quote(text), nil)
	}
	if !amountPattern.MatchString(number) {
		return Money{}, apierrors.NewParseError("money", "invalid amount in "+quote(text), nil)
	}

	value, err := decimal.NewFromString(number)
	if err != nil {
		return Money{}, apierrors.NewParseError("money", "invalid amount in "+quote(text), err)
	}

	cents := value.Shift(centsExponent)
	if !cents.Equal(cents.Truncate(0)) {
		return Money{}, apierrors.NewParseError("money", "more than two decimals in "+quote(text), nil)
	}
	if cents.GreaterThan(maxCents) {
		return Money{}, apierrors.NewParseError("money", "amount out of range in "+quote(text), nil)
	}

	return Money{
		Cents:    cents.IntPart(),
		Currency: currency,
	}, nil
}

// String renders the value for display, e.g. "150.00EUR". The wire format never uses this.
func (m Money) String() string {
	return decimal.New(m.Cents, -centsExponent).StringFixed(centsExponent) + m.Currency
}

func (m Money) ISOCurrency() string {
	return strings.ToUpper(m.Currency)
}

func (m Money) IsZero() bool {
	return m.Cents == 0
}

// IsCurrencyCode checks for a three letter code, in any case.
func IsCurrencyCode(code string) bool {
	return currencyPattern.MatchString(code)
}

func quote(s string) string {
	return "'" + s + "'"
}
