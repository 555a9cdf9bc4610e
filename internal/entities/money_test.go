package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eurofurence/reg-paycomet-client/internal/apierrors"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Money
	}{
		{name: "two decimals", input: "150.00EUR", expected: Money{Cents: 15000, Currency: "EUR"}},
		{name: "no decimals", input: "15eur", expected: Money{Cents: 1500, Currency: "eur"}},
		{name: "one decimal", input: "0.5USD", expected: Money{Cents: 50, Currency: "USD"}},
		{name: "surrounding whitespace", input: " 98.75GBP ", expected: Money{Cents: 9875, Currency: "GBP"}},
		{name: "zero", input: "0EUR", expected: Money{Cents: 0, Currency: "EUR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ParseMoney(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, actual)
		})
	}
}

func TestParseMoneyErrors(t *testing.T) {
	inputs := []string{
		"",
		"150",
		"EUR",
		"abc.00EUR",
		"1.EUR",
		"-5EUR",
		"1.234EUR",
		"10EURO",
		"10E",
		"1e5EUR",
		"99999999999999999999EUR",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseMoney(input)
			require.Error(t, err)
			require.True(t, apierrors.IsParseError(err))
		})
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	inputs := []string{"150.00EUR", "0.01usd", "1234567.89Jpy", "7.10CHF"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			parsed, err := ParseMoney(input)
			require.NoError(t, err)

			reparsed, err := ParseMoney(parsed.String())
			require.NoError(t, err)
			require.Equal(t, parsed.Cents, reparsed.Cents)
			require.True(t, strings.EqualFold(parsed.Currency, reparsed.Currency))
		})
	}
}

func TestMoneyString(t *testing.T) {
	require.Equal(t, "150.00EUR", Money{Cents: 15000, Currency: "EUR"}.String())
	require.Equal(t, "0.05usd", Money{Cents: 5, Currency: "usd"}.String())
	require.Equal(t, "USD", Money{Cents: 5, Currency: "usd"}.ISOCurrency())
}
