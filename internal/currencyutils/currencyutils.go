// Package currencyutils parses statement amounts written in Brazilian or plain
// decimal notation.
package currencyutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyAmount is returned by ParseAmount for blank input.
var ErrEmptyAmount = errors.New("amount is empty")

// ParseAmount parses a signed amount such as "-23,50", "1.234,56",
// "R$ 10,00" or "-12.5" into a decimal.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	standardized := StandardizeAmount(amountStr)
	if standardized == "" || standardized == "-" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': no digits", amountStr)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount rewrites an amount into the form accepted by
// decimal.NewFromString.
//
// A comma without any dot is the decimal separator. When both are present the
// dots are thousands separators and are dropped before the comma becomes the
// decimal point. Everything but digits, dots and a leading minus is removed.
func StandardizeAmount(amountStr string) string {
	s := strings.TrimSpace(amountStr)

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && !hasDot:
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	var builder strings.Builder
	builder.Grow(len(s))
	negative := false
	seenDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			builder.WriteRune(r)
		case r == '.':
			builder.WriteRune(r)
		case r == '-' && !seenDigit && builder.Len() == 0:
			negative = true
		}
	}

	if negative && builder.Len() > 0 {
		return "-" + builder.String()
	}
	return builder.String()
}

// FormatAmount formats amount with two decimals and the Brazilian real symbol.
func FormatAmount(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-R$ " + amount.Abs().StringFixed(2)
	}
	return "R$ " + amount.StringFixed(2)
}
