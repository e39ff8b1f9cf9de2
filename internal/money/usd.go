// Package money parses and formats US dollar amounts held as integer cents.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// ParseUSD reads a non-negative dollar amount such as "150000", "1,250.5"
// or "$95,000.00" into cents.
func ParseUSD(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(clean, "-") {
		return 0, fmt.Errorf("amount %q must not be negative", raw)
	}
	whole, frac, hasFrac := strings.Cut(clean, ".")
	if whole == "" {
		whole = "0"
	}
	if !digits(whole) || !digits(frac) {
		return 0, fmt.Errorf("amount %q is not a number", raw)
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", raw)
	}
	var cents int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("amount %q needs one or two decimal places", raw)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("amount %q is not a number", raw)
		}
	}
	if dollars > (1<<63-1-cents)/100 {
		return 0, fmt.Errorf("amount %q is too large", raw)
	}
	return dollars*100 + cents, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatUSD renders cents with digit grouping, e.g. $150,000.00.
func FormatUSD(cents int64) string {
	return Format("$", cents)
}

// Format renders cents with the given currency symbol.
func Format(symbol string, cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, printer.Sprintf("%d", cents/100), cents%100)
}

// Compact renders large amounts the way metric cards do: $2.8M, $310K.
func Compact(symbol string, cents int64) string {
	dollars := float64(cents) / 100
	switch {
	case dollars >= 1_000_000:
		return fmt.Sprintf("%s%.1fM", symbol, dollars/1_000_000)
	case dollars >= 1_000:
		return fmt.Sprintf("%s%.0fK", symbol, dollars/1_000)
	}
	return fmt.Sprintf("%s%.0f", symbol, dollars)
}
