// Package scenes holds the calculator screens of the terminal UI.
package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/rgehrsitz/inmocalc/internal/tui/tuistyles"
)

// parseAmount reads a decimal typed by the user. Spaces, underscores and a
// trailing "%" or "EUR" are ignored; a comma counts as the decimal separator
// when no dot is present.
func parseAmount(field, s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSuffix(v, "%")
	v = strings.TrimSuffix(strings.TrimSpace(v), "EUR")
	v = strings.NewReplacer(" ", "", "_", "").Replace(v)
	if !strings.Contains(v, ".") {
		v = strings.Replace(v, ",", ".", 1)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, domain.NewInvalidInput(field, s, "not a number")
	}
	return d, nil
}

func parseYears(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.NewInvalidInput(field, s, "not a whole number of years")
	}
	return n, nil
}

// parseYesNo accepts y/yes/true/1 and n/no/false/0 (and the Spanish si).
func parseYesNo(field, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "si", "sí", "s":
		return true, nil
	case "n", "no", "false", "0", "":
		return false, nil
	}
	return false, domain.NewInvalidInput(field, s, "answer y or n")
}

func renderError(err error) string {
	return tuistyles.ErrorStyle.Render(fmt.Sprintf("Error: %v", err))
}
