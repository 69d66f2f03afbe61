package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders calculation outcomes into one output format.
type Formatter interface {
	Name() string
	Format(outcomes []domain.CalculationOutcome) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(outcomes []domain.CalculationOutcome) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(outcomes []domain.CalculationOutcome) ([]byte, error) {
	return f.F(outcomes)
}

var formatters = map[string]Formatter{
	"console-lite": ConsoleFormatter{},
	"console":      ConsoleVerboseFormatter{},
	"csv":          CSVSummarizer{},
	"json":         JSONFormatter{},
	"yaml":         YAMLFormatter{},
	"html":         HTMLFormatter{},
	"pdf":          PDFFormatter{},
}

var formatAliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"text":            "console",
	"yml":             "yaml",
}

// GetFormatterByName resolves a formatter by name or alias, nil when unknown.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[name]; ok {
		name = canonical
	}
	return formatters[name]
}

// AvailableFormatterNames lists the canonical formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders outcomes and writes them to a timestamped report
// file in the working directory, returning its name.
func WriteFormatted(f Formatter, outcomes []domain.CalculationOutcome, ext string) (string, error) {
	data, err := f.Format(outcomes)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("inmocalc_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteTo renders outcomes into path.
func WriteTo(f Formatter, outcomes []domain.CalculationOutcome, path string) error {
	data, err := f.Format(outcomes)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Extension returns the file extension used for a formatter's output.
func Extension(f Formatter) string {
	switch f.Name() {
	case "console", "console-lite":
		return "txt"
	default:
		return f.Name()
	}
}

func roundAll(outcomes []domain.CalculationOutcome) []domain.CalculationOutcome {
	out := make([]domain.CalculationOutcome, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Rounded()
	}
	return out
}

// FormatCurrency formats a decimal as a whole currency amount
func FormatCurrency(amount decimal.Decimal) string {
	return domain.RoundCurrency(amount).StringFixed(domain.CurrencyPlaces) + " EUR"
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return domain.RoundPercent(amount).StringFixed(domain.PercentPlaces) + "%"
}
