package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rgehrsitz/inmocalc/internal/calculation"
	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildTestOutcomes(t *testing.T) []domain.CalculationOutcome {
	t.Helper()
	engine := calculation.NewEngine()
	outcomes, err := engine.RunAll(t.Context(), []domain.Calculation{
		{
			Name: "Flat in Madrid",
			Kind: domain.KindMortgage,
			Mortgage: &domain.MortgageParams{
				PropertyPrice:             decimal.NewFromInt(250000),
				DownPayment:               decimal.NewFromInt(50000),
				AnnualInterestRatePercent: decimal.NewFromFloat(3.5),
				TermYears:                 25,
			},
		},
		{
			Name: "Madrid resale",
			Kind: domain.KindPurchaseCosts,
			PurchaseCosts: &domain.PurchaseCostParams{
				PropertyPrice: decimal.NewFromInt(250000),
				Region:        "Madrid",
				HasMortgage:   true,
			},
		},
		{
			Name: "Sale",
			Kind: domain.KindCapitalGains,
			CapitalGains: &domain.CapitalGainsParams{
				PurchasePrice:               decimal.NewFromInt(200000),
				PurchaseCosts:               decimal.NewFromInt(15000),
				SalePrice:                   decimal.NewFromInt(300000),
				SaleCosts:                   decimal.NewFromInt(15000),
				YearsOwned:                  10,
				MunicipalCoefficientPercent: decimal.NewFromInt(3),
			},
		},
	})
	require.NoError(t, err)
	return outcomes
}

func TestFormatterFunc_Format(t *testing.T) {
	called := false
	var received []domain.CalculationOutcome

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(outcomes []domain.CalculationOutcome) ([]byte, error) {
			called = true
			received = outcomes
			return []byte("test output"), nil
		},
	}

	outcomes := buildTestOutcomes(t)
	out, err := formatter.Format(outcomes)

	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, outcomes, received)
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(outcomes []domain.CalculationOutcome) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, nil, "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "inmocalc_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(outcomes []domain.CalculationOutcome) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, nil, "txt")
	assert.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestConsoleFormatter_Format(t *testing.T) {
	formatter := ConsoleFormatter{}
	assert.Equal(t, "console-lite", formatter.Name())

	out, err := formatter.Format(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No calculations.")

	out, err = formatter.Format(buildTestOutcomes(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "REAL ESTATE CALCULATION SUMMARY")
	assert.Contains(t, content, "Flat in Madrid [mortgage]")
	assert.Contains(t, content, "1001 EUR")
	assert.Contains(t, content, "16850 EUR")
	assert.Contains(t, content, "Transfer Tax (ITP)")
}

func TestConsoleVerboseFormatter_Format(t *testing.T) {
	formatter := ConsoleVerboseFormatter{}
	assert.Equal(t, "console", formatter.Name())

	out, err := formatter.Format(buildTestOutcomes(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "DETAILED REAL ESTATE ANALYSIS")
	assert.Contains(t, content, "KEY ASSUMPTIONS")
	assert.Contains(t, content, "Tax tables version 2024.1")
	assert.Contains(t, content, "AMORTIZATION SCHEDULE")
	assert.Contains(t, content, "GAINS BRACKETS")
	assert.Contains(t, content, "CALCULATION 2: Madrid resale (Purchase Costs)")
}

func TestConsoleVerboseFormatter_OverIndebted(t *testing.T) {
	outcomes := []domain.CalculationOutcome{{
		Name: "Too much debt",
		Kind: domain.KindDebtCapacity,
		DebtCapacity: &domain.DebtCapacityResult{
			MaxAdditionalMonthlyLoanCapacity: decimal.NewFromInt(-300),
		},
	}}
	out, err := ConsoleVerboseFormatter{}.Format(outcomes)
	require.NoError(t, err)
	assert.Contains(t, string(out), "exceeds the affordability ceiling")
	assert.Contains(t, string(out), "-300 EUR")
}

func TestCSVSummarizer_Format(t *testing.T) {
	formatter := CSVSummarizer{}
	assert.Equal(t, "csv", formatter.Name())

	out, err := formatter.Format(buildTestOutcomes(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Calculation", "Kind", "Year", "Field", "Value"}, records[0])

	var scheduleRows, sawTotal int
	for _, rec := range records[1:] {
		if rec[0] == "Flat in Madrid" && rec[2] != "" {
			scheduleRows++
		}
		if rec[0] == "Madrid resale" && rec[3] == "total_cost" {
			assert.Equal(t, "16850", rec[4])
			sawTotal++
		}
	}
	assert.Equal(t, 25*4, scheduleRows, "four schedule columns per year")
	assert.Equal(t, 1, sawTotal)
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := JSONFormatter{}
	assert.Equal(t, "json", formatter.Name())

	out, err := formatter.Format(buildTestOutcomes(t))
	require.NoError(t, err)

	var decoded struct {
		Calculations []struct {
			Name     string `json:"name"`
			Kind     string `json:"kind"`
			Mortgage *struct {
				MonthlyPayment string `json:"monthlyPayment"`
			} `json:"mortgage"`
		} `json:"calculations"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Calculations, 3)
	require.NotNil(t, decoded.Calculations[0].Mortgage)
	assert.Equal(t, "1001", decoded.Calculations[0].Mortgage.MonthlyPayment)
	assert.Nil(t, decoded.Calculations[1].Mortgage)
	assert.Equal(t, "purchase_costs", decoded.Calculations[1].Kind)
}

func TestYAMLFormatter_Format(t *testing.T) {
	formatter := YAMLFormatter{}
	out, err := formatter.Format(buildTestOutcomes(t))
	require.NoError(t, err)

	var decoded struct {
		Calculations []domain.CalculationOutcome `yaml:"calculations"`
	}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded.Calculations, 3)
	require.NotNil(t, decoded.Calculations[2].CapitalGains)
	assert.True(t, decoded.Calculations[2].CapitalGains.MunicipalGainsTax.Equal(decimal.NewFromInt(3600)))
}

func TestHTMLFormatter_Format(t *testing.T) {
	formatter := HTMLFormatter{}
	assert.Equal(t, "html", formatter.Name())

	out, err := formatter.Format(buildTestOutcomes(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Real Estate Calculation Report</title>")
	assert.Contains(t, content, "Amortization Schedule")
	assert.Contains(t, content, "Gains Brackets")
	assert.Contains(t, content, "16850 EUR")
}

func TestHTMLFormatter_EscapesNames(t *testing.T) {
	outcomes := []domain.CalculationOutcome{{
		Name:          "<script>x</script>",
		Kind:          domain.KindPurchaseCosts,
		PurchaseCosts: &domain.PurchaseCostResult{Regime: domain.RegimeResale},
	}}
	out, err := HTMLFormatter{}.Format(outcomes)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>x</script>")
}

func TestPDFFormatter_Format(t *testing.T) {
	formatter := PDFFormatter{}
	assert.Equal(t, "pdf", formatter.Name())

	out, err := formatter.Format(buildTestOutcomes(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"))
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"console", "console-lite", "csv", "html", "json", "pdf", "yaml"}, names)
}

func TestAvailableFormatAliases(t *testing.T) {
	aliases := AvailableFormatAliases()
	assert.Contains(t, aliases, "verbose")
	assert.Contains(t, aliases, "console-verbose")
	assert.Contains(t, aliases, "yml")
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console-lite", "console-lite"},
		{"verbose", "console"},
		{" JSON ", "json"},
		{"yml", "yaml"},
		{"pdf", "pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("non-existent"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "txt", Extension(ConsoleVerboseFormatter{}))
	assert.Equal(t, "pdf", Extension(PDFFormatter{}))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1001 EUR", FormatCurrency(decimal.NewFromFloat(1001.2471)))
	assert.Equal(t, "-300 EUR", FormatCurrency(decimal.NewFromInt(-300)))
	assert.Equal(t, "26.5%", FormatPercentage(decimal.NewFromFloat(26.542857)))
}
