package output

import (
	"fmt"

	"github.com/rgehrsitz/inmocalc/internal/calculation"
	"github.com/rgehrsitz/inmocalc/internal/domain"
)

// AssumptionsFor lists the modelling assumptions behind a set of tax tables.
func AssumptionsFor(t domain.TaxTables) []string {
	return []string{
		fmt.Sprintf("Tax tables version %s", t.Metadata.Version),
		"Fixed-rate French amortization, interest compounded monthly",
		fmt.Sprintf("Banks lend while total debt stays below %s%% of recognized income", calculation.AffordabilityCeilingPercent.String()),
		fmt.Sprintf("Land registry fee: %s%% of price, clamped to %s..%s",
			t.RegistryFee.RatePercent.String(), FormatCurrency(t.RegistryFee.Min), FormatCurrency(t.RegistryFee.Max)),
		fmt.Sprintf("Mortgage agency fee: %s when financed", FormatCurrency(t.AgencyFee)),
		fmt.Sprintf("Municipal gains tax: cadastral value %s%% of purchase price, at most %d years, rate %s%%",
			t.MunicipalGains.CadastralSharePercent.String(), t.MunicipalGains.MaxYears, t.MunicipalGains.RatePercent.String()),
		"Amounts shown rounded to whole units, percentages to one decimal",
	}
}

// DefaultAssumptions are the assumptions of the built-in tax tables.
var DefaultAssumptions = AssumptionsFor(domain.DefaultTaxTables())
