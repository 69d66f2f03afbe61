package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ExpectedRegionCount is the number of administrative regions a tables file
// must define.
const ExpectedRegionCount = 19

// LoadTaxTables reads a tables override file. An empty path returns the
// default tables.
func LoadTaxTables(path string) (domain.TaxTables, error) {
	if path == "" {
		return domain.DefaultTaxTables(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.TaxTables{}, fmt.Errorf("failed to read tax tables %s: %w", path, err)
	}

	var tables domain.TaxTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return domain.TaxTables{}, fmt.Errorf("failed to parse tax tables: %w", err)
	}
	if err := ValidateTaxTables(tables); err != nil {
		return domain.TaxTables{}, fmt.Errorf("tax tables validation failed: %w", err)
	}
	return tables, nil
}

// WriteTaxTables writes tables as YAML, e.g. to seed an override file.
func WriteTaxTables(path string, tables domain.TaxTables) error {
	data, err := yaml.Marshal(tables)
	if err != nil {
		return fmt.Errorf("failed to encode tax tables: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write tax tables %s: %w", path, err)
	}
	return nil
}

// ValidateTaxTables checks the invariants the calculators rely on.
func ValidateTaxTables(t domain.TaxTables) error {
	var errs []error

	if t.Metadata.Version == "" {
		errs = append(errs, errors.New("metadata.version is required"))
	}

	if len(t.Regions) != ExpectedRegionCount {
		errs = append(errs, fmt.Errorf("expected %d regions, got %d", ExpectedRegionCount, len(t.Regions)))
	}
	seen := make(map[string]bool, len(t.Regions))
	for _, r := range t.Regions {
		if r.Region == "" {
			errs = append(errs, errors.New("region with empty name"))
			continue
		}
		if seen[r.Region] {
			errs = append(errs, fmt.Errorf("duplicate region %s", r.Region))
		}
		seen[r.Region] = true
		for name, rate := range map[string]decimal.Decimal{"itp_rate": r.ITPRate, "ajd_rate": r.AJDRate, "iva_rate": r.IVARate} {
			if rate.IsNegative() {
				errs = append(errs, fmt.Errorf("region %s: %s must not be negative", r.Region, name))
			}
		}
	}

	if len(t.NotaryFees.Bands) == 0 {
		errs = append(errs, errors.New("notary_fees.bands must not be empty"))
	}
	for i := 1; i < len(t.NotaryFees.Bands); i++ {
		if !t.NotaryFees.Bands[i].UpTo.GreaterThan(t.NotaryFees.Bands[i-1].UpTo) {
			errs = append(errs, fmt.Errorf("notary band %d is not ascending", i))
		}
	}

	if t.RegistryFee.Min.GreaterThan(t.RegistryFee.Max) {
		errs = append(errs, errors.New("registry_fee.min exceeds registry_fee.max"))
	}
	if t.AgencyFee.IsNegative() {
		errs = append(errs, errors.New("agency_fee must not be negative"))
	}
	if !t.PriceBounds.Min.IsPositive() || !t.PriceBounds.Max.GreaterThan(t.PriceBounds.Min) {
		errs = append(errs, errors.New("price_bounds must satisfy 0 < min < max"))
	}

	if len(t.GainsBrackets) == 0 {
		errs = append(errs, errors.New("gains_brackets must not be empty"))
	} else if !t.GainsBrackets[0].Min.IsZero() {
		errs = append(errs, errors.New("first gains bracket must start at 0"))
	}
	for i, b := range t.GainsBrackets {
		switch {
		case b.Unbounded() && i != len(t.GainsBrackets)-1:
			errs = append(errs, fmt.Errorf("gains bracket %d: only the last bracket may omit max", i))
		case !b.Unbounded() && !b.Max.GreaterThan(b.Min):
			errs = append(errs, fmt.Errorf("gains bracket %d: max must exceed min", i))
		}
		if i > 0 && !b.Min.Equal(t.GainsBrackets[i-1].Max) {
			errs = append(errs, fmt.Errorf("gains bracket %d must start where bracket %d ends", i, i-1))
		}
		if b.RatePercent.IsNegative() {
			errs = append(errs, fmt.Errorf("gains bracket %d: rate must not be negative", i))
		}
	}

	if t.MunicipalGains.MaxYears < 0 {
		errs = append(errs, errors.New("municipal_gains.max_years must not be negative"))
	}

	return errors.Join(errs...)
}
