package domain

import (
	"github.com/shopspring/decimal"
)

// TaxTables contains all fiscal data the calculators read. It is loaded from
// a tables YAML file or taken from DefaultTaxTables, and passed explicitly to
// the calculation engine so that a new tax year never touches calculation code.
type TaxTables struct {
	Metadata       TablesMetadata      `yaml:"metadata" json:"metadata"`
	Regions        []RegionTaxRate     `yaml:"regions" json:"regions"`
	NotaryFees     NotaryFeeSchedule   `yaml:"notary_fees" json:"notaryFees"`
	RegistryFee    RegistryFeeRule     `yaml:"registry_fee" json:"registryFee"`
	AgencyFee      decimal.Decimal     `yaml:"agency_fee" json:"agencyFee"`
	PriceBounds    PriceBounds         `yaml:"price_bounds" json:"priceBounds"`
	GainsBrackets  []GainsBracket      `yaml:"gains_brackets" json:"gainsBrackets"`
	MunicipalGains MunicipalGainsRules `yaml:"municipal_gains" json:"municipalGains"`
}

// TablesMetadata identifies a tables revision.
type TablesMetadata struct {
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// RegionTaxRate holds the acquisition tax rates of one region, in percent.
type RegionTaxRate struct {
	Region  string          `yaml:"region" json:"region"`
	ITPRate decimal.Decimal `yaml:"itp_rate" json:"itpRate"`
	AJDRate decimal.Decimal `yaml:"ajd_rate" json:"ajdRate"`
	IVARate decimal.Decimal `yaml:"iva_rate" json:"ivaRate"`
}

// FeeBand charges Fee for prices up to and including UpTo.
type FeeBand struct {
	UpTo decimal.Decimal `yaml:"up_to" json:"upTo"`
	Fee  decimal.Decimal `yaml:"fee" json:"fee"`
}

// NotaryFeeSchedule is a step function over the property price. Bands must be
// ascending; prices above the last band pay AboveFee.
type NotaryFeeSchedule struct {
	Bands    []FeeBand       `yaml:"bands" json:"bands"`
	AboveFee decimal.Decimal `yaml:"above_fee" json:"aboveFee"`
}

// RegistryFeeRule is a percentage of the price clamped to [Min, Max].
type RegistryFeeRule struct {
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
	Min         decimal.Decimal `yaml:"min" json:"min"`
	Max         decimal.Decimal `yaml:"max" json:"max"`
}

// PriceBounds is the inclusive property price range accepted by the
// purchase-cost calculator.
type PriceBounds struct {
	Min decimal.Decimal `yaml:"min" json:"min"`
	Max decimal.Decimal `yaml:"max" json:"max"`
}

// GainsBracket taxes the part of a gain between Min and Max at RatePercent.
// A zero Max leaves the bracket open-ended; only the top bracket may be.
type GainsBracket struct {
	Min         decimal.Decimal `yaml:"min" json:"min"`
	Max         decimal.Decimal `yaml:"max,omitempty" json:"max"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b GainsBracket) Unbounded() bool {
	return b.Max.IsZero()
}

// MunicipalGainsRules approximate the municipal land-value increase tax:
// land is taken as CadastralSharePercent of the purchase price, at most
// MaxYears of ownership count, and the base is taxed at RatePercent.
type MunicipalGainsRules struct {
	CadastralSharePercent decimal.Decimal `yaml:"cadastral_share_percent" json:"cadastralSharePercent"`
	MaxYears              int             `yaml:"max_years" json:"maxYears"`
	RatePercent           decimal.Decimal `yaml:"rate_percent" json:"ratePercent"`
}

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func region(name, itp, ajd, iva string) RegionTaxRate {
	return RegionTaxRate{Region: name, ITPRate: pct(itp), AJDRate: pct(ajd), IVARate: pct(iva)}
}

// DefaultTaxTables returns the reference tables. Each call returns a fresh
// copy that callers may modify.
func DefaultTaxTables() TaxTables {
	return TaxTables{
		Metadata: TablesMetadata{
			Version:     "2024.1",
			Description: "Reference acquisition and capital gains tables",
		},
		Regions: []RegionTaxRate{
			region("Andalucía", "7", "1.2", "10"),
			region("Aragón", "8", "1.5", "10"),
			region("Asturias", "8", "1.2", "10"),
			region("Baleares", "8", "1.2", "10"),
			region("Canarias", "6.5", "0.75", "6.5"),
			region("Cantabria", "10", "1.5", "10"),
			region("Castilla-La Mancha", "9", "1.25", "10"),
			region("Castilla y León", "8", "1.5", "10"),
			region("Cataluña", "10", "1.5", "10"),
			region("Ceuta", "6", "0.5", "4"),
			region("Extremadura", "8", "1.5", "10"),
			region("Galicia", "10", "1.5", "10"),
			region("La Rioja", "7", "1", "10"),
			region("Madrid", "6", "0.75", "10"),
			region("Melilla", "6", "0.5", "4"),
			region("Murcia", "8", "1.5", "10"),
			region("Navarra", "6", "0.5", "10"),
			region("País Vasco", "4", "0.5", "10"),
			region("Valencia", "10", "1.5", "10"),
		},
		NotaryFees: NotaryFeeSchedule{
			Bands: []FeeBand{
				{UpTo: decimal.NewFromInt(6000), Fee: decimal.NewFromInt(150)},
				{UpTo: decimal.NewFromInt(30000), Fee: decimal.NewFromInt(300)},
				{UpTo: decimal.NewFromInt(60000), Fee: decimal.NewFromInt(450)},
				{UpTo: decimal.NewFromInt(150000), Fee: decimal.NewFromInt(600)},
				{UpTo: decimal.NewFromInt(250000), Fee: decimal.NewFromInt(850)},
				{UpTo: decimal.NewFromInt(500000), Fee: decimal.NewFromInt(1200)},
			},
			AboveFee: decimal.NewFromInt(1500),
		},
		RegistryFee: RegistryFeeRule{
			RatePercent: pct("0.15"),
			Min:         decimal.NewFromInt(400),
			Max:         decimal.NewFromInt(1000),
		},
		AgencyFee: decimal.NewFromInt(600),
		PriceBounds: PriceBounds{
			Min: decimal.NewFromInt(10000),
			Max: decimal.NewFromInt(10000000),
		},
		GainsBrackets: []GainsBracket{
			{Min: decimal.Zero, Max: decimal.NewFromInt(6000), RatePercent: decimal.NewFromInt(19)},
			{Min: decimal.NewFromInt(6000), Max: decimal.NewFromInt(50000), RatePercent: decimal.NewFromInt(21)},
			{Min: decimal.NewFromInt(50000), Max: decimal.NewFromInt(200000), RatePercent: decimal.NewFromInt(23)},
			{Min: decimal.NewFromInt(200000), Max: decimal.NewFromInt(300000), RatePercent: decimal.NewFromInt(27)},
			{Min: decimal.NewFromInt(300000), RatePercent: decimal.NewFromInt(28)},
		},
		MunicipalGains: MunicipalGainsRules{
			CadastralSharePercent: decimal.NewFromInt(20),
			MaxYears:              20,
			RatePercent:           decimal.NewFromInt(30),
		},
	}
}

// RegionNames lists the region identifiers in table order.
func (t TaxTables) RegionNames() []string {
	names := make([]string, len(t.Regions))
	for i, r := range t.Regions {
		names[i] = r.Region
	}
	return names
}
