package calculation

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rgehrsitz/inmocalc/internal/domain"
)

// regionAliases maps folded official or common long names to the table identifier.
var regionAliases = map[string]string{
	"comunidad de madrid":           "Madrid",
	"comunidad valenciana":          "Valencia",
	"comunitat valenciana":          "Valencia",
	"catalunya":                     "Cataluña",
	"catalonia":                     "Cataluña",
	"euskadi":                       "País Vasco",
	"illes balears":                 "Baleares",
	"islas baleares":                "Baleares",
	"islas canarias":                "Canarias",
	"principado de asturias":        "Asturias",
	"region de murcia":              "Murcia",
	"comunidad foral de navarra":    "Navarra",
	"castilla leon":                 "Castilla y León",
	"castilla mancha":               "Castilla-La Mancha",
	"rioja":                         "La Rioja",
	"junta de andalucia":            "Andalucía",
	"comunidad autonoma de aragon":  "Aragón",
	"comunidad autonoma de galicia": "Galicia",
}

// RegionTable is an immutable lookup over the region rows of a TaxTables value.
type RegionTable struct {
	rows   []domain.RegionTaxRate
	exact  map[string]int
	folded map[string]int
}

// NewRegionTable indexes rows. Empty or duplicate region names are rejected.
func NewRegionTable(rows []domain.RegionTaxRate) (*RegionTable, error) {
	if len(rows) == 0 {
		return nil, domain.NewInvalidInput("regions", nil, "at least one region is required")
	}
	t := &RegionTable{
		rows:   make([]domain.RegionTaxRate, len(rows)),
		exact:  make(map[string]int, len(rows)),
		folded: make(map[string]int, len(rows)),
	}
	copy(t.rows, rows)
	for i, r := range t.rows {
		if strings.TrimSpace(r.Region) == "" {
			return nil, domain.NewInvalidInput("regions", i, "region name is empty")
		}
		if _, dup := t.exact[r.Region]; dup {
			return nil, domain.NewInvalidInput("regions", r.Region, "duplicate region")
		}
		t.exact[r.Region] = i
		t.folded[foldRegion(r.Region)] = i
	}
	return t, nil
}

// RateFor returns the rates of an exactly named region.
func (t *RegionTable) RateFor(region string) (domain.RegionTaxRate, error) {
	i, ok := t.exact[region]
	if !ok {
		return domain.RegionTaxRate{}, &domain.UnknownRegionError{Region: region}
	}
	return t.rows[i], nil
}

// Parse resolves loosely typed input ("castilla la mancha", "PAIS VASCO",
// "Comunidad de Madrid") to the canonical region identifier.
func (t *RegionTable) Parse(input string) (string, error) {
	if i, ok := t.exact[input]; ok {
		return t.rows[i].Region, nil
	}
	key := foldRegion(input)
	if i, ok := t.folded[key]; ok {
		return t.rows[i].Region, nil
	}
	if name, ok := regionAliases[key]; ok {
		if i, ok := t.exact[name]; ok {
			return t.rows[i].Region, nil
		}
	}
	return "", &domain.UnknownRegionError{Region: input}
}

// Names lists the region identifiers in table order.
func (t *RegionTable) Names() []string {
	names := make([]string, len(t.rows))
	for i, r := range t.rows {
		names[i] = r.Region
	}
	return names
}

// Rows returns a copy of the table rows.
func (t *RegionTable) Rows() []domain.RegionTaxRate {
	out := make([]domain.RegionTaxRate, len(t.rows))
	copy(out, t.rows)
	return out
}

// foldRegion strips accents, case folds, and collapses separators to single
// spaces. Transformers are not safe for concurrent use so they are built per call.
func foldRegion(s string) string {
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(strip, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	fields := strings.FieldsFunc(out, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_' || r == '/'
	})
	return strings.Join(fields, " ")
}

var defaultRegions = mustRegionTable(domain.DefaultTaxTables().Regions)

func mustRegionTable(rows []domain.RegionTaxRate) *RegionTable {
	t, err := NewRegionTable(rows)
	if err != nil {
		panic(fmt.Sprintf("default region table: %v", err))
	}
	return t
}

// RateFor looks a region up in the default tables.
func RateFor(region string) (domain.RegionTaxRate, error) {
	return defaultRegions.RateFor(region)
}

// ParseRegion resolves input against the default tables.
func ParseRegion(input string) (string, error) {
	return defaultRegions.Parse(input)
}

// Regions lists the default region identifiers in table order.
func Regions() []string {
	return defaultRegions.Names()
}
