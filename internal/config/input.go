package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of calculation scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates scenario bytes. JSON is accepted since it is
// valid YAML.
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioFile, error) {
	var scenario domain.ScenarioFile
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &scenario, nil
}

// ValidateScenario checks the structure of a scenario: every calculation has a
// known kind and exactly the matching parameter block. Numeric ranges are
// checked by the calculators themselves.
func (ip *InputParser) ValidateScenario(scenario *domain.ScenarioFile) error {
	if len(scenario.Calculations) == 0 {
		return fmt.Errorf("no calculations provided")
	}

	names := make(map[string]int, len(scenario.Calculations))
	for i := range scenario.Calculations {
		calc := &scenario.Calculations[i]
		if err := ValidateCalculation(calc); err != nil {
			return fmt.Errorf("calculation %d (%s) validation failed: %w", i, calc.Name, err)
		}
		if prev, dup := names[calc.Name]; dup {
			return fmt.Errorf("calculation %d: name %q already used by calculation %d", i, calc.Name, prev)
		}
		names[calc.Name] = i
	}
	return nil
}

// ValidateCalculation normalizes calc in place (trimmed name, canonical kind)
// and checks that exactly the parameter block matching its kind is set.
func ValidateCalculation(calc *domain.Calculation) error {
	calc.Name = strings.TrimSpace(calc.Name)
	if calc.Name == "" {
		return domain.NewInvalidInput("name", nil, "name is required")
	}
	kind, err := domain.ParseKind(string(calc.Kind))
	if err != nil {
		return err
	}
	calc.Kind = kind

	present := map[domain.Kind]bool{
		domain.KindMortgage:      calc.Mortgage != nil,
		domain.KindPurchaseCosts: calc.PurchaseCosts != nil,
		domain.KindDebtCapacity:  calc.DebtCapacity != nil,
		domain.KindCapitalGains:  calc.CapitalGains != nil,
	}
	if !present[kind] {
		return domain.NewInvalidInput(string(kind), nil, fmt.Sprintf("kind %s requires a %s block", kind, kind))
	}
	for other, set := range present {
		if other != kind && set {
			return domain.NewInvalidInput(string(other), nil, fmt.Sprintf("kind %s must not carry a %s block", kind, other))
		}
	}
	return nil
}
