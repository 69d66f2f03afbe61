package output

import (
	"encoding/json"

	"github.com/rgehrsitz/inmocalc/internal/domain"
	"gopkg.in/yaml.v3"
)

type report struct {
	Calculations []domain.CalculationOutcome `json:"calculations" yaml:"calculations"`
}

// JSONFormatter emits the rounded outcomes as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(outcomes []domain.CalculationOutcome) ([]byte, error) {
	return json.MarshalIndent(report{Calculations: roundAll(outcomes)}, "", "  ")
}

// YAMLFormatter emits the rounded outcomes as YAML, mirroring the scenario
// file layout.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(outcomes []domain.CalculationOutcome) ([]byte, error) {
	return yaml.Marshal(report{Calculations: roundAll(outcomes)})
}
