package compare

import (
	"encoding/json"
)

// JSONFormatter formats comparison results as JSON with presentation rounding
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	rounded := compSet.Rounded()

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(rounded, "", "  ")
	} else {
		data, err = json.Marshal(rounded)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
