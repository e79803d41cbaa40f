package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"cloudguide/core/advisory"
	"cloudguide/core/questionnaire"
)

// JSONFormatter writes JSON documents
type JSONFormatter struct {
	indent bool
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(indent bool) *JSONFormatter {
	return &JSONFormatter{indent: indent}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format { return FormatJSON }

// RenderComparison writes the comparison as JSON
func (f *JSONFormatter) RenderComparison(w io.Writer, c *Comparison) error {
	return f.encode(w, c)
}

// RenderAdvisory writes the advisory as JSON
func (f *JSONFormatter) RenderAdvisory(w io.Writer, r *advisory.Result) error {
	return f.encode(w, r)
}

// RenderEstimate writes the estimate as JSON
func (f *JSONFormatter) RenderEstimate(w io.Writer, r *questionnaire.Result) error {
	return f.encode(w, r)
}

func (f *JSONFormatter) encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// YAMLFormatter writes YAML documents.
// Decimals are emitted as strings to keep full precision.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a YAML formatter
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format returns FormatYAML
func (f *YAMLFormatter) Format() Format { return FormatYAML }

// RenderComparison writes the comparison as YAML
func (f *YAMLFormatter) RenderComparison(w io.Writer, c *Comparison) error {
	return f.encode(w, c)
}

// RenderAdvisory writes the advisory as YAML
func (f *YAMLFormatter) RenderAdvisory(w io.Writer, r *advisory.Result) error {
	return f.encode(w, r)
}

// RenderEstimate writes the estimate as YAML
func (f *YAMLFormatter) RenderEstimate(w io.Writer, r *questionnaire.Result) error {
	return f.encode(w, r)
}

// encode round-trips through JSON so decimal and time values use their
// text encodings. Field order is preserved through yaml.Node.
func (f *YAMLFormatter) encode(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// blockStyle drops the flow and quoting styles inherited from JSON
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
