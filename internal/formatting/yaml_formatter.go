package formatting

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"alertstate/internal/reconciler"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct{}

// FormatPlan writes the plan as YAML. Keys follow the JSON output so that
// both formats can be consumed by the same tooling.
func (f *YAMLFormatter) FormatPlan(w io.Writer, plan reconciler.Plan) error {
	data, err := json.Marshal(newPlanView(plan))
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
