package formatting

import (
	"encoding/json"
	"io"

	"alertstate/internal/reconciler"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct{}

// FormatPlan writes the plan as indented JSON.
func (f *JSONFormatter) FormatPlan(w io.Writer, plan reconciler.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newPlanView(plan))
}
