package formatting

import (
	"encoding/json"
	"fmt"
)

// PrettyJSON formats any value as indented JSON, falling back to fmt's %v
// form when the value cannot be marshaled.
//
//	fmt.Println(formatting.PrettyJSON(record.Options))
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
