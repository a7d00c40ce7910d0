package sheet

import (
	"strings"

	"github.com/globalite/go-macrobrief/internal/tabular"
)

// ReadMeta assembles the metadata map from a two-column key/value table.
// The first row is a header and is skipped. Keys and values are trimmed,
// blank keys are dropped, and a repeated key keeps its last value. Every
// key that is absent or blank afterwards is filled from defaults, so the
// result always covers the full default set.
func ReadMeta(t tabular.Table, defaults map[string]string) map[string]string {
	meta := make(map[string]string, len(defaults))
	for i := 1; i < t.Len(); i++ {
		row := t.Row(i)
		if len(row) == 0 {
			continue
		}
		key := strings.TrimSpace(row[0])
		if key == "" {
			continue
		}
		value := ""
		if len(row) > 1 {
			value = strings.TrimSpace(row[1])
		}
		meta[key] = value
	}
	for key, value := range defaults {
		if meta[key] == "" {
			meta[key] = value
		}
	}
	return meta
}
