package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// Tabular is implemented by results that have a natural row layout.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}

// WriteTable renders v as aligned columns. An Envelope (or a map with a
// "data" key) is unwrapped to its data. Values that are not Tabular fall back
// to one row per element for lists of objects, otherwise one row per field.
func WriteTable(w io.Writer, v any) error {
	switch env := v.(type) {
	case Envelope:
		v = env.Data
	case map[string]any:
		if d, ok := env["data"]; ok {
			v = d
		}
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	bold := color.New(color.Bold).SprintFunc()
	if t, ok := v.(Tabular); ok {
		hdr := t.TableHeader()
		cells := make([]any, len(hdr))
		for i, h := range hdr {
			cells[i] = bold(h)
		}
		tbl.AddRow(cells...)
		for _, r := range t.TableRows() {
			cells := make([]any, len(r))
			for i, c := range r {
				cells[i] = c
			}
			tbl.AddRow(cells...)
		}
		_, err := fmt.Fprintln(w, tbl)
		return err
	}

	var x any
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	switch t := x.(type) {
	case []any:
		var keys []string
		for i, el := range t {
			m, ok := el.(map[string]any)
			if !ok {
				tbl.AddRow(scalar(el))
				continue
			}
			if i == 0 {
				keys = sortedKeys(m)
				cells := make([]any, len(keys))
				for j, k := range keys {
					cells[j] = bold(k)
				}
				tbl.AddRow(cells...)
			}
			cells := make([]any, len(keys))
			for j, k := range keys {
				cells[j] = scalar(m[k])
			}
			tbl.AddRow(cells...)
		}
	case map[string]any:
		for _, k := range sortedKeys(t) {
			tbl.AddRow(bold(k), scalar(t[k]))
		}
	default:
		tbl.AddRow(scalar(t))
	}
	_, err = fmt.Fprintln(w, tbl)
	return err
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any, []any:
		b, _ := json.Marshal(t)
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
