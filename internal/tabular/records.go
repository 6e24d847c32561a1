package tabular

import (
	"errors"
	"sort"
	"strings"
)

// ErrNoRecords is returned when a record-based operation receives no rows.
var ErrNoRecords = errors.New("no records provided")

// FromRecords rebuilds a frame from row maps, typically a JSON array of
// objects. Date and Time come first; the remaining columns are ordered by
// name since object keys carry no order. Non-numeric cells collapse to zero
// exactly as in Parse.
func FromRecords(records []map[string]any) (*Frame, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		for name := range rec {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	columns := make([]string, 0, len(names))
	if seen[colDate] {
		columns = append(columns, colDate)
	}
	if seen[colTime] {
		columns = append(columns, colTime)
	}
	for _, name := range names {
		if name != colDate && name != colTime {
			columns = append(columns, name)
		}
	}

	f := &Frame{
		Columns: columns,
		numeric: make(map[string][]float64, len(columns)),
	}
	for _, rec := range records {
		f.Dates = append(f.Dates, stringCell(rec[colDate]))
		f.Times = append(f.Times, stringCell(rec[colTime]))
		for _, name := range columns {
			if name == colDate || name == colTime {
				continue
			}
			f.numeric[name] = append(f.numeric[name], numericCell(rec[name]))
		}
	}
	return f, nil
}

func stringCell(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return FormatCell(v)
}

func numericCell(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case string:
		return parseCell(x)
	default:
		return 0
	}
}

// Reconstruct merges edited battery rows back into the original table and
// serializes the result to paste form. Battery values replace original cells
// matched by (Date, Time); rows without a match keep their original values.
// Column order follows originalColumns.
func Reconstruct(batteryRecords, originalRecords []map[string]any, originalColumns []string) string {
	type key struct{ date, time string }

	edits := make(map[string]map[key]any)
	for _, rec := range batteryRecords {
		k := key{stringCell(rec[colDate]), stringCell(rec[colTime])}
		for name, v := range rec {
			if name == colDate || name == colTime {
				continue
			}
			if edits[name] == nil {
				edits[name] = make(map[key]any)
			}
			edits[name][k] = v
		}
	}

	var b strings.Builder
	b.WriteString("Timepoint\n")
	b.WriteString(strings.Join(originalColumns, "\t"))
	for _, rec := range originalRecords {
		b.WriteByte('\n')
		k := key{stringCell(rec[colDate]), stringCell(rec[colTime])}
		for i, col := range originalColumns {
			if i > 0 {
				b.WriteByte('\t')
			}
			v, ok := rec[col]
			if byKey, edited := edits[col]; edited {
				if ev, hit := byKey[k]; hit {
					v, ok = ev, true
				}
			}
			if !ok {
				continue
			}
			b.WriteString(FormatCell(v))
		}
	}
	return b.String()
}
