package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// Frame holds one parsed paste table. Columns preserves the original header
// order, including Date and Time. Numeric column values are aligned with
// Dates and Times by row index.
type Frame struct {
	Columns []string
	Dates   []string
	Times   []string

	numeric map[string][]float64
}

// NumRows returns the row count of the frame.
func (f *Frame) NumRows() int {
	return len(f.Dates)
}

// Column returns the values of a numeric column.
func (f *Frame) Column(name string) ([]float64, bool) {
	vals, ok := f.numeric[name]
	return vals, ok
}

// DataColumns lists the column names other than Date and Time, in header
// order.
func (f *Frame) DataColumns() []string {
	cols := make([]string, 0, len(f.Columns))
	for _, c := range f.Columns {
		if c == colDate || c == colTime {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// Cell returns the value of a numeric column at the given row.
func (f *Frame) Cell(name string, row int) (float64, error) {
	vals, ok := f.numeric[name]
	if !ok {
		return 0, fmt.Errorf("no column %q", name)
	}
	if row < 0 || row >= len(vals) {
		return 0, fmt.Errorf("row index %d out of range for column %q (%d rows)", row, name, len(vals))
	}
	return vals[row], nil
}

// SetCell overwrites the value of a numeric column at the given row.
func (f *Frame) SetCell(name string, row int, v float64) error {
	vals, ok := f.numeric[name]
	if !ok {
		return fmt.Errorf("no column %q", name)
	}
	if row < 0 || row >= len(vals) {
		return fmt.Errorf("row index %d out of range for column %q (%d rows)", row, name, len(vals))
	}
	vals[row] = v
	return nil
}

// AddAt adds delta to a numeric cell.
func (f *Frame) AddAt(name string, row int, delta float64) error {
	v, err := f.Cell(name, row)
	if err != nil {
		return err
	}
	return f.SetCell(name, row, v+delta)
}

// Clone returns a deep copy. Mutating the copy never touches the original.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		Columns: append([]string(nil), f.Columns...),
		Dates:   append([]string(nil), f.Dates...),
		Times:   append([]string(nil), f.Times...),
		numeric: make(map[string][]float64, len(f.numeric)),
	}
	for name, vals := range f.numeric {
		c.numeric[name] = append([]float64(nil), vals...)
	}
	return c
}

// Select returns a new frame restricted to the named columns, skipping names
// the frame does not have. Row data is shared with the receiver; callers that
// mutate must Clone first.
func (f *Frame) Select(names []string) *Frame {
	s := &Frame{
		Dates:   f.Dates,
		Times:   f.Times,
		numeric: make(map[string][]float64),
	}
	for _, name := range names {
		switch {
		case name == colDate || name == colTime:
			s.Columns = append(s.Columns, name)
		default:
			vals, ok := f.numeric[name]
			if !ok {
				continue
			}
			s.Columns = append(s.Columns, name)
			s.numeric[name] = vals
		}
	}
	return s
}

// Records converts the frame to one map per row, keyed by column name. Date
// and Time stay strings; everything else is float64.
func (f *Frame) Records() []map[string]any {
	records := make([]map[string]any, f.NumRows())
	for i := range records {
		rec := make(map[string]any, len(f.Columns))
		for _, col := range f.Columns {
			rec[col] = f.cellAny(col, i)
		}
		records[i] = rec
	}
	return records
}

// Rows converts the frame to one slice per row, in column order.
func (f *Frame) Rows() [][]any {
	rows := make([][]any, f.NumRows())
	for i := range rows {
		row := make([]any, len(f.Columns))
		for j, col := range f.Columns {
			row[j] = f.cellAny(col, i)
		}
		rows[i] = row
	}
	return rows
}

func (f *Frame) cellAny(col string, row int) any {
	switch col {
	case colDate:
		return f.Dates[row]
	case colTime:
		return f.Times[row]
	default:
		return f.numeric[col][row]
	}
}

// PasteString serializes the frame back to clipboard form: a leading
// Timepoint marker line, a tab-separated header, then one tab-separated line
// per row.
func (f *Frame) PasteString() string {
	var b strings.Builder
	b.WriteString("Timepoint\n")
	b.WriteString(strings.Join(f.Columns, "\t"))
	for i := 0; i < f.NumRows(); i++ {
		b.WriteByte('\n')
		for j, col := range f.Columns {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(FormatCell(f.cellAny(col, i)))
		}
	}
	return b.String()
}

// FormatCell renders a cell value the way it appears in paste text. Floats
// use the shortest representation that round-trips.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
