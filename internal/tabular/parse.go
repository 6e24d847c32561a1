package tabular

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	colDate      = "Date"
	colTime      = "Time"
	colTimepoint = "Timepoint"
)

var (
	// ErrNoHeaderRow is returned when no line carries Date, Time and a tab.
	ErrNoHeaderRow = errors.New("could not find header row with Date and Time columns")
	// ErrMissingDateTime is returned when the header lacks the exact Date or
	// Time column.
	ErrMissingDateTime = errors.New("Date and Time columns are required")
)

// Parse reads pasted tab-separated text into a Frame. The header is the first
// line containing "date", "time" and a tab; anything above it is preamble and
// ignored. A Timepoint column is dropped, repeated header rows and rows
// without Date or Time are filtered out, and every remaining column except
// Date and Time is coerced to float64. Comma decimal separators are accepted;
// cells that still fail to parse become 0.
func Parse(text string) (*Frame, error) {
	lines := strings.Split(text, "\n")
	headerIdx := findHeaderRow(lines)
	if headerIdx == -1 {
		return nil, ErrNoHeaderRow
	}

	header := strings.Split(strings.TrimRight(lines[headerIdx], "\r"), "\t")
	dateIdx, timeIdx := -1, -1
	keep := make([]int, 0, len(header))
	columns := make([]string, 0, len(header))
	for i, name := range header {
		if name == colTimepoint {
			continue
		}
		if name == colDate {
			dateIdx = i
		}
		if name == colTime {
			timeIdx = i
		}
		keep = append(keep, i)
		columns = append(columns, name)
	}
	if dateIdx == -1 || timeIdx == -1 {
		return nil, ErrMissingDateTime
	}

	f := &Frame{
		Columns: columns,
		numeric: make(map[string][]float64, len(columns)),
	}
	for _, name := range columns {
		if name != colDate && name != colTime {
			f.numeric[name] = []float64{}
		}
	}

	for _, line := range lines[headerIdx+1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		date := fieldAt(fields, dateIdx)
		timeVal := fieldAt(fields, timeIdx)
		if strings.TrimSpace(date) == "" || timeVal == "" {
			continue
		}
		if low := strings.ToLower(date); low == "date" || low == "timepoint" {
			continue
		}
		f.Dates = append(f.Dates, date)
		f.Times = append(f.Times, timeVal)
		for i, srcIdx := range keep {
			name := columns[i]
			if name == colDate || name == colTime {
				continue
			}
			f.numeric[name] = append(f.numeric[name], parseCell(fieldAt(fields, srcIdx)))
		}
	}
	return f, nil
}

func findHeaderRow(lines []string) int {
	for i, line := range lines {
		low := strings.ToLower(line)
		if strings.Contains(low, "date") && strings.Contains(low, "time") && strings.Contains(line, "\t") {
			return i
		}
	}
	return -1
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

func parseCell(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

// ParseDatetime merges a Date cell and a Time cell into an ISO 8601 string.
// Slash-separated dates are disambiguated by value: a first component above
// 12 means day-first, otherwise month-first. Times may carry an AM/PM suffix.
func ParseDatetime(dateStr, timeStr string) (string, error) {
	parts := strings.Split(dateStr, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date format: %s", dateStr)
	}
	first, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("invalid date format: %s", dateStr)
	}
	second, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid date format: %s", dateStr)
	}
	year := parts[2]

	var month, day int
	if first > 12 {
		day, month = first, second
	} else {
		// Ambiguous dates (both components <= 12) read month-first.
		month, day = first, second
	}

	timeFields := strings.Split(timeStr, " ")
	timePart := ""
	if len(timeFields) > 0 {
		timePart = timeFields[0]
	}
	ampm := ""
	if len(timeFields) > 1 {
		ampm = strings.ToUpper(timeFields[1])
	}

	clock := strings.Split(timePart, ":")
	hours, err := strconv.Atoi(clock[0])
	if err != nil {
		return "", fmt.Errorf("invalid time format: %s", timeStr)
	}
	minutes, seconds := 0, 0
	if len(clock) > 1 {
		if minutes, err = strconv.Atoi(clock[1]); err != nil {
			return "", fmt.Errorf("invalid time format: %s", timeStr)
		}
	}
	if len(clock) > 2 {
		if seconds, err = strconv.Atoi(clock[2]); err != nil {
			return "", fmt.Errorf("invalid time format: %s", timeStr)
		}
	}

	if ampm == "PM" && hours != 12 {
		hours += 12
	} else if ampm == "AM" && hours == 12 {
		hours = 0
	}

	return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d", year, month, day, hours, minutes, seconds), nil
}

// Datetimes derives the ISO datetime axis from the Date and Time columns.
func (f *Frame) Datetimes() ([]string, error) {
	out := make([]string, f.NumRows())
	for i := range out {
		dt, err := ParseDatetime(f.Dates[i], f.Times[i])
		if err != nil {
			return nil, err
		}
		out[i] = dt
	}
	return out, nil
}
