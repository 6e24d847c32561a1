package tabular

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	genColRe      = regexp.MustCompile(`(?i)gen\s*(\d+)`)
	loadColRe     = regexp.MustCompile(`(?i)^Bus\s+(\d+)\s+#EV\s+(MW|Mvar)`)
	branchNamedRe = regexp.MustCompile(`(\d+)\s+\([^)]+\)\s+TO\s+(\d+)\s+\([^)]+\)`)
	branchPlainRe = regexp.MustCompile(`(\d+)\s+TO\s+(\d+)`)
	voltageColRe  = regexp.MustCompile(`^(\d+)\s+PU Volt`)
)

// BatteryColumnsByBus groups battery generator column names by the bus number
// embedded in the name ("Gen 4 #BT MW" → 4). Columns without a bus number are
// dropped.
func BatteryColumnsByBus(cols []string) map[int][]string {
	byBus := make(map[int][]string)
	for _, col := range cols {
		m := genColRe.FindStringSubmatch(col)
		if m == nil {
			continue
		}
		bus, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		byBus[bus] = append(byBus[bus], col)
	}
	return byBus
}

// LoadColumns names the active and reactive power columns of one bus. Either
// may be empty when the paste carried only one kind.
type LoadColumns struct {
	MWCol   string
	MVarCol string
}

// LoadColumnsByBus maps bus numbers to their EV load columns, matched by the
// "Bus <n> #EV MW|Mvar" naming convention.
func LoadColumnsByBus(f *Frame) map[int]LoadColumns {
	byBus := make(map[int]LoadColumns)
	for _, col := range f.Columns {
		if col == colDate || col == colTime {
			continue
		}
		m := loadColRe.FindStringSubmatch(col)
		if m == nil {
			continue
		}
		bus, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		lc := byBus[bus]
		switch strings.ToLower(m[2]) {
		case "mw":
			lc.MWCol = col
		case "mvar":
			lc.MVarCol = col
		}
		byBus[bus] = lc
	}
	return byBus
}

// baseColumns always travel with both halves of a branch split.
var baseColumns = []string{colDate, colTime, "Skip"}

func isBaseColumn(col string) bool {
	for _, b := range baseColumns {
		if col == b {
			return true
		}
	}
	return false
}

// SplitBranchFrames divides a lines export into the "% of MVA Limit" loading
// view and the "MW From" directional-flow view. Date, Time and Skip columns
// are carried into both.
func SplitBranchFrames(f *Frame) (mvaLimit, mwFrom *Frame) {
	mvaCols := append([]string(nil), baseColumns...)
	mwFromCols := append([]string(nil), baseColumns...)
	for _, col := range f.Columns {
		if isBaseColumn(col) {
			continue
		}
		lower := strings.ToLower(col)
		if strings.Contains(lower, "% of mva limit") {
			mvaCols = append(mvaCols, col)
		}
		if strings.Contains(lower, "mw from") && !strings.Contains(lower, "% of mva") {
			mwFromCols = append(mwFromCols, col)
		}
	}
	return f.Select(mvaCols), f.Select(mwFromCols)
}

// NonBaseColumns lists frame columns that are not Date, Time or Skip.
func NonBaseColumns(f *Frame) []string {
	var cols []string
	for _, col := range f.Columns {
		if !isBaseColumn(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// BranchColumns lists the "% of MVA Limit" columns of a frame, in order.
func BranchColumns(f *Frame) []string {
	var cols []string
	for _, col := range NonBaseColumns(f) {
		if strings.Contains(strings.ToLower(col), "% of mva limit") {
			cols = append(cols, col)
		}
	}
	return cols
}

// BranchName reduces a branch column header to "<from>-<to>". Headers like
// "1 (Slack) TO 2 (Community)  % of MVA Limit" and the bare "1 TO 2" form are
// recognized; anything else is returned unchanged.
func BranchName(col string) string {
	if m := branchNamedRe.FindStringSubmatch(col); m != nil {
		return m[1] + "-" + m[2]
	}
	if m := branchPlainRe.FindStringSubmatch(col); m != nil {
		return m[1] + "-" + m[2]
	}
	return col
}

// VoltageBus extracts the bus number from a "<n> PU Volt" column header. The
// second result is false when the header is no voltage column.
func VoltageBus(col string) (string, bool) {
	m := voltageColRe.FindStringSubmatch(col)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SortedBuses returns map keys in ascending bus order for deterministic
// iteration.
func SortedBuses[V any](m map[int]V) []int {
	buses := make([]int, 0, len(m))
	for bus := range m {
		buses = append(buses, bus)
	}
	sort.Ints(buses)
	return buses
}
