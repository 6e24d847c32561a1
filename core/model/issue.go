package model

// IssueKind enumerates the violation and warning types produced by analysis.
type IssueKind string

const (
	NegativeCapacity             IssueKind = "negative_capacity"
	AboveMaxSize                 IssueKind = "above_max_size"
	ExceedsPowerRating           IssueKind = "exceeds_power_rating"
	BatteryNotFullyUsed          IssueKind = "battery_not_fully_used"
	BatteryUnderutilizedRounding IssueKind = "battery_underutilized_rounding"
	VoltageViolation             IssueKind = "voltage_violation"
	LoadEnergyNotConserved       IssueKind = "load_energy_not_conserved"
	LoadPQNotSynchronized        IssueKind = "load_pq_not_synchronized"
	ReversePowerFlow             IssueKind = "reverse_power_flow"
)

// IsWarning reports whether the kind is advisory rather than a violation.
func (k IssueKind) IsWarning() bool {
	return k == BatteryNotFullyUsed || k == BatteryUnderutilizedRounding
}

// Issue is one collected validation finding. Issues are produced, never
// mutated, and consumed once by the caller. Only the fields that apply to the
// kind are set. The message is explanatory sugar; consumers and tests assert
// on the structured fields.
type Issue struct {
	Kind                 IssueKind `json:"kind"`
	Bus                  string    `json:"bus,omitempty"`
	Branch               string    `json:"branch,omitempty"`
	Timestep             *int      `json:"timestep,omitempty"`
	CapacityKWh          *float64  `json:"capacity_kwh,omitempty"`
	PowerMW              *float64  `json:"power_mw,omitempty"`
	VoltagePU            *float64  `json:"voltage_pu,omitempty"`
	MaxPowerRatingMW     *float64  `json:"max_power_rating_mw,omitempty"`
	InstalledCapacityKWh *float64  `json:"installed_capacity_kwh,omitempty"`
	MaxCapacityKWh       *float64  `json:"max_capacity_kwh,omitempty"`
	RoundedCapacityKWh   *float64  `json:"rounded_capacity_kwh,omitempty"`
	WastedCapacityKWh    *float64  `json:"wasted_capacity_kwh,omitempty"`
	WastePercent         *float64  `json:"waste_percent,omitempty"`
	PercentRemaining     *float64  `json:"percent_remaining,omitempty"`
	MinSizeKWh           *int      `json:"min_size_kwh,omitempty"`
	MaxSizeKWh           *int      `json:"max_size_kwh,omitempty"`
	MinMW                *float64  `json:"min_mw,omitempty"`
	DefaultTotal         *float64  `json:"default_total,omitempty"`
	NewTotal             *float64  `json:"new_total,omitempty"`
	Message              string    `json:"message"`
}

// FloatPtr and IntPtr build pointers for optional Issue fields.
func FloatPtr(v float64) *float64 { return &v }

func IntPtr(v int) *int { return &v }
