package events

// LoadsMoved is published when a move batch commits.
type LoadsMoved struct {
	Operations     int
	EnergyMovedKWh float64
	LoadCost       float64
}

func (LoadsMoved) EventName() string { return "loads_moved" }

// WorkingStateReset is published when the load editor reverts to its
// baselines.
type WorkingStateReset struct{}

func (WorkingStateReset) EventName() string { return "working_state_reset" }
