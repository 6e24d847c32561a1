package events

import "time"

// Event is implemented by everything published on the bus.
type Event interface {
	EventName() string
}

// AnalysisCompleted is published after each analysis request.
type AnalysisCompleted struct {
	Kind     string
	Issues   int
	Warnings int
	Duration time.Duration
}

func (AnalysisCompleted) EventName() string { return "analysis_completed" }
