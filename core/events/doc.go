// Package events defines the analysis related events emitted on the event bus.
//
// Available event types:
//   - AnalysisCompleted: one analysis request finished
//   - LoadsMoved: a move batch committed to the working state
//   - WorkingStateReset: the load editor reverted to its baselines
package events
