// Package analysis runs the grid studies over pasted simulation exports:
// branch loading, bus voltages, battery capacity and costing, and load
// redistribution review. Each analysis is stateless except for the load
// working state, which lives in the loads store shared with the move engine.
package analysis

import (
	"time"

	"github.com/DanielEliad/powerworld/core/battery"
	"github.com/DanielEliad/powerworld/core/budget"
	"github.com/DanielEliad/powerworld/core/busconfig"
	"github.com/DanielEliad/powerworld/core/events"
	"github.com/DanielEliad/powerworld/core/loads"
	"github.com/DanielEliad/powerworld/core/logger"
	"github.com/DanielEliad/powerworld/core/model"
	"github.com/DanielEliad/powerworld/internal/eventbus"
)

// Analyzer evaluates simulation exports against the configured constraints.
type Analyzer struct {
	registry  *busconfig.Registry
	batteries battery.Config
	budget    budget.Config
	cfg       Config
	store     *loads.Store
	bus       *eventbus.Bus[events.Event]
	log       logger.Logger
}

// New wires an Analyzer. bus may be nil.
func New(registry *busconfig.Registry, batteries battery.Config, budgetCfg budget.Config, cfg Config, store *loads.Store, bus *eventbus.Bus[events.Event], log logger.Logger) *Analyzer {
	return &Analyzer{
		registry:  registry,
		batteries: batteries,
		budget:    budgetCfg,
		cfg:       cfg,
		store:     store,
		bus:       bus,
		log:       log,
	}
}

// finish records metrics and publishes the completion event for one analysis.
func (a *Analyzer) finish(kind string, start time.Time, issues []model.Issue) {
	errs, warns := 0, 0
	for _, is := range issues {
		if is.Kind.IsWarning() {
			warns++
		} else {
			errs++
		}
	}
	elapsed := time.Since(start)
	analysesTotal.WithLabelValues(kind).Inc()
	issuesTotal.WithLabelValues(kind).Add(float64(len(issues)))
	analysisDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if a.bus != nil {
		a.bus.Publish(events.AnalysisCompleted{Kind: kind, Issues: errs, Warnings: warns, Duration: elapsed})
	}
	a.log.Debugw("analysis completed", map[string]any{
		"kind":     kind,
		"errors":   errs,
		"warnings": warns,
		"duration": elapsed.String(),
	})
}

// fail records a rejected analysis.
func (a *Analyzer) fail(kind string, err error) {
	analysisFailures.WithLabelValues(kind).Inc()
	a.log.Warnf("%s analysis rejected: %v", kind, err)
}
