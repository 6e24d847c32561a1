package busconfig

import (
	"sort"
	"sync"

	"github.com/DanielEliad/powerworld/core/model"
)

// assignment pairs a bus category with its battery class. HasBattery false is
// a valid assignment (the grid-connection bus installs none), not a missing
// entry.
type assignment struct {
	Class      model.BatteryClass
	HasBattery bool
}

var assignmentByCategory = map[model.BusCategory]assignment{
	model.CategoryGridConnection: {},
	model.CategoryCommunity:      {Class: model.BatteryNeighborhood, HasBattery: true},
	model.CategoryResidential:    {Class: model.BatteryHome, HasBattery: true},
}

// BatteryClassFor returns the battery class assigned to a bus category. The
// second result is false when the category installs no battery.
func BatteryClassFor(cat model.BusCategory) (model.BatteryClass, bool) {
	a := assignmentByCategory[cat]
	return a.Class, a.HasBattery
}

// Registry holds the bus configuration table. Seeding happens exactly once
// through EnsureSeeded; reads never populate the table.
type Registry struct {
	mu     sync.RWMutex
	seed   []model.BusConfig
	buses  map[int]model.BusConfig
	filled bool
}

// NewRegistry creates an empty registry that seeds from the given table.
func NewRegistry(seed []model.BusConfig) *Registry {
	return &Registry{
		seed:  seed,
		buses: map[int]model.BusConfig{},
	}
}

// EnsureSeeded installs the seed table unless the registry was ever
// populated. Idempotent. An explicit Update wins permanently over the seed,
// even an update that cleared the table.
func (r *Registry) EnsureSeeded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.filled {
		return
	}
	for _, b := range r.seed {
		r.buses[b.BusNumber] = b
	}
	r.filled = true
}

// Get returns the configuration of one bus.
func (r *Registry) Get(bus int) (model.BusConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.buses[bus]
	return cfg, ok
}

// All returns the table ordered by bus number.
func (r *Registry) All() []model.BusConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]model.BusConfig, 0, len(r.buses))
	for _, cfg := range r.buses {
		res = append(res, cfg)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].BusNumber < res[j].BusNumber })
	return res
}

// Update replaces the whole table and marks the registry populated.
func (r *Registry) Update(configs []model.BusConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buses = make(map[int]model.BusConfig, len(configs))
	for _, cfg := range configs {
		r.buses[cfg.BusNumber] = cfg
	}
	r.filled = true
}

// Classify resolves the battery class installed on a bus. Unknown buses and
// buses in a no-battery category return false; downstream validation and
// costing skip them without error.
func (r *Registry) Classify(bus int) (model.BatteryClass, bool) {
	cfg, ok := r.Get(bus)
	if !ok {
		return "", false
	}
	return BatteryClassFor(cfg.Category)
}
