package loads

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/DanielEliad/powerworld/core/events"
	"github.com/DanielEliad/powerworld/core/logger"
	"github.com/DanielEliad/powerworld/internal/eventbus"
	"github.com/DanielEliad/powerworld/internal/tabular"
)

var (
	// ErrNoCurrentData means no submission has populated the working copy yet.
	ErrNoCurrentData = errors.New("no current MW load data available")
	// ErrNoDefaultData means reset was requested before any baseline exists.
	ErrNoDefaultData = errors.New("no default MW load data available")
)

// MoveOperation shifts an amount of active power between two timesteps of one
// bus. The bus's reactive power at the source timestep moves along with it.
type MoveOperation struct {
	BusID     string  `json:"bus_id"`
	FromIndex int     `json:"from_index"`
	ToIndex   int     `json:"to_index"`
	MWValue   float64 `json:"mw_value"`
}

// MoveResult reports the committed working state after a move batch.
type MoveResult struct {
	LoadsMWPaste   string               `json:"loads_mw_paste"`
	LoadsMVarPaste *string              `json:"loads_mvar_paste"`
	CurrentMWData  map[string][]float64 `json:"current_mw_data"`
	OriginalMWData map[string][]float64 `json:"original_mw_data"`
	LoadCost       float64              `json:"load_cost"`
}

// ResetResult reports the restored working state.
type ResetResult struct {
	LoadsMWPaste   string               `json:"loads_mw_paste"`
	LoadsMVarPaste string               `json:"loads_mvar_paste"`
	CurrentMWData  map[string][]float64 `json:"current_mw_data"`
	OriginalMWData map[string][]float64 `json:"original_mw_data"`
}

// Engine applies move batches against the working state. A single mutex
// serializes Apply and Reset: both are read-modify-write over the shared
// store, and a batch must either commit whole or leave the store untouched.
type Engine struct {
	mu          sync.Mutex
	store       *Store
	pricePerKWh float64
	bus         *eventbus.Bus[events.Event]
	log         logger.Logger
}

// NewEngine wires the move engine to its working-state store. pricePerKWh is
// the tariff applied to each redistributed kWh. bus may be nil.
func NewEngine(store *Store, pricePerKWh float64, bus *eventbus.Bus[events.Event], log logger.Logger) *Engine {
	return &Engine{store: store, pricePerKWh: pricePerKWh, bus: bus, log: log}
}

// Apply executes the operations in order against copies of the working
// frames, then commits copies, paste strings and the recomputed cost in one
// step. Operations naming a bus with no MW column are skipped; a malformed
// bus id or an out-of-range timestep aborts the whole batch.
func (e *Engine) Apply(ops []MoveOperation) (*MoveResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	mw, ok := e.store.Current(KindMW)
	if !ok {
		return nil, ErrNoCurrentData
	}
	mvar, hasMVar := e.store.Current(KindMVar)

	mwByBus := tabular.LoadColumnsByBus(mw)
	var mvarByBus map[int]tabular.LoadColumns
	if hasMVar {
		mvarByBus = tabular.LoadColumnsByBus(mvar)
	}

	e.log.Debugf("applying %d load move operations", len(ops))
	for _, op := range ops {
		bus, err := strconv.Atoi(op.BusID)
		if err != nil {
			return nil, fmt.Errorf("invalid bus id %q: %w", op.BusID, err)
		}
		mwCol := mwByBus[bus].MWCol
		if mwCol == "" {
			e.log.Debugf("skipping move for bus %d: no MW column", bus)
			continue
		}

		// Read the reactive amount at the source before mutating anything, so
		// an out-of-range index aborts with the frames still pristine for
		// this operation.
		mvarCol := ""
		mvarValue := 0.0
		if hasMVar {
			mvarCol = mvarByBus[bus].MVarCol
		}
		if mvarCol != "" {
			v, err := mvar.Cell(mvarCol, op.FromIndex)
			if err != nil {
				return nil, fmt.Errorf("move for bus %d: %w", bus, err)
			}
			mvarValue = v
		}

		if err := mw.AddAt(mwCol, op.FromIndex, -op.MWValue); err != nil {
			return nil, fmt.Errorf("move for bus %d: %w", bus, err)
		}
		if err := mw.AddAt(mwCol, op.ToIndex, op.MWValue); err != nil {
			return nil, fmt.Errorf("move for bus %d: %w", bus, err)
		}
		if mvarCol != "" {
			if err := mvar.AddAt(mvarCol, op.FromIndex, -mvarValue); err != nil {
				return nil, fmt.Errorf("move for bus %d: %w", bus, err)
			}
			if err := mvar.AddAt(mvarCol, op.ToIndex, mvarValue); err != nil {
				return nil, fmt.Errorf("move for bus %d: %w", bus, err)
			}
		}
	}

	current := BusSeries(mw, mwByBus, KindMW)
	original := map[string][]float64{}
	if def, ok := e.store.Default(KindMW); ok {
		original = BusSeries(def, tabular.LoadColumnsByBus(def), KindMW)
	}

	totalKWh := 0.0
	for bus, cur := range current {
		if def, ok := original[bus]; ok && len(def) == len(cur) {
			totalKWh += EnergyMovedKWh(cur, def)
		}
	}
	loadCost := totalKWh * e.pricePerKWh

	var committedMVar *tabular.Frame
	var mvarPaste *string
	if hasMVar {
		committedMVar = mvar
		p := mvar.PasteString()
		mvarPaste = &p
	}
	e.store.Commit(mw, committedMVar, loadCost)
	e.log.Infof("committed %d load moves: %.2f kWh moved, cost %.2f", len(ops), totalKWh, loadCost)
	if e.bus != nil {
		e.bus.Publish(events.LoadsMoved{Operations: len(ops), EnergyMovedKWh: totalKWh, LoadCost: loadCost})
	}

	return &MoveResult{
		LoadsMWPaste:   mw.PasteString(),
		LoadsMVarPaste: mvarPaste,
		CurrentMWData:  current,
		OriginalMWData: original,
		LoadCost:       loadCost,
	}, nil
}

// Reset restores the working copies to their baselines and zeroes the
// redistribution cost.
func (e *Engine) Reset() (*ResetResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.store.HasDefault(KindMW) {
		return nil, ErrNoDefaultData
	}
	e.store.Reset()

	mw, _ := e.store.Current(KindMW)
	data := BusSeries(mw, tabular.LoadColumnsByBus(mw), KindMW)

	mvarPaste := ""
	if mvar, ok := e.store.Current(KindMVar); ok {
		mvarPaste = mvar.PasteString()
	}
	e.log.Infof("load working state reset to defaults")
	if e.bus != nil {
		e.bus.Publish(events.WorkingStateReset{})
	}

	return &ResetResult{
		LoadsMWPaste:   mw.PasteString(),
		LoadsMVarPaste: mvarPaste,
		CurrentMWData:  data,
		OriginalMWData: data,
	}, nil
}

// BusSeries extracts the per-bus series of one kind, keyed by decimal bus
// number. Values are copied so responses never alias store data.
func BusSeries(f *tabular.Frame, byBus map[int]tabular.LoadColumns, kind Kind) map[string][]float64 {
	out := make(map[string][]float64, len(byBus))
	for bus, cols := range byBus {
		col := cols.MWCol
		if kind == KindMVar {
			col = cols.MVarCol
		}
		if col == "" {
			continue
		}
		if vals, ok := f.Column(col); ok {
			out[strconv.Itoa(bus)] = append([]float64(nil), vals...)
		}
	}
	return out
}
