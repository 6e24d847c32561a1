package loads

import (
	"errors"
	"math"
	"testing"

	"github.com/DanielEliad/powerworld/core/events"
	"github.com/DanielEliad/powerworld/infra/logger"
	"github.com/DanielEliad/powerworld/internal/eventbus"
)

func newTestEngine(t *testing.T) (*Engine, *Store) {
	t.Helper()
	s := seededStore(t)
	return NewEngine(s, 5, nil, logger.NopLogger{}), s
}

func wantSeries(t *testing.T, got map[string][]float64, bus string, want []float64) {
	t.Helper()
	series, ok := got[bus]
	if !ok {
		t.Fatalf("bus %s missing from %v", bus, got)
	}
	if len(series) != len(want) {
		t.Fatalf("bus %s: got %v, want %v", bus, series, want)
	}
	for i := range want {
		if math.Abs(series[i]-want[i]) > 1e-9 {
			t.Fatalf("bus %s: got %v, want %v", bus, series, want)
		}
	}
}

func TestApplyMovesActiveAndReactive(t *testing.T) {
	e, s := newTestEngine(t)
	res, err := e.Apply([]MoveOperation{{BusID: "3", FromIndex: 0, ToIndex: 1, MWValue: 4}})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	wantSeries(t, res.CurrentMWData, "3", []float64{-2, 10, 2})
	wantSeries(t, res.CurrentMWData, "5", []float64{4, 4, 4})
	wantSeries(t, res.OriginalMWData, "3", []float64{2, 6, 2})

	// 8 MW of absolute deviation is 4000 kWh moved, priced at 5 per kWh.
	if math.Abs(res.LoadCost-20000) > 1e-9 {
		t.Fatalf("load cost: got %v, want 20000", res.LoadCost)
	}
	if got := s.LoadCost(); math.Abs(got-20000) > 1e-9 {
		t.Fatalf("store load cost: got %v, want 20000", got)
	}

	// The source timestep's whole reactive value moved with the 4 MW.
	if res.LoadsMVarPaste == nil {
		t.Fatalf("expected reactive paste")
	}
	mvar := parseFrame(t, *res.LoadsMVarPaste)
	vals, _ := mvar.Column("Bus 3 #EV Mvar")
	for i, want := range []float64{0, 4, 1} {
		if math.Abs(vals[i]-want) > 1e-9 {
			t.Fatalf("mvar series: got %v, want [0 4 1]", vals)
		}
	}

	cur, _ := s.Current(KindMW)
	if v, _ := cur.Cell("Bus 3 #EV MW", 1); v != 10 {
		t.Fatalf("committed current mw: got %v, want 10", v)
	}
}

func TestApplyCumulativeSameBus(t *testing.T) {
	e, s := newTestEngine(t)
	ops := []MoveOperation{
		{BusID: "3", FromIndex: 0, ToIndex: 2, MWValue: 1},
		{BusID: "3", FromIndex: 0, ToIndex: 2, MWValue: 1},
	}
	res, err := e.Apply(ops)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	wantSeries(t, res.CurrentMWData, "3", []float64{0, 6, 4})

	// The second operation reads the reactive source already drained to zero,
	// so only the first move shifts reactive power.
	mvar, _ := s.Current(KindMVar)
	vals, _ := mvar.Column("Bus 3 #EV Mvar")
	for i, want := range []float64{0, 3, 2} {
		if math.Abs(vals[i]-want) > 1e-9 {
			t.Fatalf("mvar series: got %v, want [0 3 2]", vals)
		}
	}

	// 4 MW of deviation: 2000 kWh at 5 each.
	if math.Abs(res.LoadCost-10000) > 1e-9 {
		t.Fatalf("load cost: got %v, want 10000", res.LoadCost)
	}
}

func TestApplySkipsBusWithoutMWColumn(t *testing.T) {
	e, _ := newTestEngine(t)
	ops := []MoveOperation{
		{BusID: "99", FromIndex: 0, ToIndex: 1, MWValue: 5},
		{BusID: "3", FromIndex: 0, ToIndex: 2, MWValue: 1},
	}
	res, err := e.Apply(ops)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	wantSeries(t, res.CurrentMWData, "3", []float64{1, 6, 3})
	wantSeries(t, res.CurrentMWData, "5", []float64{4, 4, 4})
}

func TestApplyInvalidBusID(t *testing.T) {
	e, s := newTestEngine(t)
	if _, err := e.Apply([]MoveOperation{{BusID: "abc", FromIndex: 0, ToIndex: 1, MWValue: 1}}); err == nil {
		t.Fatalf("expected error for non-numeric bus id")
	}
	cur, _ := s.Current(KindMW)
	if v, _ := cur.Cell("Bus 3 #EV MW", 0); v != 2 {
		t.Fatalf("store changed by failed batch: got %v", v)
	}
}

func TestApplyOutOfRangeAbortsWholeBatch(t *testing.T) {
	e, s := newTestEngine(t)
	ops := []MoveOperation{
		{BusID: "3", FromIndex: 0, ToIndex: 1, MWValue: 4},
		{BusID: "3", FromIndex: 0, ToIndex: 99, MWValue: 1},
	}
	if _, err := e.Apply(ops); err == nil {
		t.Fatalf("expected error for out-of-range timestep")
	}
	cur, _ := s.Current(KindMW)
	if v, _ := cur.Cell("Bus 3 #EV MW", 0); v != 2 {
		t.Fatalf("first operation leaked into store after failed batch: got %v", v)
	}
	if got := s.LoadCost(); got != 0 {
		t.Fatalf("load cost changed by failed batch: got %v", got)
	}
}

func TestApplyWithoutData(t *testing.T) {
	e := NewEngine(NewStore(), 5, nil, logger.NopLogger{})
	if _, err := e.Apply(nil); !errors.Is(err, ErrNoCurrentData) {
		t.Fatalf("expected ErrNoCurrentData, got %v", err)
	}
}

func TestApplyPublishesEvent(t *testing.T) {
	bus := eventbus.New[events.Event]()
	sub := bus.Subscribe()
	e := NewEngine(seededStore(t), 5, bus, logger.NopLogger{})
	if _, err := e.Apply([]MoveOperation{{BusID: "3", FromIndex: 0, ToIndex: 1, MWValue: 4}}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	select {
	case ev := <-sub:
		moved, ok := ev.(events.LoadsMoved)
		if !ok {
			t.Fatalf("expected LoadsMoved, got %T", ev)
		}
		if moved.Operations != 1 || math.Abs(moved.EnergyMovedKWh-4000) > 1e-9 {
			t.Fatalf("unexpected event payload: %+v", moved)
		}
	default:
		t.Fatalf("no event published")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	e, s := newTestEngine(t)
	if _, err := e.Apply([]MoveOperation{{BusID: "3", FromIndex: 0, ToIndex: 1, MWValue: 4}}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	res, err := e.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if want := parseFrame(t, mwPaste).PasteString(); res.LoadsMWPaste != want {
		t.Fatalf("mw paste after reset:\n got %q\nwant %q", res.LoadsMWPaste, want)
	}
	if want := parseFrame(t, mvarPaste).PasteString(); res.LoadsMVarPaste != want {
		t.Fatalf("mvar paste after reset:\n got %q\nwant %q", res.LoadsMVarPaste, want)
	}
	wantSeries(t, res.CurrentMWData, "3", []float64{2, 6, 2})
	wantSeries(t, res.OriginalMWData, "3", []float64{2, 6, 2})
	if got := s.LoadCost(); got != 0 {
		t.Fatalf("reset must zero load cost, got %v", got)
	}
}

func TestResetWithoutDefault(t *testing.T) {
	e := NewEngine(NewStore(), 5, nil, logger.NopLogger{})
	if _, err := e.Reset(); !errors.Is(err, ErrNoDefaultData) {
		t.Fatalf("expected ErrNoDefaultData, got %v", err)
	}
}
