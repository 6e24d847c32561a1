package loads

import (
	"sync"

	"github.com/DanielEliad/powerworld/internal/tabular"
)

// Kind selects the active or reactive load series.
type Kind string

const (
	KindMW   Kind = "mw"
	KindMVar Kind = "mvar"
)

// Unit returns the display unit of the kind.
func (k Kind) Unit() string {
	if k == KindMVar {
		return "MVar"
	}
	return "MW"
}

// Store is the process-wide working state of the load editor: the immutable
// default fixed by the first submission of each kind, the mutable current
// copy, and the last computed redistribution cost. All accessors hand out
// deep copies; the only ways in are SetDefaultIfEmpty, Commit and Reset.
type Store struct {
	mu       sync.RWMutex
	mw       framePair
	mvar     framePair
	loadCost float64
}

type framePair struct {
	def *tabular.Frame
	cur *tabular.Frame
}

// NewStore returns an empty working state.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) pairFor(kind Kind) *framePair {
	if kind == KindMVar {
		return &s.mvar
	}
	return &s.mw
}

// HasDefault reports whether a baseline of the kind was ever fixed.
func (s *Store) HasDefault(kind Kind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pairFor(kind).def != nil
}

// FirstPaste reports whether either baseline kind is still unset.
func (s *Store) FirstPaste() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mw.def == nil || s.mvar.def == nil
}

// SetDefaultIfEmpty fixes the baseline of one kind and initializes its
// current copy. It only takes effect once per kind; later calls report false
// and change nothing.
func (s *Store) SetDefaultIfEmpty(kind Kind, f *tabular.Frame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pairFor(kind)
	if p.def != nil {
		return false
	}
	p.def = f.Clone()
	p.cur = f.Clone()
	return true
}

// Default returns a copy of the baseline frame of one kind.
func (s *Store) Default(kind Kind) (*tabular.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.pairFor(kind)
	if p.def == nil {
		return nil, false
	}
	return p.def.Clone(), true
}

// Current returns a copy of the working frame of one kind.
func (s *Store) Current(kind Kind) (*tabular.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.pairFor(kind)
	if p.cur == nil {
		return nil, false
	}
	return p.cur.Clone(), true
}

// Commit replaces the working copies after a successful move batch and stores
// the recomputed redistribution cost. A nil mvar leaves the reactive copy
// untouched.
func (s *Store) Commit(mw, mvar *tabular.Frame, loadCost float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mw.cur = mw.Clone()
	if mvar != nil {
		s.mvar.cur = mvar.Clone()
	}
	s.loadCost = loadCost
}

// Reset restores both working copies to their baselines and zeroes the
// redistribution cost.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range []*framePair{&s.mw, &s.mvar} {
		if p.def != nil {
			p.cur = p.def.Clone()
		} else {
			p.cur = nil
		}
	}
	s.loadCost = 0
}

// SetLoadCost stores the redistribution cost computed by a loads analysis.
func (s *Store) SetLoadCost(cost float64) {
	s.mu.Lock()
	s.loadCost = cost
	s.mu.Unlock()
}

// LoadCost returns the last stored redistribution cost.
func (s *Store) LoadCost() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadCost
}
