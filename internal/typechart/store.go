// Package typechart resolves elemental type effectiveness from lazily fetched relation tables.
package typechart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

// Damage multipliers of a single attacking type against a single defending type.
const (
	SuperEffective   = 2.0
	NormalEffective  = 1.0
	NotVeryEffective = 0.5
	Immune           = 0.0
)

// Relations is the attacking side of one type's damage relations.
type Relations struct {
	DoubleDamageTo []pokemon.Type
	HalfDamageTo   []pokemon.Type
	NoDamageTo     []pokemon.Type
}

// RelationProvider fetches the relation table of a type from an external source.
type RelationProvider interface {
	RelationTable(ctx context.Context, t pokemon.Type) (Relations, error)
}

type pair struct {
	attacking pokemon.Type
	defending pokemon.Type
}

// Store memoizes relation tables and the ordered pair multipliers derived from them for the
// lifetime of the process. Nothing is ever evicted.
type Store struct {
	provider RelationProvider

	mu     sync.RWMutex
	tables map[pokemon.Type]Relations
	pairs  map[pair]float64
}

func NewStore(provider RelationProvider) *Store {
	return &Store{
		provider: provider,
		tables:   make(map[pokemon.Type]Relations),
		pairs:    make(map[pair]float64),
	}
}

// Table returns the relation table of t, fetching it on first use.
func (s *Store) Table(ctx context.Context, t pokemon.Type) (Relations, error) {
	s.mu.RLock()
	rel, ok := s.tables[t]
	s.mu.RUnlock()
	if ok {
		return rel, nil
	}

	slog.Debug("fetching type relations", slog.String("type", t.String()))
	rel, err := s.provider.RelationTable(ctx, t)
	if err != nil {
		return Relations{}, fmt.Errorf("fetching relation table of %q: %w: %w", t, pokemon.ErrLookupFailure, err)
	}

	// Concurrent first requests may both get here; the result is identical so the later
	// writer simply overwrites.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t] = rel
	// Lowest precedence first so that double damage wins over half and half over none.
	for _, d := range rel.NoDamageTo {
		s.pairs[pair{t, d}] = Immune
	}
	for _, d := range rel.HalfDamageTo {
		s.pairs[pair{t, d}] = NotVeryEffective
	}
	for _, d := range rel.DoubleDamageTo {
		s.pairs[pair{t, d}] = SuperEffective
	}
	return rel, nil
}

// EffectivenessOf returns the multiplier of an attacking type against a defending type.
// Pairs that are not listed in the attacking type's table are neutral.
func (s *Store) EffectivenessOf(ctx context.Context, attacking, defending pokemon.Type) (float64, error) {
	if m, ok := s.lookup(attacking, defending); ok {
		return m, nil
	}
	if _, err := s.Table(ctx, attacking); err != nil {
		return 0, fmt.Errorf("effectiveness of %q against %q: %w", attacking, defending, err)
	}
	m, _ := s.lookup(attacking, defending)
	return m, nil
}

// lookup reports the memoized multiplier; ok is false only while the attacking table is unknown.
func (s *Store) lookup(attacking, defending pokemon.Type) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.pairs[pair{attacking, defending}]; ok {
		return m, true
	}
	if _, loaded := s.tables[attacking]; loaded {
		return NormalEffective, true
	}
	return 0, false
}
