// Package strategy ranks counters and reports type matchups for creatures.
package strategy

import (
	"context"
	"fmt"
	"slices"

	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

// DefaultCounterLimit is how many counters are returned when the caller does not say.
const DefaultCounterLimit = 5

// Counter is a candidate scored against a target.
type Counter struct {
	Creature pokemon.Creature
	// Score is Effectiveness * StatRatio.
	Score         float64
	Effectiveness float64
	StatRatio     float64
}

type Effectiveness interface {
	CompoundedEffectiveness(ctx context.Context, attackers, defenders []pokemon.Type) (float64, error)
}

type CounterEngine struct {
	effectiveness Effectiveness
}

func NewCounterEngine(effectiveness Effectiveness) *CounterEngine {
	return &CounterEngine{effectiveness: effectiveness}
}

// FindCounters scores every pool member other than the target by how hard its types hit the
// target's types times its relative base stat total, and returns the best topN. Equal scores
// keep their pool order.
func (e *CounterEngine) FindCounters(ctx context.Context, target *pokemon.Creature, pool []pokemon.Creature, topN int) ([]Counter, error) {
	if topN <= 0 {
		topN = DefaultCounterLimit
	}
	targetTotal := target.TotalStats()
	if targetTotal == 0 {
		return nil, fmt.Errorf("stat ratio against %q: target base stats sum to zero: %w", target.Name, pokemon.ErrComputationFailure)
	}

	counters := make([]Counter, 0, len(pool))
	for _, candidate := range pool {
		if candidate.Name == target.Name {
			continue
		}
		eff, err := e.effectiveness.CompoundedEffectiveness(ctx, candidate.Types, target.Types)
		if err != nil {
			return nil, fmt.Errorf("scoring %q against %q: %w", candidate.Name, target.Name, err)
		}
		ratio := float64(candidate.TotalStats()) / float64(targetTotal)
		counters = append(counters, Counter{
			Creature:      candidate,
			Score:         eff * ratio,
			Effectiveness: eff,
			StatRatio:     ratio,
		})
	}

	slices.SortStableFunc(counters, func(a, b Counter) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	if len(counters) > topN {
		counters = counters[:topN]
	}
	return counters, nil
}
