package typechart

import (
	"context"

	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

// Chart answers single pair effectiveness questions.
type Chart interface {
	EffectivenessOf(ctx context.Context, attacking, defending pokemon.Type) (float64, error)
}

// Resolver compounds single pair multipliers across multi-type attackers and defenders.
type Resolver struct {
	chart Chart
}

func NewResolver(chart Chart) *Resolver {
	return &Resolver{chart: chart}
}

// CompoundedEffectiveness multiplies the effectiveness of every attacker type against every
// defender type. Both sides are treated as sets. The result is not clamped.
func (r *Resolver) CompoundedEffectiveness(ctx context.Context, attackers, defenders []pokemon.Type) (float64, error) {
	result := NormalEffective
	for _, a := range pokemon.UniqueTypes(attackers) {
		for _, d := range pokemon.UniqueTypes(defenders) {
			m, err := r.chart.EffectivenessOf(ctx, a, d)
			if err != nil {
				return 0, err
			}
			result *= m
		}
	}
	return result, nil
}
