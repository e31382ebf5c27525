package typechart

import (
	"context"
	"slices"

	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

// Matchup is the attacking profile of a set of types. It says nothing about what hurts the
// holder of those types.
type Matchup struct {
	StrongAgainst []pokemon.Type
	WeakAgainst   []pokemon.Type
	ImmuneTo      []pokemon.Type
}

// TableSource hands out full relation tables.
type TableSource interface {
	Table(ctx context.Context, t pokemon.Type) (Relations, error)
}

type Classifier struct {
	tables TableSource
}

func NewClassifier(tables TableSource) *Classifier {
	return &Classifier{tables: tables}
}

// Classify unions the double, half and no damage targets of every given type. Output sets
// are in canonical type order.
func (c *Classifier) Classify(ctx context.Context, types []pokemon.Type) (Matchup, error) {
	strong := make(map[pokemon.Type]struct{})
	weak := make(map[pokemon.Type]struct{})
	immune := make(map[pokemon.Type]struct{})
	for _, t := range pokemon.UniqueTypes(types) {
		rel, err := c.tables.Table(ctx, t)
		if err != nil {
			return Matchup{}, err
		}
		addAll(strong, rel.DoubleDamageTo)
		addAll(weak, rel.HalfDamageTo)
		addAll(immune, rel.NoDamageTo)
	}
	return Matchup{
		StrongAgainst: sortedTypes(strong),
		WeakAgainst:   sortedTypes(weak),
		ImmuneTo:      sortedTypes(immune),
	}, nil
}

func addAll(set map[pokemon.Type]struct{}, types []pokemon.Type) {
	for _, t := range types {
		set[t] = struct{}{}
	}
}

func sortedTypes(set map[pokemon.Type]struct{}) []pokemon.Type {
	out := make([]pokemon.Type, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
