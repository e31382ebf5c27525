// Package comparison reports stat and attribute differences between two creatures.
package comparison

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

type StatDiff struct {
	Stat       string `json:"stat"`
	First      int    `json:"first"`
	Second     int    `json:"second"`
	Difference int    `json:"difference"`
}

// Overlap holds both sides of a list attribute and the sorted elements they share.
type Overlap[T any] struct {
	First  []T `json:"first"`
	Second []T `json:"second"`
	Common []T `json:"common"`
}

type Summary struct {
	Name       string `json:"name"`
	TotalStats int    `json:"total_stats"`
}

type Comparison struct {
	Stats     []StatDiff            `json:"stats"`
	Types     Overlap[pokemon.Type] `json:"types"`
	Abilities Overlap[string]       `json:"abilities"`
	Moves     Overlap[string]       `json:"moves"`
	First     Summary               `json:"first"`
	Second    Summary               `json:"second"`
}

// Compare diffs second against first. Only stats the first creature has are compared; a stat
// missing on the second counts as zero.
func Compare(first, second *pokemon.Creature) Comparison {
	return Comparison{
		Stats:     statDiffs(first, second),
		Types:     overlap(first.Types, second.Types, func(a, b pokemon.Type) int { return int(a) - int(b) }),
		Abilities: overlap(first.Abilities, second.Abilities, strings.Compare),
		Moves:     overlap(first.Moves, second.Moves, strings.Compare),
		First:     Summary{Name: first.Name, TotalStats: first.TotalStats()},
		Second:    Summary{Name: second.Name, TotalStats: second.TotalStats()},
	}
}

// statDiffs lists the well known stats first in display order, then any others by name.
func statDiffs(first, second *pokemon.Creature) []StatDiff {
	names := make([]string, 0, len(first.Stats))
	for _, s := range pokemon.StatNames {
		if _, ok := first.Stats[s]; ok {
			names = append(names, s)
		}
	}
	for _, s := range slices.Sorted(maps.Keys(first.Stats)) {
		if !slices.Contains(pokemon.StatNames, s) {
			names = append(names, s)
		}
	}

	diffs := make([]StatDiff, 0, len(names))
	for _, s := range names {
		a, b := first.Stats[s], second.Stats[s]
		diffs = append(diffs, StatDiff{Stat: s, First: a, Second: b, Difference: a - b})
	}
	return diffs
}

func overlap[T comparable](first, second []T, cmp func(a, b T) int) Overlap[T] {
	common := make([]T, 0)
	for _, v := range first {
		if slices.Contains(second, v) && !slices.Contains(common, v) {
			common = append(common, v)
		}
	}
	slices.SortFunc(common, cmp)
	return Overlap[T]{
		First:  nonNil(first),
		Second: nonNil(second),
		Common: common,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type CreatureSource interface {
	ByName(ctx context.Context, name string) (*pokemon.Creature, error)
}

type Service struct {
	creatures CreatureSource
}

func NewService(creatures CreatureSource) *Service {
	return &Service{creatures: creatures}
}

// Compare looks both creatures up and compares them.
func (s *Service) Compare(ctx context.Context, first, second string) (Comparison, error) {
	a, err := s.creatures.ByName(ctx, first)
	if err != nil {
		return Comparison{}, fmt.Errorf("comparing %q: %w", first, err)
	}
	b, err := s.creatures.ByName(ctx, second)
	if err != nil {
		return Comparison{}, fmt.Errorf("comparing %q: %w", second, err)
	}
	return Compare(a, b), nil
}
