package strategy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nerdwave-nick/counterdex/internal/pokemon"
	"github.com/nerdwave-nick/counterdex/internal/typechart"
)

// CreatureSource looks creatures up by name and lists the known pool.
type CreatureSource interface {
	ByName(ctx context.Context, name string) (*pokemon.Creature, error)
	All(ctx context.Context) ([]pokemon.Creature, error)
}

type MatchupClassifier interface {
	Classify(ctx context.Context, types []pokemon.Type) (typechart.Matchup, error)
}

// Service answers counter and matchup questions for creatures addressed by name.
type Service struct {
	creatures  CreatureSource
	engine     *CounterEngine
	classifier MatchupClassifier
}

func NewService(creatures CreatureSource, engine *CounterEngine, classifier MatchupClassifier) *Service {
	return &Service{
		creatures:  creatures,
		engine:     engine,
		classifier: classifier,
	}
}

// Counters ranks every known creature against the named target.
func (s *Service) Counters(ctx context.Context, name string, limit int) (*pokemon.Creature, []Counter, error) {
	target, err := s.creatures.ByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	pool, err := s.creatures.All(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing counter pool: %w", err)
	}
	counters, err := s.engine.FindCounters(ctx, target, pool, limit)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("counters found",
		slog.String("target", target.Name),
		slog.Int("pool", len(pool)),
		slog.Int("returned", len(counters)),
	)
	return target, counters, nil
}

// Matchup classifies the attacking profile of the named creature's types.
func (s *Service) Matchup(ctx context.Context, name string) (*pokemon.Creature, typechart.Matchup, error) {
	c, err := s.creatures.ByName(ctx, name)
	if err != nil {
		return nil, typechart.Matchup{}, err
	}
	m, err := s.classifier.Classify(ctx, c.Types)
	if err != nil {
		return nil, typechart.Matchup{}, fmt.Errorf("matchup of %q: %w", c.Name, err)
	}
	return c, m, nil
}
