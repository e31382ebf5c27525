// Package battle serves counter rankings and type matchups.
package battle

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nerdwave-nick/counterdex/internal/api/common"
	"github.com/nerdwave-nick/counterdex/internal/pokemon"
	"github.com/nerdwave-nick/counterdex/internal/strategy"
	"github.com/nerdwave-nick/counterdex/internal/typechart"
)

type Advisor interface {
	Counters(ctx context.Context, name string, limit int) (*pokemon.Creature, []strategy.Counter, error)
	Matchup(ctx context.Context, name string) (*pokemon.Creature, typechart.Matchup, error)
}

type CountersInput struct {
	Name  string `path:"name" example:"charizard"`
	Limit int    `query:"limit" minimum:"1" maximum:"50" doc:"Number of counters to return; defaults to the configured limit"`
}

type MatchupInput struct {
	Name string `path:"name" example:"charizard"`
}

type Counter struct {
	Creature      common.Creature `json:"creature"`
	Score         float64         `json:"score"`
	Effectiveness float64         `json:"effectiveness" doc:"Compounded multiplier of the counter's types against the target"`
	StatRatio     float64         `json:"stat_ratio"`
}

type CountersBody struct {
	Body struct {
		Target   string    `json:"target"`
		Counters []Counter `json:"counters"`
	}
}

type MatchupBody struct {
	Body struct {
		Name          string   `json:"name"`
		Types         []string `json:"types"`
		StrongAgainst []string `json:"strong_against"`
		WeakAgainst   []string `json:"weak_against"`
		ImmuneTo      []string `json:"immune_to"`
	}
}

type Controller struct {
	advisor      Advisor
	defaultLimit int
}

func (c *Controller) RegisterRoutes(rctx common.RouteCreationContext) {
	tags := []string{"Strategy"}
	common.AddHumaRoute(rctx, c.Counters, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/api/counters/{name}",
		Summary: "Rank counters for a creature",
		Tags:    tags,
	})
	common.AddHumaRoute(rctx, c.Matchup, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/api/matchup/{name}",
		Summary: "Classify a creature's type matchup",
		Tags:    tags,
	})
}

func (c *Controller) Counters(ctx context.Context, in *CountersInput) (*CountersBody, huma.StatusError) {
	limit := in.Limit
	if limit <= 0 {
		limit = c.defaultLimit
	}
	target, counters, err := c.advisor.Counters(ctx, in.Name, limit)
	if err != nil {
		return nil, common.StatusFromError(err)
	}
	out := &CountersBody{}
	out.Body.Target = target.Name
	out.Body.Counters = make([]Counter, 0, len(counters))
	for i := range counters {
		out.Body.Counters = append(out.Body.Counters, Counter{
			Creature:      common.FromCreature(&counters[i].Creature),
			Score:         counters[i].Score,
			Effectiveness: counters[i].Effectiveness,
			StatRatio:     counters[i].StatRatio,
		})
	}
	return out, nil
}

func (c *Controller) Matchup(ctx context.Context, in *MatchupInput) (*MatchupBody, huma.StatusError) {
	target, m, err := c.advisor.Matchup(ctx, in.Name)
	if err != nil {
		return nil, common.StatusFromError(err)
	}
	out := &MatchupBody{}
	out.Body.Name = target.Name
	out.Body.Types = pokemon.TypeNames(target.Types)
	out.Body.StrongAgainst = pokemon.TypeNames(m.StrongAgainst)
	out.Body.WeakAgainst = pokemon.TypeNames(m.WeakAgainst)
	out.Body.ImmuneTo = pokemon.TypeNames(m.ImmuneTo)
	return out, nil
}

// MakeController creates the controller; defaultLimit applies when no limit is requested.
func MakeController(advisor Advisor, defaultLimit int) *Controller {
	if defaultLimit <= 0 {
		defaultLimit = strategy.DefaultCounterLimit
	}
	return &Controller{advisor: advisor, defaultLimit: defaultLimit}
}
