// Package creature serves creature lookup, search and comparison routes.
package creature

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nerdwave-nick/counterdex/internal/api/common"
	"github.com/nerdwave-nick/counterdex/internal/comparison"
	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

type Lookup interface {
	ByName(ctx context.Context, name string) (*pokemon.Creature, error)
	Search(ctx context.Context, query string) ([]pokemon.Creature, error)
}

type Comparer interface {
	Compare(ctx context.Context, first, second string) (comparison.Comparison, error)
}

type NameInput struct {
	Name string `path:"name" doc:"Creature name or national dex number" example:"pikachu"`
}

type SearchInput struct {
	Query string `path:"query" minLength:"1" doc:"Part of a creature name" example:"chu"`
}

type CompareInput struct {
	First  string `path:"first" example:"charizard"`
	Second string `path:"second" example:"blastoise"`
}

type CreatureBody struct {
	Body common.Creature
}

type SearchBody struct {
	Body []common.Creature
}

type TypeOverlap struct {
	First  []string `json:"first"`
	Second []string `json:"second"`
	Common []string `json:"common"`
}

type ComparisonBody struct {
	Body struct {
		Stats     []comparison.StatDiff      `json:"stats"`
		Types     TypeOverlap                `json:"types"`
		Abilities comparison.Overlap[string] `json:"abilities"`
		Moves     comparison.Overlap[string] `json:"moves"`
		First     comparison.Summary         `json:"first"`
		Second    comparison.Summary         `json:"second"`
	}
}

type Controller struct {
	creatures Lookup
	comparer  Comparer
}

func (c *Controller) RegisterRoutes(rctx common.RouteCreationContext) {
	tags := []string{"Creatures"}
	common.AddHumaRoute(rctx, c.Search, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/api/pokemon/search/{query}",
		Summary: "Search creatures by name",
		Tags:    tags,
	})
	common.AddHumaRoute(rctx, c.Get, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/api/pokemon/{name}",
		Summary: "Get a creature",
		Tags:    tags,
	})
	common.AddHumaRoute(rctx, c.Compare, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/api/compare/{first}/{second}",
		Summary: "Compare two creatures",
		Tags:    tags,
	})
}

func (c *Controller) Get(ctx context.Context, in *NameInput) (*CreatureBody, huma.StatusError) {
	found, err := c.creatures.ByName(ctx, in.Name)
	if err != nil {
		return nil, common.StatusFromError(err)
	}
	return &CreatureBody{Body: common.FromCreature(found)}, nil
}

func (c *Controller) Search(ctx context.Context, in *SearchInput) (*SearchBody, huma.StatusError) {
	found, err := c.creatures.Search(ctx, in.Query)
	if err != nil {
		return nil, common.StatusFromError(err)
	}
	return &SearchBody{Body: common.FromCreatures(found)}, nil
}

func (c *Controller) Compare(ctx context.Context, in *CompareInput) (*ComparisonBody, huma.StatusError) {
	cmp, err := c.comparer.Compare(ctx, in.First, in.Second)
	if err != nil {
		return nil, common.StatusFromError(err)
	}
	out := &ComparisonBody{}
	out.Body.Stats = cmp.Stats
	out.Body.Types = TypeOverlap{
		First:  pokemon.TypeNames(cmp.Types.First),
		Second: pokemon.TypeNames(cmp.Types.Second),
		Common: pokemon.TypeNames(cmp.Types.Common),
	}
	out.Body.Abilities = cmp.Abilities
	out.Body.Moves = cmp.Moves
	out.Body.First = cmp.First
	out.Body.Second = cmp.Second
	return out, nil
}

func MakeController(creatures Lookup, comparer Comparer) *Controller {
	return &Controller{creatures: creatures, comparer: comparer}
}
