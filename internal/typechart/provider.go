package typechart

import (
	"context"
	"fmt"

	"github.com/nerdwave-nick/counterdex/internal/pokeapi"
	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

// TypeFetcher is the part of the PokeAPI client the provider needs.
type TypeFetcher interface {
	Type(ctx context.Context, name string) (*pokeapi.Type, error)
}

// APIProvider reads relation tables from the PokeAPI type endpoint.
type APIProvider struct {
	fetcher TypeFetcher
}

func NewAPIProvider(fetcher TypeFetcher) *APIProvider {
	return &APIProvider{fetcher: fetcher}
}

func (p *APIProvider) RelationTable(ctx context.Context, t pokemon.Type) (Relations, error) {
	typ, err := p.fetcher.Type(ctx, t.String())
	if err != nil {
		return Relations{}, err
	}
	var rel Relations
	if rel.DoubleDamageTo, err = resourceTypes(typ.DamageRelations.DoubleDamageTo); err != nil {
		return Relations{}, fmt.Errorf("double_damage_to of %q: %w", t, err)
	}
	if rel.HalfDamageTo, err = resourceTypes(typ.DamageRelations.HalfDamageTo); err != nil {
		return Relations{}, fmt.Errorf("half_damage_to of %q: %w", t, err)
	}
	if rel.NoDamageTo, err = resourceTypes(typ.DamageRelations.NoDamageTo); err != nil {
		return Relations{}, fmt.Errorf("no_damage_to of %q: %w", t, err)
	}
	return rel, nil
}

func resourceTypes(resources []pokeapi.NamedAPIResource) ([]pokemon.Type, error) {
	names := make([]string, 0, len(resources))
	for _, r := range resources {
		names = append(names, r.Name)
	}
	return pokemon.ParseTypes(names)
}
