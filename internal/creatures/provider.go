// Package creatures serves creature records from the relational store, falling back to the
// PokeAPI and persisting whatever it fetches.
package creatures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nerdwave-nick/counterdex/internal/pokeapi"
	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

const (
	DefaultListingLimit = 1000
	// maxSearchFetches bounds how many creatures a remote search pulls in.
	maxSearchFetches = 10
)

type Repository interface {
	CreatureByName(ctx context.Context, name string) (*pokemon.Creature, error)
	SaveCreature(ctx context.Context, c *pokemon.Creature) error
	AllCreatures(ctx context.Context) ([]pokemon.Creature, error)
	SearchCreatures(ctx context.Context, query string) ([]pokemon.Creature, error)
}

type Remote interface {
	Pokemon(ctx context.Context, nameOrID string) (*pokeapi.Pokemon, error)
	PokemonNames(ctx context.Context, limit int) ([]string, error)
}

type Provider struct {
	repo         Repository
	remote       Remote
	listingLimit int
}

func NewProvider(repo Repository, remote Remote, listingLimit int) *Provider {
	if listingLimit <= 0 {
		listingLimit = DefaultListingLimit
	}
	return &Provider{
		repo:         repo,
		remote:       remote,
		listingLimit: listingLimit,
	}
}

// ByName returns the stored creature, fetching and storing it first if needed.
func (p *Provider) ByName(ctx context.Context, name string) (*pokemon.Creature, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("empty creature name: %w", pokemon.ErrNotFound)
	}

	c, err := p.repo.CreatureByName(ctx, name)
	if err == nil {
		slog.Debug("creature served from store", slog.String("name", name))
		return c, nil
	}
	if !errors.Is(err, pokemon.ErrNotFound) {
		return nil, err
	}

	raw, err := p.remote.Pokemon(ctx, name)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			return nil, fmt.Errorf("creature %q: %w", name, pokemon.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching creature %q: %w: %w", name, pokemon.ErrLookupFailure, err)
	}
	fetched, err := FromAPI(raw)
	if err != nil {
		return nil, fmt.Errorf("converting creature %q: %w: %w", name, pokemon.ErrLookupFailure, err)
	}
	if err := p.repo.SaveCreature(ctx, fetched); err != nil {
		return nil, err
	}
	slog.Info("cached new creature", slog.String("name", fetched.Name))
	return fetched, nil
}

// All lists every stored creature.
func (p *Provider) All(ctx context.Context) ([]pokemon.Creature, error) {
	return p.repo.AllCreatures(ctx)
}

// Search returns stored creatures whose name contains query. When none are stored it scans the
// PokeAPI listing and fetches the first few matches.
func (p *Provider) Search(ctx context.Context, query string) ([]pokemon.Creature, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	found, err := p.repo.SearchCreatures(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		return found, nil
	}

	names, err := p.remote.PokemonNames(ctx, p.listingLimit)
	if err != nil {
		return nil, fmt.Errorf("listing creatures: %w: %w", pokemon.ErrLookupFailure, err)
	}
	results := make([]pokemon.Creature, 0, maxSearchFetches)
	for _, name := range names {
		if len(results) == maxSearchFetches {
			break
		}
		if !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		c, err := p.ByName(ctx, name)
		if err != nil {
			return nil, err
		}
		results = append(results, *c)
	}
	return results, nil
}

// FromAPI converts a PokeAPI pokemon into a creature record. Height and weight are converted
// from decimetres and hectograms to metres and kilograms. Records without base stats or with
// anything but one or two types are rejected, since stored creatures are never replaced.
func FromAPI(p *pokeapi.Pokemon) (*pokemon.Creature, error) {
	if n := len(p.Types); n < 1 || n > 2 {
		return nil, fmt.Errorf("pokemon %q has %d types", p.Name, n)
	}
	if len(p.Stats) == 0 {
		return nil, fmt.Errorf("pokemon %q has no base stats", p.Name)
	}
	c := &pokemon.Creature{
		ID:        p.ID,
		Name:      p.Name,
		Types:     make([]pokemon.Type, 0, len(p.Types)),
		Stats:     make(map[string]int, len(p.Stats)),
		Abilities: make([]string, 0, len(p.Abilities)),
		Moves:     make([]string, 0, len(p.Moves)),
		Height:    float64(p.Height) / 10,
		Weight:    float64(p.Weight) / 10,
	}
	for _, t := range p.Types {
		typ, err := pokemon.ParseType(t.Type.Name)
		if err != nil {
			return nil, err
		}
		c.Types = append(c.Types, typ)
	}
	for _, s := range p.Stats {
		c.Stats[s.Stat.Name] = s.BaseStat
	}
	for _, a := range p.Abilities {
		c.Abilities = append(c.Abilities, a.Ability.Name)
	}
	for _, m := range p.Moves {
		c.Moves = append(c.Moves, m.Move.Name)
	}
	if p.Sprites.FrontDefault != nil {
		c.SpriteURL = *p.Sprites.FrontDefault
	}
	return c, nil
}
