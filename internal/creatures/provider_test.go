package creatures

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"testing"

	"github.com/nerdwave-nick/counterdex/internal/cache"
	"github.com/nerdwave-nick/counterdex/internal/pokeapi"
	"github.com/nerdwave-nick/counterdex/internal/pokemon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository keeping insertion order.
type memRepo struct {
	byName  map[string]pokemon.Creature
	order   []string
	saveErr error
	getErr  error
}

func newMemRepo() *memRepo {
	return &memRepo{byName: make(map[string]pokemon.Creature)}
}

func (r *memRepo) CreatureByName(_ context.Context, name string) (*pokemon.Creature, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	c, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("creature %q: %w", name, pokemon.ErrNotFound)
	}
	return &c, nil
}

func (r *memRepo) SaveCreature(_ context.Context, c *pokemon.Creature) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.byName[c.Name]; !ok {
		r.order = append(r.order, c.Name)
		r.byName[c.Name] = *c
	}
	return nil
}

func (r *memRepo) AllCreatures(context.Context) ([]pokemon.Creature, error) {
	out := make([]pokemon.Creature, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.byName[n])
	}
	return out, nil
}

func (r *memRepo) SearchCreatures(_ context.Context, query string) ([]pokemon.Creature, error) {
	var out []pokemon.Creature
	for _, n := range r.order {
		if strings.Contains(n, query) {
			out = append(out, r.byName[n])
		}
	}
	return out, nil
}

// fakeRemote serves canned PokeAPI responses.
type fakeRemote struct {
	pokemon  map[string]*pokeapi.Pokemon
	names    []string
	err      error
	fetches  []string
	listings int
}

func (r *fakeRemote) Pokemon(_ context.Context, name string) (*pokeapi.Pokemon, error) {
	r.fetches = append(r.fetches, name)
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.pokemon[name]
	if !ok {
		return nil, fmt.Errorf("pokemon/%s: %w", name, pokeapi.ErrNotFound)
	}
	return p, nil
}

func (r *fakeRemote) PokemonNames(_ context.Context, limit int) ([]string, error) {
	r.listings++
	if r.err != nil {
		return nil, r.err
	}
	if limit < len(r.names) {
		return r.names[:limit], nil
	}
	return r.names, nil
}

func apiPokemon(id int, name string, types ...string) *pokeapi.Pokemon {
	sprite := fmt.Sprintf("https://example.test/%d.png", id)
	p := &pokeapi.Pokemon{
		ID:     id,
		Name:   name,
		Height: 7,
		Weight: 69,
		Stats: []pokeapi.PokemonStat{
			{Stat: pokeapi.NamedAPIResource{Name: "hp"}, BaseStat: 45},
			{Stat: pokeapi.NamedAPIResource{Name: "speed"}, BaseStat: 45},
		},
		Abilities: []pokeapi.PokemonAbility{{Ability: pokeapi.NamedAPIResource{Name: "overgrow"}}},
		Moves:     []pokeapi.PokemonMove{{Move: pokeapi.NamedAPIResource{Name: "tackle"}}},
		Sprites:   pokeapi.PokemonSprites{FrontDefault: &sprite},
	}
	for i, t := range types {
		p.Types = append(p.Types, pokeapi.PokemonType{Slot: i + 1, Type: pokeapi.NamedAPIResource{Name: t}})
	}
	return p
}

func TestFromAPI(t *testing.T) {
	c, err := FromAPI(apiPokemon(1, "bulbasaur", "grass", "poison"))
	require.NoError(t, err)
	assert.Equal(t, &pokemon.Creature{
		ID:        1,
		Name:      "bulbasaur",
		Types:     []pokemon.Type{pokemon.TypeGrass, pokemon.TypePoison},
		Stats:     map[string]int{"hp": 45, "speed": 45},
		Abilities: []string{"overgrow"},
		Moves:     []string{"tackle"},
		Height:    0.7,
		Weight:    6.9,
		SpriteURL: "https://example.test/1.png",
	}, c)

	t.Run("no sprite", func(t *testing.T) {
		p := apiPokemon(2, "ivysaur", "grass")
		p.Sprites.FrontDefault = nil
		c, err := FromAPI(p)
		require.NoError(t, err)
		assert.Empty(t, c.SpriteURL)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := FromAPI(apiPokemon(3, "odd", "shadow"))
		assert.Error(t, err)
	})

	t.Run("no types", func(t *testing.T) {
		_, err := FromAPI(apiPokemon(4, "ghosty"))
		assert.ErrorContains(t, err, "0 types")
	})

	t.Run("three types", func(t *testing.T) {
		_, err := FromAPI(apiPokemon(5, "triple", "fire", "water", "grass"))
		assert.ErrorContains(t, err, "3 types")
	})

	t.Run("no stats", func(t *testing.T) {
		p := apiPokemon(6, "statless", "normal")
		p.Stats = nil
		_, err := FromAPI(p)
		assert.ErrorContains(t, err, "no base stats")
	})
}

func TestProvider_ByName_RejectsMalformedRecords(t *testing.T) {
	repo := newMemRepo()
	remote := &fakeRemote{pokemon: map[string]*pokeapi.Pokemon{"ghosty": apiPokemon(1, "ghosty")}}
	_, err := NewProvider(repo, remote, 0).ByName(context.Background(), "ghosty")
	assert.ErrorIs(t, err, pokemon.ErrLookupFailure)
	assert.Empty(t, repo.order)
}

func TestProvider_ByName_PathTraversal(t *testing.T) {
	// Serves the fire type for any path that cleans to it, like a normalising upstream would.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path.Clean(r.URL.EscapedPath()) == "/type/fire" {
			_, _ = w.Write([]byte(`{"id": 10, "name": "fire", "damage_relations": {}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	repo := newMemRepo()
	client := pokeapi.NewClient(cache.NewMultiLayerCache(), srv.Client(), srv.URL)
	_, err := NewProvider(repo, client, 0).ByName(context.Background(), "../type/fire")
	assert.ErrorIs(t, err, pokemon.ErrNotFound)
	assert.Empty(t, repo.order)
}

func TestProvider_ByName(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches once then serves from store", func(t *testing.T) {
		repo := newMemRepo()
		remote := &fakeRemote{pokemon: map[string]*pokeapi.Pokemon{"pikachu": apiPokemon(25, "pikachu", "electric")}}
		p := NewProvider(repo, remote, 0)

		c, err := p.ByName(ctx, "  Pikachu ")
		require.NoError(t, err)
		assert.Equal(t, "pikachu", c.Name)
		assert.Equal(t, []pokemon.Type{pokemon.TypeElectric}, c.Types)

		_, err = p.ByName(ctx, "pikachu")
		require.NoError(t, err)
		assert.Equal(t, []string{"pikachu"}, remote.fetches)
		assert.Contains(t, repo.byName, "pikachu")
	})

	t.Run("unknown creature", func(t *testing.T) {
		p := NewProvider(newMemRepo(), &fakeRemote{}, 0)
		_, err := p.ByName(ctx, "missingno")
		assert.ErrorIs(t, err, pokemon.ErrNotFound)
		assert.NotErrorIs(t, err, pokemon.ErrLookupFailure)
	})

	t.Run("empty name", func(t *testing.T) {
		p := NewProvider(newMemRepo(), &fakeRemote{}, 0)
		_, err := p.ByName(ctx, "  ")
		assert.ErrorIs(t, err, pokemon.ErrNotFound)
	})

	t.Run("remote failure", func(t *testing.T) {
		p := NewProvider(newMemRepo(), &fakeRemote{err: errors.New("503")}, 0)
		_, err := p.ByName(ctx, "pikachu")
		assert.ErrorIs(t, err, pokemon.ErrLookupFailure)
	})

	t.Run("store failure is not masked", func(t *testing.T) {
		repo := newMemRepo()
		repo.getErr = errors.New("db locked")
		remote := &fakeRemote{}
		p := NewProvider(repo, remote, 0)
		_, err := p.ByName(ctx, "pikachu")
		assert.EqualError(t, err, "db locked")
		assert.Empty(t, remote.fetches)
	})

	t.Run("save failure", func(t *testing.T) {
		repo := newMemRepo()
		repo.saveErr = errors.New("read only")
		remote := &fakeRemote{pokemon: map[string]*pokeapi.Pokemon{"pikachu": apiPokemon(25, "pikachu", "electric")}}
		_, err := NewProvider(repo, remote, 0).ByName(ctx, "pikachu")
		assert.EqualError(t, err, "read only")
	})
}

func TestProvider_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("stored matches win", func(t *testing.T) {
		repo := newMemRepo()
		require.NoError(t, repo.SaveCreature(ctx, &pokemon.Creature{Name: "raichu"}))
		remote := &fakeRemote{}
		found, err := NewProvider(repo, remote, 0).Search(ctx, "CHU")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "raichu", found[0].Name)
		assert.Zero(t, remote.listings)
	})

	t.Run("falls back to the listing", func(t *testing.T) {
		remote := &fakeRemote{
			names: []string{"bulbasaur", "pikachu", "raichu", "pichu"},
			pokemon: map[string]*pokeapi.Pokemon{
				"pikachu": apiPokemon(25, "pikachu", "electric"),
				"raichu":  apiPokemon(26, "raichu", "electric"),
				"pichu":   apiPokemon(172, "pichu", "electric"),
			},
		}
		repo := newMemRepo()
		found, err := NewProvider(repo, remote, 0).Search(ctx, "chu")
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, "pikachu", found[0].Name)
		assert.Len(t, repo.order, 3)
	})

	t.Run("at most ten fetches", func(t *testing.T) {
		remote := &fakeRemote{pokemon: make(map[string]*pokeapi.Pokemon)}
		for i := range 15 {
			name := fmt.Sprintf("mon-%d", i)
			remote.names = append(remote.names, name)
			remote.pokemon[name] = apiPokemon(i+1, name, "normal")
		}
		found, err := NewProvider(newMemRepo(), remote, 0).Search(ctx, "mon")
		require.NoError(t, err)
		assert.Len(t, found, maxSearchFetches)
		assert.Len(t, remote.fetches, maxSearchFetches)
	})

	t.Run("listing limit is passed on", func(t *testing.T) {
		remote := &fakeRemote{names: []string{"abra", "kadabra", "alakazam"}, pokemon: map[string]*pokeapi.Pokemon{
			"abra": apiPokemon(63, "abra", "psychic"),
		}}
		found, err := NewProvider(newMemRepo(), remote, 1).Search(ctx, "abra")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "abra", found[0].Name)
	})

	t.Run("listing failure", func(t *testing.T) {
		_, err := NewProvider(newMemRepo(), &fakeRemote{err: errors.New("timeout")}, 0).Search(ctx, "x")
		assert.ErrorIs(t, err, pokemon.ErrLookupFailure)
	})

	t.Run("nothing anywhere", func(t *testing.T) {
		found, err := NewProvider(newMemRepo(), &fakeRemote{names: []string{"abra"}}, 0).Search(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestProvider_All(t *testing.T) {
	repo := newMemRepo()
	require.NoError(t, repo.SaveCreature(context.Background(), &pokemon.Creature{Name: "a"}))
	require.NoError(t, repo.SaveCreature(context.Background(), &pokemon.Creature{Name: "b"}))
	all, err := NewProvider(repo, &fakeRemote{}, 0).All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
