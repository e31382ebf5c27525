// Package team assembles six-member teams from keyword descriptions.
package team

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

const (
	Size = 6
	// maxRoleCandidates bounds how many top scorers a role chooses from.
	maxRoleCandidates = 10
	// maxSharedTypes excludes candidates sharing this many types with the team so far.
	maxSharedTypes = 2
)

// Team is a generated team with its members resolved.
type Team struct {
	ID          uuid.UUID
	Description string
	Members     []pokemon.Creature
	CreatedAt   time.Time
}

// Record is the persisted form of a team.
type Record struct {
	ID          uuid.UUID
	Description string
	Members     []string
	CreatedAt   time.Time
}

type Pool interface {
	All(ctx context.Context) ([]pokemon.Creature, error)
}

type Repository interface {
	SaveTeam(ctx context.Context, rec Record) error
}

type Builder struct {
	pool  Pool
	repo  Repository
	roles []Role

	mu  sync.Mutex
	rng *rand.Rand

	now   func() time.Time
	newID func() uuid.UUID
}

// NewBuilder creates a builder. A nil rng is replaced by a randomly seeded one.
func NewBuilder(pool Pool, repo Repository, roles []Role, rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Builder{
		pool:  pool,
		repo:  repo,
		roles: roles,
		rng:   rng,
		now:   time.Now,
		newID: uuid.New,
	}
}

// Generate fills one slot per requested role with the best fitting creature, then tops the
// team up to Size with random picks, and stores the result.
func (b *Builder) Generate(ctx context.Context, description string) (*Team, error) {
	all, err := b.pool.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing team pool: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no creatures stored to build a team from: %w", pokemon.ErrNotFound)
	}

	req := ParseRequirements(description, b.roles)
	members := make([]pokemon.Creature, 0, Size)
	picked := make(map[string]bool, Size)
	used := make(map[pokemon.Type]bool)

	for _, role := range req.Roles {
		if len(members) == Size {
			break
		}
		candidates := roleCandidates(all, role, used, picked)
		if len(candidates) == 0 {
			slog.Debug("no candidates for role", slog.String("role", role.Name))
			continue
		}
		selected := selectCandidate(candidates, req.Types)
		members = append(members, selected)
		picked[selected.Name] = true
		for _, t := range selected.Types {
			used[t] = true
		}
	}

	members = b.fill(all, members, picked)

	t := &Team{
		ID:          b.newID(),
		Description: description,
		Members:     members,
		CreatedAt:   b.now(),
	}
	if err := b.repo.SaveTeam(ctx, t.record()); err != nil {
		return nil, err
	}
	slog.Info("team generated", slog.String("id", t.ID.String()), slog.Int("members", len(members)))
	return t, nil
}

func (b *Builder) fill(all []pokemon.Creature, members []pokemon.Creature, picked map[string]bool) []pokemon.Creature {
	remaining := make([]pokemon.Creature, 0, len(all))
	for _, c := range all {
		if !picked[c.Name] {
			remaining = append(remaining, c)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for len(members) < Size && len(remaining) > 0 {
		i := b.rng.IntN(len(remaining))
		members = append(members, remaining[i])
		picked[remaining[i].Name] = true
		remaining = slices.Delete(remaining, i, i+1)
	}
	return members
}

type scored struct {
	creature pokemon.Creature
	score    int
}

// roleCandidates returns the best scoring creatures for a role that are not picked yet and
// do not pile onto types the team already has.
func roleCandidates(all []pokemon.Creature, role Role, used map[pokemon.Type]bool, picked map[string]bool) []pokemon.Creature {
	var candidates []scored
	for i := range all {
		c := &all[i]
		if picked[c.Name] {
			continue
		}
		shared := 0
		for _, t := range pokemon.UniqueTypes(c.Types) {
			if used[t] {
				shared++
			}
		}
		if shared >= maxSharedTypes {
			continue
		}
		if score := role.score(c); score > 0 {
			candidates = append(candidates, scored{creature: *c, score: score})
		}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		return b.score - a.score
	})
	if len(candidates) > maxRoleCandidates {
		candidates = candidates[:maxRoleCandidates]
	}
	out := make([]pokemon.Creature, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.creature)
	}
	return out
}

// selectCandidate prefers the best candidate of a requested type.
func selectCandidate(candidates []pokemon.Creature, types []pokemon.Type) pokemon.Creature {
	for _, c := range candidates {
		for _, t := range types {
			if c.HasType(t) {
				return c
			}
		}
	}
	return candidates[0]
}

func (t *Team) record() Record {
	names := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		names = append(names, m.Name)
	}
	return Record{
		ID:          t.ID,
		Description: t.Description,
		Members:     names,
		CreatedAt:   t.CreatedAt,
	}
}
