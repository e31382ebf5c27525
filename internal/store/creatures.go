package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

type creatureRow struct {
	ID        int     `db:"id"`
	Name      string  `db:"name"`
	Types     string  `db:"types"`
	Stats     string  `db:"stats"`
	Abilities string  `db:"abilities"`
	Moves     string  `db:"moves"`
	Height    float64 `db:"height"`
	Weight    float64 `db:"weight"`
	SpriteURL string  `db:"sprite_url"`
}

const creatureColumns = `id, name, types, stats, abilities, moves, height, weight, sprite_url`

func toRow(c *pokemon.Creature) (creatureRow, error) {
	row := creatureRow{
		ID:        c.ID,
		Name:      c.Name,
		Height:    c.Height,
		Weight:    c.Weight,
		SpriteURL: c.SpriteURL,
	}
	fields := []struct {
		dst *string
		src any
	}{
		{&row.Types, nonNil(c.Types)},
		{&row.Stats, c.Stats},
		{&row.Abilities, nonNil(c.Abilities)},
		{&row.Moves, nonNil(c.Moves)},
	}
	for _, f := range fields {
		bytes, err := json.Marshal(f.src)
		if err != nil {
			return creatureRow{}, err
		}
		*f.dst = string(bytes)
	}
	return row, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (row *creatureRow) creature() (pokemon.Creature, error) {
	c := pokemon.Creature{
		ID:        row.ID,
		Name:      row.Name,
		Height:    row.Height,
		Weight:    row.Weight,
		SpriteURL: row.SpriteURL,
	}
	fields := []struct {
		src string
		dst any
	}{
		{row.Types, &c.Types},
		{row.Stats, &c.Stats},
		{row.Abilities, &c.Abilities},
		{row.Moves, &c.Moves},
	}
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.src), f.dst); err != nil {
			return pokemon.Creature{}, fmt.Errorf("decoding stored creature %q: %w", row.Name, err)
		}
	}
	return c, nil
}

// SaveCreature inserts a creature. Creatures are immutable, so an existing row with the same
// name is left untouched.
func (s *Store) SaveCreature(ctx context.Context, c *pokemon.Creature) error {
	row, err := toRow(c)
	if err != nil {
		return fmt.Errorf("encoding creature %q: %w", c.Name, err)
	}
	_, err = s.db.NamedExecContext(ctx,
		/* sql */ `
		INSERT INTO creatures (`+creatureColumns+`)
		VALUES (:id, :name, :types, :stats, :abilities, :moves, :height, :weight, :sprite_url)
		ON CONFLICT (name) DO NOTHING
	`, row)
	if err != nil {
		return fmt.Errorf("saving creature %q: %w", c.Name, err)
	}
	return nil
}

// CreatureByName returns pokemon.ErrNotFound when no creature with that name is stored.
func (s *Store) CreatureByName(ctx context.Context, name string) (*pokemon.Creature, error) {
	var row creatureRow
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(
		/* sql */ `
		SELECT `+creatureColumns+`
		FROM creatures
		WHERE name = ?
	`), strings.ToLower(name)).StructScan(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("creature %q: %w", name, pokemon.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading creature %q: %w", name, err)
	}
	c, err := row.creature()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AllCreatures lists every stored creature in pokedex order.
func (s *Store) AllCreatures(ctx context.Context) ([]pokemon.Creature, error) {
	var rows []creatureRow
	err := s.db.SelectContext(ctx, &rows,
		/* sql */ `
		SELECT `+creatureColumns+`
		FROM creatures
		ORDER BY id, name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing creatures: %w", err)
	}
	return decodeRows(rows)
}

// SearchCreatures lists stored creatures whose name contains query.
func (s *Store) SearchCreatures(ctx context.Context, query string) ([]pokemon.Creature, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var rows []creatureRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(
		/* sql */ `
		SELECT `+creatureColumns+`
		FROM creatures
		WHERE name LIKE ? ESCAPE '\'
		ORDER BY id, name
	`), pattern)
	if err != nil {
		return nil, fmt.Errorf("searching creatures for %q: %w", query, err)
	}
	return decodeRows(rows)
}

func decodeRows(rows []creatureRow) ([]pokemon.Creature, error) {
	out := make([]pokemon.Creature, 0, len(rows))
	for i := range rows {
		c, err := rows[i].creature()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
