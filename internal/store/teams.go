package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nerdwave-nick/counterdex/internal/pokemon"
	"github.com/nerdwave-nick/counterdex/internal/team"
)

type teamRow struct {
	ID          string `db:"id"`
	Description string `db:"description"`
	Members     string `db:"members"`
	CreatedAt   string `db:"created_at"`
}

func (s *Store) SaveTeam(ctx context.Context, rec team.Record) error {
	members, err := json.Marshal(nonNil(rec.Members))
	if err != nil {
		return err
	}
	_, err = s.db.NamedExecContext(ctx,
		/* sql */ `
		INSERT INTO teams (id, description, members, created_at)
		VALUES (:id, :description, :members, :created_at)
	`, teamRow{
			ID:          rec.ID.String(),
			Description: rec.Description,
			Members:     string(members),
			CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	if err != nil {
		return fmt.Errorf("saving team %s: %w", rec.ID, err)
	}
	return nil
}

// TeamByID returns pokemon.ErrNotFound for unknown ids.
func (s *Store) TeamByID(ctx context.Context, id uuid.UUID) (*team.Record, error) {
	var row teamRow
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(
		/* sql */ `
		SELECT id, description, members, created_at
		FROM teams
		WHERE id = ?
	`), id.String()).StructScan(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", id, pokemon.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading team %s: %w", id, err)
	}

	rec := team.Record{Description: row.Description}
	if rec.ID, err = uuid.Parse(row.ID); err != nil {
		return nil, fmt.Errorf("decoding team id %q: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Members), &rec.Members); err != nil {
		return nil, fmt.Errorf("decoding members of team %s: %w", id, err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, row.CreatedAt); err != nil {
		return nil, fmt.Errorf("decoding creation time of team %s: %w", id, err)
	}
	return &rec, nil
}
