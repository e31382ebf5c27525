// Package teams serves team generation and lookup.
package teams

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/nerdwave-nick/counterdex/internal/api/common"
	"github.com/nerdwave-nick/counterdex/internal/pokemon"
	"github.com/nerdwave-nick/counterdex/internal/team"
)

// maxMemberAbilities caps the abilities listed per member.
const maxMemberAbilities = 3

type Generator interface {
	Generate(ctx context.Context, description string) (*team.Team, error)
}

type Records interface {
	TeamByID(ctx context.Context, id uuid.UUID) (*team.Record, error)
}

type GenerateInput struct {
	Body struct {
		Description string `json:"description" minLength:"1" maxLength:"500" example:"a fast attacker with fire and water types"`
	}
}

type TeamInput struct {
	ID string `path:"id" format:"uuid"`
}

type Member struct {
	Name      string         `json:"name"`
	Types     []string       `json:"types"`
	Stats     map[string]int `json:"stats"`
	Abilities []string       `json:"abilities"`
	SpriteURL string         `json:"sprite_url"`
}

type TeamBody struct {
	Body struct {
		ID          string    `json:"id"`
		Description string    `json:"description"`
		Members     []Member  `json:"members"`
		CreatedAt   time.Time `json:"created_at"`
	}
}

type RecordBody struct {
	Body struct {
		ID          string    `json:"id"`
		Description string    `json:"description"`
		Members     []string  `json:"members"`
		CreatedAt   time.Time `json:"created_at"`
	}
}

type Controller struct {
	generator Generator
	records   Records
}

func (c *Controller) RegisterRoutes(rctx common.RouteCreationContext) {
	tags := []string{"Teams"}
	common.AddHumaRoute(rctx, c.Generate, huma.Operation{
		Method:  http.MethodPost,
		Path:    "/api/team/generate",
		Summary: "Generate a team from a description",
		Tags:    tags,
	})
	common.AddHumaRoute(rctx, c.Get, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/api/team/{id}",
		Summary: "Get a generated team",
		Tags:    tags,
	})
}

func (c *Controller) Generate(ctx context.Context, in *GenerateInput) (*TeamBody, huma.StatusError) {
	t, err := c.generator.Generate(ctx, in.Body.Description)
	if err != nil {
		return nil, common.StatusFromError(err)
	}
	out := &TeamBody{}
	out.Body.ID = t.ID.String()
	out.Body.Description = t.Description
	out.Body.CreatedAt = t.CreatedAt
	out.Body.Members = make([]Member, 0, len(t.Members))
	for i := range t.Members {
		out.Body.Members = append(out.Body.Members, member(&t.Members[i]))
	}
	return out, nil
}

func (c *Controller) Get(ctx context.Context, in *TeamInput) (*RecordBody, huma.StatusError) {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid team id", err)
	}
	rec, err := c.records.TeamByID(ctx, id)
	if err != nil {
		return nil, common.StatusFromError(err)
	}
	out := &RecordBody{}
	out.Body.ID = rec.ID.String()
	out.Body.Description = rec.Description
	out.Body.Members = rec.Members
	out.Body.CreatedAt = rec.CreatedAt
	return out, nil
}

func member(c *pokemon.Creature) Member {
	abilities := c.Abilities
	if len(abilities) > maxMemberAbilities {
		abilities = abilities[:maxMemberAbilities]
	}
	return Member{
		Name:      c.Name,
		Types:     pokemon.TypeNames(c.Types),
		Stats:     c.Stats,
		Abilities: abilities,
		SpriteURL: c.SpriteURL,
	}
}

func MakeController(generator Generator, records Records) *Controller {
	return &Controller{generator: generator, records: records}
}
