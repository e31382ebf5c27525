package common

import "github.com/nerdwave-nick/counterdex/internal/pokemon"

// Creature is the wire form of a creature; types are exposed by name.
type Creature struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Types     []string       `json:"types" example:"[\"fire\",\"flying\"]"`
	Stats     map[string]int `json:"stats"`
	Abilities []string       `json:"abilities"`
	Moves     []string       `json:"moves"`
	Height    float64        `json:"height" doc:"Height in meters"`
	Weight    float64        `json:"weight" doc:"Weight in kilograms"`
	SpriteURL string         `json:"sprite_url"`
}

func FromCreature(c *pokemon.Creature) Creature {
	return Creature{
		ID:        c.ID,
		Name:      c.Name,
		Types:     pokemon.TypeNames(c.Types),
		Stats:     c.Stats,
		Abilities: c.Abilities,
		Moves:     c.Moves,
		Height:    c.Height,
		Weight:    c.Weight,
		SpriteURL: c.SpriteURL,
	}
}

func FromCreatures(cs []pokemon.Creature) []Creature {
	out := make([]Creature, 0, len(cs))
	for i := range cs {
		out = append(out, FromCreature(&cs[i]))
	}
	return out
}
