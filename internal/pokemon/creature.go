package pokemon

import "slices"

// Base stat names as the PokeAPI reports them.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

// StatNames lists the stat vocabulary in display order.
var StatNames = []string{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

// Creature is one species as cached from the PokeAPI. Records are never updated once stored.
type Creature struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Types     []Type         `json:"types"`
	Stats     map[string]int `json:"stats"`
	Abilities []string       `json:"abilities"`
	Moves     []string       `json:"moves"`
	// Height in meters.
	Height float64 `json:"height"`
	// Weight in kilograms.
	Weight    float64 `json:"weight"`
	SpriteURL string  `json:"sprite_url"`
}

// TotalStats sums every base stat.
func (c *Creature) TotalStats() int {
	total := 0
	for _, v := range c.Stats {
		total += v
	}
	return total
}

// HasType reports whether t is one of the creature's types.
func (c *Creature) HasType(t Type) bool {
	return slices.Contains(c.Types, t)
}
