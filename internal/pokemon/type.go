package pokemon

import (
	"fmt"
	"strings"
)

//go:generate go run github.com/dmarkham/enumer -type=Type -trimprefix=Type -transform=lower -json -text -output=type_enumer.go

// Type is one of the 18 elemental categories a creature can have.
type Type int

const (
	TypeNormal Type = iota
	TypeFighting
	TypeFlying
	TypePoison
	TypeGround
	TypeRock
	TypeBug
	TypeGhost
	TypeSteel
	TypeFire
	TypeWater
	TypeGrass
	TypeElectric
	TypePsychic
	TypeIce
	TypeDragon
	TypeDark
	TypeFairy
)

// ParseType resolves a type name as the PokeAPI spells it.
func ParseType(name string) (Type, error) {
	t, err := TypeString(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return 0, fmt.Errorf("unknown type %q: %w", name, err)
	}
	return t, nil
}

// ParseTypes resolves every name, failing on the first unknown one.
func ParseTypes(names []string) ([]Type, error) {
	types := make([]Type, 0, len(names))
	for _, name := range names {
		t, err := ParseType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// TypeNames returns the names of types in the given order.
func TypeNames(types []Type) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return names
}

// UniqueTypes drops repeated types while keeping the first occurrence order.
func UniqueTypes(types []Type) []Type {
	seen := make(map[Type]struct{}, len(types))
	out := make([]Type, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
