package team

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/nerdwave-nick/counterdex/internal/pokemon"
	"gopkg.in/yaml.v3"
)

// DefaultRoleName is used when a description names no role.
const DefaultRoleName = "balanced"

//go:embed roles.yaml
var defaultRoles []byte

// Role is a team slot archetype scored by the sum of some base stats.
type Role struct {
	Name  string   `yaml:"name"`
	Stats []string `yaml:"stats"`
}

type roleFile struct {
	Roles []Role `yaml:"roles"`
}

// DefaultRoles returns the built-in role table.
func DefaultRoles() []Role {
	roles, err := ParseRoles(defaultRoles)
	if err != nil {
		panic(fmt.Sprintf("embedded roles.yaml is invalid: %v", err))
	}
	return roles
}

// LoadRoles reads a role table from path, or the built-in one when path is empty.
func LoadRoles(path string) ([]Role, error) {
	if path == "" {
		return DefaultRoles(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roles file: %w", err)
	}
	roles, err := ParseRoles(data)
	if err != nil {
		return nil, fmt.Errorf("parsing roles file %s: %w", path, err)
	}
	return roles, nil
}

func ParseRoles(data []byte) ([]Role, error) {
	var f roleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Roles) == 0 {
		return nil, errors.New("no roles defined")
	}
	seen := make(map[string]bool, len(f.Roles))
	for i, r := range f.Roles {
		name := strings.ToLower(strings.TrimSpace(r.Name))
		if name == "" {
			return nil, fmt.Errorf("role %d has no name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("role %q defined twice", name)
		}
		seen[name] = true
		if len(r.Stats) == 0 {
			return nil, fmt.Errorf("role %q has no stats", name)
		}
		for _, s := range r.Stats {
			if !slices.Contains(pokemon.StatNames, s) {
				return nil, fmt.Errorf("role %q uses unknown stat %q", name, s)
			}
		}
		f.Roles[i].Name = name
	}
	return f.Roles, nil
}

// Requirements is what a free text description asks for.
type Requirements struct {
	Roles []Role
	Types []pokemon.Type
}

// ParseRequirements picks roles and types whose names occur in the description. Matching is
// plain substring containment.
func ParseRequirements(description string, roles []Role) Requirements {
	description = strings.ToLower(description)
	var req Requirements
	for _, r := range roles {
		if strings.Contains(description, r.Name) {
			req.Roles = append(req.Roles, r)
		}
	}
	for _, t := range pokemon.TypeValues() {
		if strings.Contains(description, t.String()) {
			req.Types = append(req.Types, t)
		}
	}
	if len(req.Roles) == 0 {
		req.Roles = []Role{fallbackRole(roles)}
	}
	return req
}

func fallbackRole(roles []Role) Role {
	for _, r := range roles {
		if r.Name == DefaultRoleName {
			return r
		}
	}
	return roles[0]
}

func (r Role) score(c *pokemon.Creature) int {
	score := 0
	for _, s := range r.Stats {
		score += c.Stats[s]
	}
	return score
}
