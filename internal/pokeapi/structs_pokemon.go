package pokeapi

type Pokemon struct {
	// The identifier for this resource.
	ID int `json:"id"`
	// The name for this resource.
	Name string `json:"name"`
	// The base experience gained for defeating this Pokémon.
	BaseExperience int `json:"base_experience"`
	// The height of this Pokémon in decimetres.
	Height int `json:"height"`
	// Order for sorting. Almost national order, except families are grouped together.
	Order int `json:"order"`
	// The weight of this Pokémon in hectograms.
	Weight int `json:"weight"`
	// A list of abilities this Pokémon could potentially have.
	Abilities []PokemonAbility `json:"abilities"`
	// A list of moves along with learn methods and level details pertaining to specific version groups.
	Moves []PokemonMove `json:"moves"`
	// A set of sprites used to depict this Pokémon in the game.
	Sprites PokemonSprites `json:"sprites"`
	// A list of base stat values for this Pokémon.
	Stats []PokemonStat `json:"stats"`
	// A list of details showing types this Pokémon has.
	Types []PokemonType `json:"types"`
}

type PokemonAbility struct {
	// Whether or not this is a hidden ability.
	IsHidden bool `json:"is_hidden"`
	// The slot this ability occupies in this Pokémon species.
	Slot int `json:"slot"`
	// The ability the Pokémon may have.
	Ability NamedAPIResource `json:"ability"`
}

type PokemonMove struct {
	// The move the Pokémon can learn.
	Move NamedAPIResource `json:"move"`
}

type PokemonSprites struct {
	// The default depiction of this Pokémon from the front in battle.
	FrontDefault *string `json:"front_default"`
	// The shiny depiction of this Pokémon from the front in battle.
	FrontShiny *string `json:"front_shiny"`
	// The default depiction of this Pokémon from the back in battle.
	BackDefault *string `json:"back_default"`
	// The shiny depiction of this Pokémon from the back in battle.
	BackShiny *string `json:"back_shiny"`
}

type PokemonStat struct {
	// The stat the Pokémon has.
	Stat NamedAPIResource `json:"stat"`
	// The effort points (EV) the Pokémon has in the stat.
	Effort int `json:"effort"`
	// The base value of the stat.
	BaseStat int `json:"base_stat"`
}

type PokemonType struct {
	// The order the Pokémon's types are listed in.
	Slot int `json:"slot"`
	// The type the referenced Pokémon has.
	Type NamedAPIResource `json:"type"`
}
