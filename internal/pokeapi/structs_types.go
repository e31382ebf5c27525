package pokeapi

type Type struct {
	// The identifier for this resource.
	ID int `json:"id"`
	// The name for this resource.
	Name string `json:"name"`
	// A detail of how effective this type is toward others and vice versa.
	DamageRelations TypeRelations `json:"damage_relations"`
	// The generation this type was introduced in.
	Generation NamedAPIResource `json:"generation"`
	// The name of this resource listed in different languages.
	Names []Name `json:"names"`
}

type TypeRelations struct {
	// A list of types this type has no effect on.
	NoDamageTo []NamedAPIResource `json:"no_damage_to"`
	// A list of types this type is not very effect against.
	HalfDamageTo []NamedAPIResource `json:"half_damage_to"`
	// A list of types this type is very effect against.
	DoubleDamageTo []NamedAPIResource `json:"double_damage_to"`
	// A list of types that have no effect on this type.
	NoDamageFrom []NamedAPIResource `json:"no_damage_from"`
	// A list of types that are not very effective against this type.
	HalfDamageFrom []NamedAPIResource `json:"half_damage_from"`
	// A list of types that are very effective against this type.
	DoubleDamageFrom []NamedAPIResource `json:"double_damage_from"`
}
