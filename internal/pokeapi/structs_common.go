package pokeapi

type NamedAPIResource struct {
	// The name of the referenced resource.
	Name string `json:"name"`
	// The URL of the referenced resource.
	URL string `json:"url"`
}

type Name struct {
	// The localized name for an API resource in a specific language.
	Name string `json:"name"`
	// The language this name is in.
	Language NamedAPIResource `json:"language"`
}

type NamedAPIResourceList struct {
	// The total number of resources available from this API.
	Count int `json:"count"`
	// The URL for the next page in the list.
	Next *string `json:"next"`
	// The URL for the previous page in the list.
	Previous *string `json:"previous"`
	// A list of named API resources.
	Results []NamedAPIResource `json:"results"`
}
