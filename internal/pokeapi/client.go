package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2/"
	limit_param    = "limit"
	offset_param   = "offset"
)

// ErrNotFound is returned when the PokeAPI answers 404 for a resource.
var ErrNotFound = errors.New("resource not found")

type Cache interface {
	// Set stores value under the endpoint it was fetched from.
	Set(endpoint string, value any) error
	// Get decodes the entry for endpoint into value and reports whether there was one.
	Get(endpoint string, value any) (bool, error)
}

type Client struct {
	cache   Cache
	client  *http.Client
	baseURL string
}

func NewClient(cache Cache, client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		cache:   cache,
		client:  client,
		baseURL: baseURL,
	}
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", endpoint, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func do[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	value := new(T)
	found, err := c.cache.Get(endpoint, value)
	if err != nil {
		return nil, err
	}
	if found {
		return value, nil
	}

	slog.Debug("fetching from pokeapi", slog.String("endpoint", endpoint))
	body, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	v := new(T)
	err = json.Unmarshal(body, v)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", endpoint, err)
	}

	err = c.cache.Set(endpoint, v)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Pokemon fetches a pokemon by name or pokedex id.
func (c *Client) Pokemon(ctx context.Context, nameOrID string) (*Pokemon, error) {
	return do[Pokemon](ctx, c, "pokemon/"+url.PathEscape(strings.ToLower(nameOrID)))
}

// Type fetches an elemental type including its damage relations.
func (c *Client) Type(ctx context.Context, name string) (*Type, error) {
	return do[Type](ctx, c, "type/"+url.PathEscape(strings.ToLower(name)))
}

// PokemonNames lists the names of the first limit pokemon. Only the names are pulled out of
// the (large) listing payload, the raw body is what gets cached.
func (c *Client) PokemonNames(ctx context.Context, limit int) ([]string, error) {
	endpoint := "pokemon?" + limit_param + "=" + strconv.Itoa(limit) + "&" + offset_param + "=0"
	raw, err := do[json.RawMessage](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}
	results := gjson.GetBytes(*raw, "results.#.name")
	names := make([]string, 0, len(results.Array()))
	for _, name := range results.Array() {
		names = append(names, name.String())
	}
	return names, nil
}
