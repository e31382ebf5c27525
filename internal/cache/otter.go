package cache

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/maypok86/otter"
)

// OtterCache is the in-memory L1 layer. Values are stored json encoded so callers never share
// decoded structures.
type OtterCache struct {
	cache *otter.Cache[string, []byte]
}

func NewOtterCache(c *otter.Cache[string, []byte]) *OtterCache {
	return &OtterCache{cache: c}
}

// BuildOtterCache creates a size bounded otter cache with a ttl per entry.
func BuildOtterCache(size int, ttl time.Duration) (*OtterCache, error) {
	oc, err := otter.MustBuilder[string, []byte](size).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, err
	}
	return NewOtterCache(&oc), nil
}

func (c *OtterCache) Set(endpoint string, value any) error {
	slog.Debug("writing to otter cache", slog.String("endpoint", endpoint))
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_ = c.cache.Set(endpoint, bytes)
	return nil
}

func (c *OtterCache) Get(endpoint string, value any) (bool, error) {
	bytes, found := c.cache.Get(endpoint)
	if !found {
		slog.Debug("not found in otter cache", slog.String("endpoint", endpoint))
		return false, nil
	}
	err := json.Unmarshal(bytes, value)
	if err != nil {
		slog.Debug("error unmarshalling from otter cache", slog.String("endpoint", endpoint))
		return true, err
	}
	slog.Debug("found in otter cache", slog.String("endpoint", endpoint))
	return true, nil
}

func (c *OtterCache) Close() {
	c.cache.Close()
}
