package cmd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgraph-io/badger"
	"github.com/nerdwave-nick/counterdex/internal/cache"
	"github.com/nerdwave-nick/counterdex/internal/config"
	"github.com/nerdwave-nick/counterdex/internal/creatures"
	"github.com/nerdwave-nick/counterdex/internal/pokeapi"
	"github.com/nerdwave-nick/counterdex/internal/store"
)

// backends are the storage and upstream pieces shared by every command.
type backends struct {
	badger    *badger.DB
	l1        *cache.OtterCache
	store     *store.Store
	client    *pokeapi.Client
	creatures *creatures.Provider
}

func openBackends(ctx context.Context, opts *config.Options) (*backends, error) {
	b := &backends{}
	var err error

	// persistent badger db as l2 response cache
	b.badger, err = cache.OpenBadger(opts.DBPath)
	if err != nil {
		return nil, err
	}
	l2 := cache.NewBadgerCache(b.badger, opts.L2TTL())

	// in memory otter cache
	b.l1, err = cache.BuildOtterCache(opts.L1CacheSize, opts.L1TTL())
	if err != nil {
		b.Close()
		return nil, err
	}

	b.store, err = store.Open(ctx, opts.StoreConfig())
	if err != nil {
		b.Close()
		return nil, err
	}

	// multi layer cache with preference for the in memory cache
	multiCache := cache.NewMultiLayerCache(b.l1, &l2)
	b.client = pokeapi.NewClient(multiCache, &http.Client{Timeout: opts.RequestTimeout()}, opts.PokeAPIURL)
	b.creatures = creatures.NewProvider(b.store, b.client, opts.ListingLimit)
	return b, nil
}

func (b *backends) Close() {
	if b.store != nil {
		if err := b.store.Close(); err != nil {
			slog.Error("closing relational store", slog.Any("error", err))
		}
	}
	if b.l1 != nil {
		b.l1.Close()
	}
	if b.badger != nil {
		if err := b.badger.Close(); err != nil {
			slog.Error("shutting down db", slog.Any("error", err))
		}
	}
}
