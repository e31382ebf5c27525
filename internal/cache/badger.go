package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger"
)

// BadgerCache is the persistent L2 layer; every entry expires after TTL.
type BadgerCache struct {
	db  *badger.DB
	TTL time.Duration
}

func NewBadgerCache(db *badger.DB, ttl time.Duration) BadgerCache {
	return BadgerCache{db: db, TTL: ttl}
}

func (c *BadgerCache) putItem(key string, value []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value).WithTTL(c.TTL)
		err := txn.SetEntry(e)
		return err
	})
}

func (c *BadgerCache) Set(endpoint string, value any) error {
	slog.Debug("writing to badger cache", slog.String("endpoint", endpoint))
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.putItem(endpoint, bytes)
}

func (c *BadgerCache) getItem(key string, value any) (bool, error) {
	var bytes []byte = nil
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		bytes, err = item.ValueCopy(bytes)
		if err != nil {
			return err
		}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if bytes == nil {
		return false, nil
	}
	return true, json.Unmarshal(bytes, value)
}

func (c *BadgerCache) Get(endpoint string, value any) (bool, error) {
	found, err := c.getItem(endpoint, value)
	if err != nil {
		slog.Error("checking badger cache", slog.String("endpoint", endpoint), slog.Any("error", err))
		return false, err
	}
	if !found {
		slog.Debug("not found in badger cache", slog.String("endpoint", endpoint))
		return false, nil
	}
	slog.Debug("found in badger cache", slog.String("endpoint", endpoint))
	return true, nil
}

// OpenBadger opens (or creates) the badger db at path with logging routed through slog.
func OpenBadger(path string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(path).WithLogger(&badgerLogger{}))
}

// RunValueLogGC runs the badger value log garbage collection every interval until ctx is done.
func RunValueLogGC(ctx context.Context, db *badger.DB, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				err := db.RunValueLogGC(0.5)
				if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
					slog.Error("running the badger db gc", slog.Any("error", err))
				}
			case <-ctx.Done():
				slog.Debug("badger gc loop shut down")
				return
			}
		}
	}()
}

type badgerLogger struct{}

func (*badgerLogger) Errorf(format string, args ...interface{}) {
	slog.Error(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"), slog.String("module", "badger"))
}

func (*badgerLogger) Warningf(format string, args ...interface{}) {
	slog.Warn(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"), slog.String("module", "badger"))
}

func (*badgerLogger) Infof(format string, args ...interface{}) {
	slog.Info(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"), slog.String("module", "badger"))
}

func (*badgerLogger) Debugf(format string, args ...interface{}) {
	slog.Debug(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"), slog.String("module", "badger"))
}
