// Package config layers command line flags, environment variables and an optional config
// file into the server options.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nerdwave-nick/counterdex/internal/creatures"
	"github.com/nerdwave-nick/counterdex/internal/pokeapi"
	"github.com/nerdwave-nick/counterdex/internal/store"
	"github.com/nerdwave-nick/counterdex/internal/strategy"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "COUNTERDEX"

type Options struct {
	LogLevel     string   `mapstructure:"level"`
	LogFormat    string   `mapstructure:"log-format"`
	DBPath       string   `mapstructure:"db-path"`
	GCInterval   int      `mapstructure:"gc-interval"`
	L2CacheTTL   int      `mapstructure:"l2-ttl"`
	L1CacheTTL   int      `mapstructure:"l1-ttl"`
	L1CacheSize  int      `mapstructure:"l1-size"`
	Port         int      `mapstructure:"port"`
	StoreDriver  string   `mapstructure:"store-driver"`
	StoreDSN     string   `mapstructure:"store-dsn"`
	PokeAPIURL   string   `mapstructure:"pokeapi-url"`
	HTTPTimeout  int      `mapstructure:"http-timeout"`
	CORSOrigins  []string `mapstructure:"cors-origins"`
	ListingLimit int      `mapstructure:"listing-limit"`
	CounterLimit int      `mapstructure:"counter-limit"`
	RolesFile    string   `mapstructure:"roles-file"`
}

// AddFlags defines every option on flags with its default.
func AddFlags(flags *pflag.FlagSet) {
	flags.StringP("level", "l", "info", "The log level. Valid levels are debug, info, warn, and error.")
	flags.String("log-format", "text", "The log output format, text or json.")
	flags.String("db-path", ".badger", "The path of the badger db folder. Will be created when it doesn't exist.")
	flags.Int("gc-interval", 600, "The garbage collection interval of the badger db in seconds. Needs to be greater than 0.")
	flags.Int("l2-ttl", 86400, "The ttl of the larger l2 cache in seconds. Needs to be greater than 0.")
	flags.Int("l1-ttl", 7200, "The ttl of the smaller l1 cache in seconds. Needs to be greater than 0.")
	flags.Int("l1-size", 2000, "The size of the smaller l1 cache in number of items. Needs to be greater than 0.")
	flags.IntP("port", "p", 8080, "The port to listen on")
	flags.String("store-driver", store.DriverSQLite, "The relational store driver: sqlite, sqlite3 or pgx.")
	flags.String("store-dsn", "counterdex.db", "The data source name of the relational store.")
	flags.String("pokeapi-url", pokeapi.DefaultBaseURL, "The base url of the PokeAPI.")
	flags.Int("http-timeout", 30, "The timeout of PokeAPI requests in seconds. Needs to be greater than 0.")
	flags.StringSlice("cors-origins", []string{"*"}, "The origins allowed to call the api.")
	flags.Int("listing-limit", creatures.DefaultListingLimit, "How many PokeAPI listing entries a search scans.")
	flags.Int("counter-limit", strategy.DefaultCounterLimit, "How many counters are returned when a request does not say.")
	flags.String("roles-file", "", "A yaml file replacing the built in team role table.")
}

// Load binds flags into v, applies COUNTERDEX_ environment overrides and reads the config
// file. Without an explicit file a counterdex.{yaml,toml,json} in the working directory is
// used when present.
func Load(v *viper.Viper, flags *pflag.FlagSet, configFile string) (*Options, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", configFile, err)
		}
	} else {
		v.SetConfigName("counterdex")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	opts := &Options{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *Options) Validate() error {
	concatErr := func(err error, olderr error) error {
		if olderr != nil {
			return fmt.Errorf("%w\n%w", olderr, err)
		}
		return err
	}
	var err error
	if o.DBPath == "" {
		err = concatErr(fmt.Errorf("db-path can't be empty"), err)
	}
	if o.L2CacheTTL <= 0 {
		err = concatErr(fmt.Errorf("l2-ttl must be greater than 0"), err)
	}
	if o.L1CacheTTL <= 0 {
		err = concatErr(fmt.Errorf("l1-ttl must be greater than 0"), err)
	}
	if o.L1CacheSize <= 0 {
		err = concatErr(fmt.Errorf("l1-size must be greater than 0"), err)
	}
	if o.GCInterval <= 0 {
		err = concatErr(fmt.Errorf("gc-interval must be greater than 0"), err)
	}
	if o.Port <= 0 || o.Port > 65535 {
		err = concatErr(fmt.Errorf("port must be between 1 and 65535"), err)
	}
	if !slices.Contains(store.Drivers, o.StoreDriver) {
		err = concatErr(fmt.Errorf("store-driver must be one of %s, got %q", strings.Join(store.Drivers, ", "), o.StoreDriver), err)
	}
	if o.StoreDSN == "" {
		err = concatErr(fmt.Errorf("store-dsn can't be empty"), err)
	}
	if o.PokeAPIURL == "" {
		err = concatErr(fmt.Errorf("pokeapi-url can't be empty"), err)
	}
	if o.HTTPTimeout <= 0 {
		err = concatErr(fmt.Errorf("http-timeout must be greater than 0"), err)
	}
	if o.ListingLimit <= 0 {
		err = concatErr(fmt.Errorf("listing-limit must be greater than 0"), err)
	}
	if o.CounterLimit <= 0 {
		err = concatErr(fmt.Errorf("counter-limit must be greater than 0"), err)
	}
	switch o.LogFormat {
	case "text", "json":
	default:
		err = concatErr(fmt.Errorf("log-format must be text or json, got %q", o.LogFormat), err)
	}
	return err
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (o *Options) GCEvery() time.Duration        { return seconds(o.GCInterval) }
func (o *Options) L1TTL() time.Duration          { return seconds(o.L1CacheTTL) }
func (o *Options) L2TTL() time.Duration          { return seconds(o.L2CacheTTL) }
func (o *Options) RequestTimeout() time.Duration { return seconds(o.HTTPTimeout) }

func (o *Options) StoreConfig() store.Config {
	return store.Config{Driver: o.StoreDriver, DSN: o.StoreDSN}
}
