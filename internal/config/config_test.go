package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	opts, err := Load(viper.New(), newFlags(t), "")
	require.NoError(t, err)
	require.NoError(t, opts.Validate())

	assert.Equal(t, "info", opts.LogLevel)
	assert.Equal(t, 8080, opts.Port)
	assert.Equal(t, "sqlite", opts.StoreDriver)
	assert.Equal(t, []string{"*"}, opts.CORSOrigins)
	assert.Equal(t, 1000, opts.ListingLimit)
	assert.Equal(t, 5, opts.CounterLimit)
	assert.Equal(t, 2*time.Hour, opts.L1TTL())
	assert.Equal(t, 24*time.Hour, opts.L2TTL())
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\nl1-size: 10\nstore-driver: pgx\n"), 0o600))
	t.Setenv("COUNTERDEX_L1_SIZE", "20")

	opts, err := Load(viper.New(), newFlags(t, "--store-driver", "sqlite3"), path)
	require.NoError(t, err)
	assert.Equal(t, 9000, opts.Port, "file beats default")
	assert.Equal(t, 20, opts.L1CacheSize, "env beats file")
	assert.Equal(t, "sqlite3", opts.StoreDriver, "flag beats file")
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "counterdex.toml"), []byte("counter-limit = 8\n"), 0o600))

	opts, err := Load(viper.New(), newFlags(t), "")
	require.NoError(t, err)
	assert.Equal(t, 8, opts.CounterLimit)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), newFlags(t), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_CORSFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COUNTERDEX_CORS_ORIGINS", "https://a.example,https://b.example")
	opts, err := Load(viper.New(), newFlags(t), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, opts.CORSOrigins)
}

func validOptions() Options {
	return Options{
		LogLevel:     "info",
		LogFormat:    "text",
		DBPath:       ".badger",
		GCInterval:   600,
		L2CacheTTL:   86400,
		L1CacheTTL:   7200,
		L1CacheSize:  2000,
		Port:         8080,
		StoreDriver:  "sqlite",
		StoreDSN:     "counterdex.db",
		PokeAPIURL:   "https://pokeapi.co/api/v2/",
		HTTPTimeout:  30,
		ListingLimit: 1000,
		CounterLimit: 5,
	}
}

func TestValidate(t *testing.T) {
	opts := validOptions()
	require.NoError(t, opts.Validate())

	tests := []struct {
		name   string
		modify func(o *Options)
		want   string
	}{
		{name: "db path", modify: func(o *Options) { o.DBPath = "" }, want: "db-path"},
		{name: "l1 ttl", modify: func(o *Options) { o.L1CacheTTL = 0 }, want: "l1-ttl"},
		{name: "port", modify: func(o *Options) { o.Port = 70000 }, want: "port"},
		{name: "driver", modify: func(o *Options) { o.StoreDriver = "oracle" }, want: "store-driver"},
		{name: "timeout", modify: func(o *Options) { o.HTTPTimeout = -1 }, want: "http-timeout"},
		{name: "format", modify: func(o *Options) { o.LogFormat = "xml" }, want: "log-format"},
		{name: "counter limit", modify: func(o *Options) { o.CounterLimit = 0 }, want: "counter-limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOptions()
			tt.modify(&o)
			assert.ErrorContains(t, o.Validate(), tt.want)
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		o := validOptions()
		o.DBPath = ""
		o.Port = 0
		o.StoreDSN = ""
		err := o.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db-path")
		assert.Contains(t, err.Error(), "port")
		assert.Contains(t, err.Error(), "store-dsn")
	})
}

func TestParseLevel(t *testing.T) {
	lvl, ok := ParseLevel("DEBUG")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, ok = ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestSetupLogging_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetupLogging(&buf, "warn", "json")
	slog.Info("hidden")
	slog.Warn("shown", slog.String("k", "v"))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestSetupLogging_Text(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetupLogging(&buf, "nonsense", "text")
	slog.Debug("hidden")
	slog.Info("shown", slog.String("k", "v"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=v")
}
