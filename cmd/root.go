package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/nerdwave-nick/counterdex/internal/api"
	"github.com/nerdwave-nick/counterdex/internal/api/battle"
	"github.com/nerdwave-nick/counterdex/internal/api/creature"
	"github.com/nerdwave-nick/counterdex/internal/api/health"
	"github.com/nerdwave-nick/counterdex/internal/api/teams"
	"github.com/nerdwave-nick/counterdex/internal/cache"
	"github.com/nerdwave-nick/counterdex/internal/comparison"
	"github.com/nerdwave-nick/counterdex/internal/config"
	"github.com/nerdwave-nick/counterdex/internal/frontend"
	"github.com/nerdwave-nick/counterdex/internal/strategy"
	"github.com/nerdwave-nick/counterdex/internal/team"
	"github.com/nerdwave-nick/counterdex/internal/typechart"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	rootOpts   = &config.Options{}
)

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "A yaml, toml or json config file. Defaults to ./counterdex.* when present.")
	config.AddFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(fetchCmd)
}

var rootCmd = &cobra.Command{
	Use:   "counterdex",
	Short: "counterdex - type matchups, counters and team ideas for pokemon",
	Long:  "counterdex - type matchups, counters and team ideas for pokemon\n\nServes a backend api backed by a relational creature store and a cached PokeAPI client, plus a small frontend.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := config.Load(viper.New(), cmd.Flags(), configFile)
		if err != nil {
			return err
		}
		if err := opts.Validate(); err != nil {
			return fmt.Errorf("incorrect command usage:\n%w\n", err)
		}
		*rootOpts = *opts
		config.SetupLogging(os.Stderr, rootOpts.LogLevel, rootOpts.LogFormat)
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		err := rootMain(cmd.Context())
		if err != nil {
			slog.Error("server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	},
}

func stopServerWithTimeout(server *http.Server) error {
	slog.Debug("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := server.Shutdown(ctx)
	if err != nil {
		slog.Error("shutting down http server", slog.Any("error", err))
		return err
	}
	return nil
}

func rootMain(parentCtx context.Context) error {
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	b, err := openBackends(ctx, rootOpts)
	if err != nil {
		return err
	}
	defer b.Close()

	chart := typechart.NewStore(typechart.NewAPIProvider(b.client))
	advisor := strategy.NewService(
		b.creatures,
		strategy.NewCounterEngine(typechart.NewResolver(chart)),
		typechart.NewClassifier(chart),
	)

	roles, err := team.LoadRoles(rootOpts.RolesFile)
	if err != nil {
		return err
	}
	builder := team.NewBuilder(b.creatures, b.store, roles, nil)

	assets, err := frontend.GetAssetFS()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(assets)))

	router := api.MakeRouter(
		mux,
		[]api.Controller{
			health.MakeController(),
			creature.MakeController(b.creatures, comparison.NewService(b.creatures)),
			battle.MakeController(advisor, rootOpts.CounterLimit),
			teams.MakeController(builder, b.store),
		},
		rootOpts.CORSOrigins,
	)
	slog.Debug("router created, proceeding to start backend...")

	server := &http.Server{
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         fmt.Sprintf(":%d", rootOpts.Port),
		Handler:      router,
	}

	cache.RunValueLogGC(ctx, b.badger, rootOpts.GCEvery())
	slog.Info("badger db background gc started...")
	return serve(ctx, server)
}

// serve runs server until ctx is done or listening fails, and returns the listen error.
func serve(parentCtx context.Context, server *http.Server) error {
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	listenErr := make(chan error, 1)
	go func() {
		defer cancel()
		slog.Info("server ready to listen...", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				return
			}
			slog.Error("error in listen and serve", slog.Any("error", err))
			listenErr <- err
		}
	}()

	<-ctx.Done()
	if err := stopServerWithTimeout(server); err != nil {
		return err
	}
	select {
	case err := <-listenErr:
		return err
	default:
		return nil
	}
}
