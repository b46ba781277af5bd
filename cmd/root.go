package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/trjordan/glance/internal/api"
	"github.com/trjordan/glance/internal/db"
	"github.com/trjordan/glance/internal/flags"
	"github.com/trjordan/glance/internal/meta"
	"github.com/trjordan/glance/pkg/flagset"
	"github.com/trjordan/glance/pkg/metrics"
)

// rootCmd is the Glance root command.
// Flag parsing is disabled on it because the extensible registry owns
// the command line: unknown flags must survive as leftovers instead of
// failing cobra's parser.
var rootCmd = &cobra.Command{
	Use:                "glance",
	Short:              "Image metadata service with a late-binding flag registry",
	Version:            meta.Version,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), flagset.CommandLine, os.Args)
	},
}

// Execute runs the root command and exits on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

// configureFlags installs the system flags and module hooks on the
// registry. The database flags are not registered here; the db module
// hook supplies them on first Declare, exercising late registration.
func configureFlags(registry *flagset.FlagSet) {
	flags.SetDefaults()
	flags.RegisterSystemFlags(registry)
	registry.RegisterModule(db.ModuleName, db.RegisterFlags)
}

// run parses the command line, configures logging, and serves the
// image API until the context is canceled.
func run(ctx context.Context, registry *flagset.FlagSet, argv []string) error {
	configureFlags(registry)

	leftover, err := registry.Parse(argv)
	if err != nil {
		return fmt.Errorf("failed to parse command line: %w", err)
	}

	if err := flags.SetupLogging(registry); err != nil {
		return err
	}

	if len(leftover) > 1 {
		logrus.WithField("args", leftover[1:]).Debug("Ignoring unrecognized arguments")
	}

	// The db module defines its flags only now, after the parse; the
	// registry replays the stored command line for them.
	if err := registry.Declare("sql-connection", db.ModuleName); err != nil {
		return err
	}

	sqlConnection, err := registry.GetString("sql-connection")
	if err != nil {
		return err
	}

	logrus.WithField("sql_connection", sqlConnection).Debug("Configured database")

	store := db.NewStore()

	server, err := buildServer(registry, store)
	if err != nil {
		return err
	}

	logrus.Info("Glance ", meta.Version)

	return server.Start(ctx, true)
}

// buildServer assembles the HTTP API server from the registry's
// http-api-* flags.
func buildServer(registry *flagset.FlagSet, store *db.Store) (*api.Server, error) {
	host, err := registry.GetString("http-api-host")
	if err != nil {
		return nil, err
	}

	port, err := registry.GetString("http-api-port")
	if err != nil {
		return nil, err
	}

	token, err := registry.GetString("http-api-token")
	if err != nil {
		return nil, err
	}

	exposeMetrics, err := registry.GetBool("http-api-metrics")
	if err != nil {
		return nil, err
	}

	promRegistry := prometheus.NewRegistry()

	recorder, err := metrics.NewWithRegistry(promRegistry)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	server := api.NewServer(token, api.Addr(host, port))

	exposedRegistry := promRegistry
	if !exposeMetrics {
		exposedRegistry = nil
	}

	api.NewHandler(store, recorder).RegisterRoutes(server, exposedRegistry)

	return server, nil
}
