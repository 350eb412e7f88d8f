package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/routecraft/routecraft/internal/config"
	"github.com/routecraft/routecraft/pkg/routecraft"
)

// Config holds the application's top-level flags.
type Config struct {
	Debug bool
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "routecraft [flags] -- <command line to dispatch>",
		Short: "Route a command line against a table of registered patterns",
		Long: `routecraft matches an argument vector against a table of route
patterns, binds positional parameters and options, and reports the
endpoint it resolved to.

With no arguments it starts an interactive REPL for trying patterns
against the built-in example table.`,
		Example: `  # Dispatch a single command line
  routecraft -- deploy prod -f --replicas 3

  # Start the REPL
  routecraft`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd.Context(), cfg, args); err != nil {
				return err
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "enable debug logging")
	rootCmd.AddCommand(completeCmd())

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, args []string) error {
	setupLogging(cfg.Debug)

	table, registry, err := buildTable()
	if err != nil {
		return errors.Wrap(err, "building endpoint table")
	}

	if len(args) == 0 {
		return runREPL(table, registry)
	}

	dispatchAndPrint(os.Stdout, table, registry, args)
	return nil
}

// setupLogging wires slog to a tint handler, the colorized text handler
// used across the example corpus, at Debug or Info level.
func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)
}

// buildTable constructs the EndpointTable and ConverterRegistry for this
// process: the built-in converters, any routecraft.toml-configured
// custom converters, and a handful of example routes exercising every
// segment shape the grammar supports.
func buildTable() (*routecraft.EndpointTable, *routecraft.ConverterRegistry, error) {
	registry := routecraft.NewConverterRegistry()

	if cwd, err := os.Getwd(); err == nil {
		if _, cfg, err := config.FindProjectConfig(cwd); err == nil && cfg != nil {
			wireCustomConverters(registry, cfg)
		}
	}

	table := routecraft.NewEndpointTable()
	for _, ep := range exampleEndpoints() {
		if _, errs := table.Register(ep.pattern, ep.handlerRef, ep.meta); len(errs) > 0 {
			return nil, nil, fmt.Errorf("registering %q: %v", ep.pattern, errs)
		}
	}
	return table, registry, nil
}

type exampleEndpoint struct {
	pattern    string
	handlerRef string
	meta       routecraft.EndpointMetadata
}

// exampleEndpoints registers a small command table covering literals,
// typed and optional parameters, boolean and value-carrying options, and
// a catch-all, so the REPL and completion engine have something to
// exercise out of the box.
func exampleEndpoints() []exampleEndpoint {
	return []exampleEndpoint{
		{"", "default", routecraft.EndpointMetadata{Description: "show usage"}},
		{"help", "help", routecraft.EndpointMetadata{Description: "show help"}},
		{"status", "status", routecraft.EndpointMetadata{Description: "show current status"}},
		{"status active", "status-active", routecraft.EndpointMetadata{Description: "show active status"}},
		{"status {id}", "status-id", routecraft.EndpointMetadata{Description: "show status by id"}},
		{
			"deploy {env} --replicas {n:int?} --force,-f|skip confirmation",
			"deploy",
			routecraft.EndpointMetadata{Description: "deploy to an environment", MessageType: routecraft.Command},
		},
		{"greet {name} -a", "greet", routecraft.EndpointMetadata{Description: "greet someone"}},
		{"test {other?} --verbose,-v", "test", routecraft.EndpointMetadata{Description: "run tests"}},
		{"exec {*args}", "exec", routecraft.EndpointMetadata{Description: "execute with raw arguments"}},
	}
}

func wireCustomConverters(registry *routecraft.ConverterRegistry, cfg *config.ProjectConfig) {
	for typeName, src := range cfg.Converters {
		src := src
		if len(src.Command) == 0 {
			continue
		}
		registry.Register(typeName, externalCommandConverter(src.Command))
	}
}
