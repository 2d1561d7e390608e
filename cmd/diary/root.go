package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ripixel/fitglue-diary/pkg/bootstrap"
	"github.com/ripixel/fitglue-diary/pkg/diary"
	"github.com/ripixel/fitglue-diary/pkg/infrastructure/storage"
	"github.com/ripixel/fitglue-diary/pkg/taxonomy"
	"github.com/ripixel/fitglue-diary/pkg/workoutlog"
)

// app carries what every subcommand needs once the root has initialised.
type app struct {
	v          *viper.Viper
	configPath string

	cfg    *bootstrap.Config
	logger *slog.Logger
	blobs  *storage.Router
	closer io.Closer
}

// newRootCmd builds the command tree. Each call gets its own viper instance.
func newRootCmd() *cobra.Command {
	a := &app{v: bootstrap.NewViper()}

	rootCmd := &cobra.Command{
		Use:           "diary",
		Short:         "Workout diary parser and training log",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := setupFlags(rootCmd, a); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		parseCommand(a),
		logCommand(a),
		dayCommand(a),
		progressCommand(a),
		frequencyCommand(a),
		exercisesCommand(a),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.initialize(cmd)
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return a.shutdown()
	}

	return rootCmd
}

// setupFlags defines the global flags and binds them over config and env.
func setupFlags(rootCmd *cobra.Command, a *app) error {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default: ./diary.yaml or ~/.config/fitglue-diary/diary.yaml)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.String("taxonomy", "", "YAML file extending the built-in exercise taxonomy")
	flags.Bool("strict", false, "Reject duplicate exercise names in the taxonomy")
	flags.Int("year", diary.DefaultYear, "Year diary headers are read in")
	flags.String("store", "workout_log.csv", "Training log used by log, day, progress and frequency")

	bindings := map[string]string{
		"log.level":       "log-level",
		"log.file":        "log-file",
		"taxonomy.path":   "taxonomy",
		"taxonomy.strict": "strict",
		"year":            "year",
		"store.path":      "store",
	}
	for key, flag := range bindings {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}
	return nil
}

func (a *app) initialize(cmd *cobra.Command) error {
	if err := bootstrap.ReadConfigFile(a.v, a.configPath); err != nil {
		return err
	}
	cfg, err := bootstrap.LoadConfig(a.v)
	if err != nil {
		return err
	}
	logger, closer, err := bootstrap.NewLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.With("component", "cli")
	a.closer = closer
	a.blobs = storage.NewRouter()

	a.logger.Debug("Initialized", "command", cmd.Name(), "config_file", cfg.ConfigFile)
	return nil
}

func (a *app) shutdown() error {
	var errs []error
	if a.blobs != nil {
		errs = append(errs, a.blobs.Close())
	}
	if a.closer != nil {
		errs = append(errs, a.closer.Close())
	}
	return errors.Join(errs...)
}

// loadTaxonomy returns the built-in index, extended by taxonomy.path when set.
func (a *app) loadTaxonomy(ctx context.Context) (*taxonomy.Index, error) {
	opts := []taxonomy.Option{taxonomy.Strict(a.cfg.TaxonomyStrict)}

	if a.cfg.TaxonomyPath == "" {
		if !a.cfg.TaxonomyStrict {
			return taxonomy.Default(), nil
		}
		return taxonomy.Build(taxonomy.DefaultGroups, opts...)
	}

	loc, err := storage.ParseLocation(a.cfg.TaxonomyPath)
	if err != nil {
		return nil, err
	}
	data, err := a.blobs.Read(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", loc, err)
	}
	idx, err := taxonomy.Load(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy %s: %w", loc, err)
	}
	a.logger.Info("Loaded taxonomy", "path", loc.String(), "exercises", idx.Len())
	return idx, nil
}

// openStore opens the training log at store.path.
func (a *app) openStore(ctx context.Context) (*workoutlog.Store, error) {
	loc, err := storage.ParseLocation(a.cfg.StorePath)
	if err != nil {
		return nil, err
	}
	blobs, err := a.blobs.For(ctx, loc)
	if err != nil {
		return nil, err
	}
	return workoutlog.NewStore(blobs, loc.Bucket, loc.Object), nil
}
