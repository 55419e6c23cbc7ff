package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/roomfit/internal/engine"
	"github.com/piwi3910/roomfit/internal/importer"
	"github.com/piwi3910/roomfit/internal/model"
	"github.com/piwi3910/roomfit/internal/project"
)

// recentProjectLimit is how many saved projects the config remembers.
const recentProjectLimit = 10

// app holds state shared by all subcommands.
type app struct {
	log        *logrus.Logger
	out        io.Writer
	configPath string
	config     model.AppConfig
	verbose    bool
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}

	root := &cobra.Command{
		Use:          "roomfit",
		Short:        "Find the largest rectangle that fits inside a room boundary",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", project.DefaultConfigPath(), "application config file")

	root.AddCommand(a.fitCmd())
	root.AddCommand(a.compareCmd())
	root.AddCommand(a.insideCmd())
	root.AddCommand(a.showCmd())
	root.AddCommand(a.presetsCmd())
	root.AddCommand(a.libraryCmd())
	root.AddCommand(a.configCmd())
	return root
}

// setup configures logging and loads the app config before any subcommand runs.
func (a *app) setup(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})

	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", a.configPath, err)
	}
	a.config = cfg

	level := logrus.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			a.log.WithField("log_level", cfg.LogLevel).Warn("unknown log level in config, using info")
		} else {
			level = parsed
		}
	}
	if a.verbose {
		level = logrus.DebugLevel
	}
	a.log.SetLevel(level)
	return nil
}

// libraryPath keeps the boundary library next to the config file.
func (a *app) libraryPath() string {
	return filepath.Join(filepath.Dir(a.configPath), filepath.Base(project.DefaultLibraryPath()))
}

func (a *app) saveConfig() error {
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		return fmt.Errorf("saving config %s: %w", a.configPath, err)
	}
	return nil
}

// loadBoundary resolves a boundary argument. An existing file is imported;
// otherwise the name is looked up among the built-in presets and then the
// saved boundary library. Saved boundaries also return the settings they were
// stored with; other sources return nil.
func (a *app) loadBoundary(arg string) (model.Boundary, *model.FitSettings, error) {
	if _, err := os.Stat(arg); err == nil {
		result := importer.ImportFile(arg)
		for _, w := range result.Warnings {
			a.log.WithField("file", arg).Info(w)
		}
		if len(result.Errors) > 0 {
			return model.Boundary{}, nil, fmt.Errorf("importing %s: %s", arg, strings.Join(result.Errors, "; "))
		}
		return result.Boundary, nil, nil
	}

	if preset, ok := model.GetPreset(arg); ok {
		return model.NewBoundary(preset.Name, preset.Outline), nil, nil
	}

	lib, err := project.LoadLibrary(a.libraryPath())
	if err != nil {
		return model.Boundary{}, nil, fmt.Errorf("loading boundary library: %w", err)
	}
	if saved := lib.FindByName(arg); saved != nil {
		settings := saved.Settings
		return saved.Boundary, &settings, nil
	}

	return model.Boundary{}, nil, fmt.Errorf("%s: no such file, preset or saved boundary", arg)
}

// searchOptions are the flags shared by every command that runs the fitter.
type searchOptions struct {
	seed         int64
	parallel     bool
	settingsPath string
}

func addSearchFlags(cmd *cobra.Command, opts *searchOptions) {
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for the starting points (default from config)")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", false, "search orientations concurrently")
	cmd.Flags().StringVar(&opts.settingsPath, "settings", "", "TOML file with fit settings")
}

// resolveSearch layers the search settings: built-in defaults, config
// defaults, the settings saved with a library boundary, the settings file,
// then explicitly set flags.
func (a *app) resolveSearch(cmd *cobra.Command, opts searchOptions, saved *model.FitSettings) (int64, model.FitSettings, error) {
	settings := model.DefaultFitSettings()
	a.config.ApplyToSettings(&settings)
	if saved != nil {
		settings = saved.Normalize()
	}

	if opts.settingsPath != "" {
		loaded, err := project.LoadSettingsOnto(opts.settingsPath, settings)
		if err != nil {
			return 0, model.FitSettings{}, err
		}
		settings = loaded
	}
	if cmd.Flags().Changed("parallel") {
		settings.Parallel = opts.parallel
	}

	seed := a.config.DefaultSeed
	if cmd.Flags().Changed("seed") {
		seed = opts.seed
	}
	return seed, settings.Normalize(), nil
}

// fit runs the fitter on a boundary with the app logger.
func (a *app) fit(ctx context.Context, b model.Boundary, seed int64, settings model.FitSettings) (*engine.InscribedRectangle, error) {
	f := engine.New(settings)
	f.Log = a.log.WithField("boundary", b.Name)

	start := time.Now()
	rect, err := f.FitContext(ctx, b.Outline.Edges(), seed)
	if err != nil {
		return nil, fmt.Errorf("fitting %s: %w", b.Name, err)
	}
	a.log.WithFields(logrus.Fields{
		"boundary": b.Name,
		"seed":     seed,
		"parallel": settings.Parallel,
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Debug("search finished")
	return rect, nil
}
