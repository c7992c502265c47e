package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/anotherclibrary/acsite/internal/config"
	"github.com/anotherclibrary/acsite/pkg/logging"
)

// app holds state shared by every subcommand once the config is loaded.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "acsite",
		Short: "Another C Library landing page server",
		Long: `acsite renders the Another C Library landing page. It serves the page
over HTTP together with its Markdown export and content tree, streams the tree
to live clients, and exports everything as static files.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newBuildCmd(a),
		newTreeCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads configuration and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := logging.ParseLevel(cfg.Log.Level)
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = logging.NewSlogLogger(
		logging.WithLevel(level),
		logging.WithJSON(cfg.Log.JSON),
		logging.WithOutput(cmd.ErrOrStderr()),
	)
	logging.SetDefault(a.logger)

	if a.cfgFile != "" {
		a.logger.Debug("using config file", logging.String("file", a.cfgFile))
	}
	return nil
}
