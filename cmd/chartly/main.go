// Package main provides the CLI entry point for chartly.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/chartly-go/pkg/chartly/logging"
	"github.com/ukaji3/chartly-go/pkg/chartly/settings"
)

const onboardingText = `Welcome to Chartly.

  1. Pick a chart kind: chartly kinds
  2. Feed it rows as CSV: chartly render --kind bar --input data.csv
  3. Save the chart to your Pictures folder with --save, or serve it: chartly serve
`

// app holds state shared by the subcommands.
type app struct {
	configFile string
	conf       settings.Config
	logger     zerolog.Logger
	closeLog   func()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{closeLog: func() {}}

	rootCmd := &cobra.Command{
		Use:   "chartly",
		Short: "Turn tabular rows into charts",
		Long: `chartly reads rows of labels and numbers, validates them for one of eleven
chart kinds and renders PNG images, interactive HTML pages, JSON, CSV or xlsx workbooks.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.closeLog() },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "path to a config file (toml, yaml or json)")
	settings.DefineFlags(rootCmd)

	rootCmd.AddCommand(
		a.renderCmd(),
		a.convertCmd(),
		a.sampleCmd(),
		a.xlsxCmd(),
		a.kindsCmd(),
		a.serveCmd(),
		a.configCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	dotEnvUsed, err := settings.LoadDotEnv(".env")
	if err != nil {
		return err
	}
	conf, meta, err := settings.GetConfig(cmd, a.configFile)
	if err != nil {
		return err
	}
	a.conf = conf

	closeLog, err := logging.Setup(logging.Config{Level: conf.Log.Level, File: conf.Log.File})
	if err != nil {
		return fmt.Errorf("error setting up logging: %w", err)
	}
	a.closeLog = closeLog
	a.logger = log.Logger

	if meta.FileNotFound {
		a.logger.Warn().Str("path", a.configFile).Msg("config file not found, using defaults")
	}
	if dotEnvUsed {
		a.logger.Debug().Msg("loaded .env")
	}
	return a.onboard(cmd.ErrOrStderr())
}

// onboard prints the welcome text on the first run.
func (a *app) onboard(w io.Writer) error {
	store, err := settings.OpenStore(a.conf.SettingsFile)
	if err != nil {
		a.logger.Warn().Err(err).Msg("cannot read settings")
		return nil
	}
	if store.OnboardingShown() {
		return nil
	}
	if _, err := io.WriteString(w, onboardingText); err != nil {
		return err
	}
	if err := store.SetOnboardingShown(true); err != nil {
		a.logger.Warn().Err(err).Str("path", store.Path()).Msg("cannot save settings")
	}
	return nil
}
