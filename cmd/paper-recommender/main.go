// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-recommender CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-recommender/internal/graph"
	"github.com/pdiddy/paper-recommender/internal/logging"
	"github.com/pdiddy/paper-recommender/internal/recommend"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg and logger are populated by PersistentPreRunE before any subcommand runs.
var (
	cfg    types.Config
	logger zerolog.Logger
)

// rootCmd is the base command for the paper-recommender CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-recommender",
	Short: "Recommend research papers from a citation and authorship graph",
	Long: `paper-recommender ranks research papers for a user from the papers they
liked or viewed. Candidates come from four graph signals: papers cited by the
user's papers, papers by the same authors, papers in the same venues and
globally popular papers. Users without history get trending papers.

Load a corpus with seed, record interactions with like and view, and ask for
recommendations with recommend or over HTTP with serve.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug().Str("file", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-recommender.yaml or ~/.config/paper-recommender/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "graph database path (overrides graph.path)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")

	_ = viper.BindPFlag("graph.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-recommender")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-recommender"))
		}
	}

	setDefaults(viper.GetViper(), types.DefaultConfig())
	viper.SetEnvPrefix("PAPER_RECOMMENDER")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	// A missing config file is fine; defaults and environment apply.
	_ = viper.ReadInConfig()
}

// loadConfig decodes v into a Config and validates it.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return c, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// openGraph opens the configured graph store.
func openGraph() (*graph.Store, error) {
	return graph.Open(cfg.Graph)
}

// newEngine builds a recommendation engine over store.
func newEngine(store *graph.Store) *recommend.Engine {
	return recommend.NewEngine(store, cfg.Recommend, cfg.Graph.QueryTimeout, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
