// Package main provides the assessor command line: resume scoring, resume ranking,
// interview response scoring and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/assessment-engine/internal/config"
	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string

	// appConfig and logger are set by the root command before any subcommand runs.
	appConfig *config.Config
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "assessor",
	Short: "Resume and interview assessment engine",
	Long: `assessor extracts structured records from resumes, scores them against job
requirements, ranks candidates and scores interview answers for relevance,
completeness, clarity and technical accuracy.

Configuration is read from --config (default ./assessor.yaml when present), ASSESSOR_*
environment variables and a .env file.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is assessor.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
}

// initApp builds the logger and loads configuration.
func initApp(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if err := v.BindPFlag("debug", cmd.Flags().Lookup("debug")); err != nil {
		return fmt.Errorf("binding debug flag: %w", err)
	}
	if err := v.BindPFlag("json", cmd.Flags().Lookup("json")); err != nil {
		return fmt.Errorf("binding json flag: %w", err)
	}

	l, err := logging.New(v.GetBool("json"), v.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	logger = l

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg
	logger.Debug("configuration loaded",
		zap.String("config", v.ConfigFileUsed()),
		zap.String(logging.FieldBackend, cfg.Linguistic.Backend),
	)
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
