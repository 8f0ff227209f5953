package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plumeworks/plume"
	"github.com/plumeworks/plume/api"
)

// Global flag values.
var (
	flagConfigFile string
	flagAPIURL     string
	flagToken      string
	flagOrg        string
	flagWorkspace  string
)

// client and cfg are built by PersistentPreRunE so every subcommand can
// use them.
var (
	client *api.Client
	cfg    *plume.Config
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Console is an operator CLI for a plume CMS backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		if logger, err := buildLogger(cfg.Logging); err == nil {
			zap.ReplaceGlobals(logger)
		}
		client = api.NewClient(cfg.API)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: $HOME/.plume/console.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "CMS API base URL")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "bearer token")
	rootCmd.PersistentFlags().StringVarP(&flagOrg, "org", "o", "", "organization slug")
	rootCmd.PersistentFlags().StringVarP(&flagWorkspace, "workspace", "w", "", "workspace slug")

	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(activityCmd)
}

// loadConfig resolves settings with flag > PLUME_* env > config file >
// default precedence and validates the result.
func loadConfig() (*plume.Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PLUME")
	v.AutomaticEnv()

	if flagConfigFile != "" {
		v.SetConfigFile(flagConfigFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home + "/.plume")
		}
		v.SetConfigName("console")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && flagConfigFile != "" {
			return nil, err
		}
	}

	cfg := plume.DefaultConfig()
	if s := v.GetString("api_url"); s != "" {
		cfg.API.BaseURL = s
	}
	if s := v.GetString("token"); s != "" {
		cfg.API.Token = s
	}
	if d := v.GetDuration("timeout"); d > 0 {
		cfg.API.Timeout = d
	}
	if s := v.GetString("log_level"); s != "" {
		cfg.Logging.Level = s
	}
	if s := v.GetString("log_format"); s != "" {
		cfg.Logging.Format = s
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}
	if flagToken != "" {
		cfg.API.Token = flagToken
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildLogger constructs the process logger from logging configuration:
// level and encoding, production settings otherwise.
func buildLogger(lc plume.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Level != "" {
		level, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	if lc.Format == "console" {
		zc.Encoding = "console"
	}
	return zc.Build()
}

// requireScope checks the flags that address a workspace.
func requireScope() error {
	if flagOrg == "" {
		return plume.NewValidationError("org", "--org is required")
	}
	if flagWorkspace == "" {
		return plume.NewValidationError("workspace", "--workspace is required")
	}
	return nil
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
