package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/storyintake/internal/model"
	"github.com/ppiankov/storyintake/internal/patterns"
)

const version = "0.3.0"

var (
	cfgFile   string
	verbose   bool
	configErr error
)

// ExitError carries a process exit code out of a command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error onto a process exit code
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storyintake",
	Short: "Storyintake - structured fields from spoken fundraising stories",
	Long: `Storyintake turns the transcript of a spoken fundraising story into
structured fields: the speaker's name, the need category, an urgency level
and the monetary goal.

Extraction is deterministic and rule-based. Every field carries a
confidence score and a tier describing how it was produced.

It also generates reproducible fuzz datasets and evaluates the engine
against golden datasets and stored baselines.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and the pattern library version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("storyintake v%s (patterns %s)\n", version, patterns.Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.storyintake/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	setDefaults(model.DefaultConfig())

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// setDefaults registers every config key so env vars can override it
func setDefaults(cfg *model.Config) {
	viper.SetDefault("urgency.strategy", cfg.Urgency.Strategy)
	viper.SetDefault("urgency.max_adjustment", cfg.Urgency.MaxAdjustment)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)
	viper.SetDefault("eval.pass_rate_floor", cfg.Eval.PassRateFloor)
	viper.SetDefault("eval.field_floors", cfg.Eval.FieldFloors)
	viper.SetDefault("logging.level", cfg.Logging.Level)
	viper.SetDefault("logging.format", cfg.Logging.Format)
	viper.SetDefault("output.pretty", cfg.Output.Pretty)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			log.Warn().Err(err).Msg("cannot find home directory")
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.storyintake")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match STORYINTAKE_*
	viper.SetEnvPrefix("STORYINTAKE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	configErr = readConfig(viper.GetViper(), cfgFile != "")
	if configErr != nil {
		log.Error().Err(configErr).Msg("config file not loaded")
	} else if verbose && viper.ConfigFileUsed() != "" {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

// readConfig reads the config file. A file that was only searched for may be
// absent; an explicit --config path must exist and parse.
func readConfig(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("read config: %w", err)
}

// loadConfig resolves the effective configuration and configures logging
func loadConfig() (*model.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	configureLogging(cfg.Logging)
	return cfg, nil
}

func configureLogging(cfg model.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
