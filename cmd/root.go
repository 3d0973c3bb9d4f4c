package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/orgchart/internal/config"
	"github.com/zjrosen/orgchart/internal/log"
	"github.com/zjrosen/orgchart/internal/paths"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	// configErr is reported once logging is up.
	configErr  error
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "orgchart",
	Short: "Track who reports to whom",
	Long: `orgchart keeps an in-memory org chart: employees with unique ids, each
reporting to at most one manager. Use the shell to add, move, remove and count
employees, or run the demo to see a scripted session.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: teardownLogging,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .orgchart/config.yaml, then ~/.config/orgchart/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging (also ORGCHART_DEBUG=1)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("log.enabled", defaults.Log.Enabled)
	viper.SetDefault("log.path", defaults.Log.Path)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("shell.prompt", defaults.Shell.Prompt)
	viper.SetDefault("shell.color", defaults.Shell.Color)
	viper.SetDefault("cache.count_ttl", defaults.Cache.CountTTL)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	// Per key, so a partial flags section keeps the other defaults.
	for name, enabled := range defaults.Flags {
		viper.SetDefault("flags."+name, enabled)
	}

	// Config lookup order:
	// 1. --config (a file, a project directory, or its .orgchart directory)
	// 2. .orgchart/config.yaml (current directory)
	// 3. ~/.config/orgchart/config.yaml (user config)
	path, _ := paths.ResolveConfigFile(cfgFile)
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	// A missing config is fine: defaults apply. `orgchart config init` writes one.
	configErr = nil
	if err := viper.ReadInConfig(); err != nil && !isConfigNotFound(err) {
		configErr = fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		configErr = errors.Join(configErr, fmt.Errorf("decoding config %s: %w", path, err))
	}

	// A null flags section shadows the nested defaults in viper.
	if cfg.Flags == nil {
		cfg.Flags = make(map[string]bool, len(defaults.Flags))
	}
	for name, enabled := range defaults.Flags {
		if _, ok := cfg.Flags[name]; !ok {
			cfg.Flags[name] = enabled
		}
	}
}

func isConfigNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// setupLogging opens the log file when --debug, ORGCHART_DEBUG or log.enabled
// asks for it. A config file that could not be loaded is reported here.
func setupLogging(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v (using defaults)\n", configErr)
	}

	debug := debugFlag || log.DebugFromEnv()
	if !debug && !cfg.Log.Enabled {
		return nil
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log configuration: %w", err)
	}
	if debug {
		level = log.LevelDebug
	}

	path := cfg.Log.Path
	if path == "" {
		path = config.DefaultLogPath
	}
	cleanup, err := log.Init(path)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	log.SetMinLevel(level)
	logCleanup = cleanup

	log.Info(log.CatConfig, "orgchart starting", "version", version, "config", viper.ConfigFileUsed(), "debug", debug)
	if configErr != nil {
		log.Warn(log.CatConfig, "config not loaded, using defaults", "error", configErr)
	}
	return nil
}

func teardownLogging(_ *cobra.Command, _ []string) error {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	// PersistentPostRunE does not run when the command fails.
	_ = teardownLogging(nil, nil)
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
