package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/orgchart/internal/config"
	"github.com/zjrosen/orgchart/internal/flags"
	"github.com/zjrosen/orgchart/internal/paths"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the orgchart config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config file",
	Long: `Write the default config file with comments. The path defaults to
.orgchart/config.yaml in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configFlagCmd = &cobra.Command{
	Use:   "flag <name> <true|false>",
	Short: "Turn a feature flag on or off in the config file",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigFlag,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configFlagCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := paths.ProjectConfigFile
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return err
}

func runConfigFlag(cmd *cobra.Command, args []string) error {
	name := args[0]
	if _, known := flags.Defaults()[name]; !known {
		return fmt.Errorf("unknown flag %q", name)
	}
	enabled, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("invalid value %q for flag %s", args[1], name)
	}

	// Without a config file this creates .orgchart/config.yaml.
	path := viper.ConfigFileUsed()
	if err := config.SaveFlag(path, name, enabled); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s=%t in %s\n", name, enabled, path)
	return err
}
