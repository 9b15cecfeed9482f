package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deltalint/deltalint/internal/config"
)

var flagConfigOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Init(flagConfigOutput); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return
		}
		fmt.Fprintf(os.Stdout, "Created configuration file at %s\n", flagConfigOutput)
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return
		}
		if err := config.Validate(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return
		}
		fmt.Fprintln(os.Stdout, "Configuration is valid")
	},
}

func init() {
	configInitCmd.Flags().StringVarP(&flagConfigOutput, "output", "o", "deltalint.toml", "Output file path")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
}
