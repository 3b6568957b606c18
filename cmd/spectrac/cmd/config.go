package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ChrisMcGann/SpectraC/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the SpectraC configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Save(cfg, cfgFile)
		if err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
