package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/citehunt/citehunt/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage citehunt configuration",
	Long: `Manage citehunt configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CITEHUNT_*)
3. Config file (~/.citehunt/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Println(string(yamlData))

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a default configuration file",
	Long:  `Create a default configuration file at ~/.citehunt/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := defaultConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'citehunt config show' to view it, or delete it first to recreate", configPath)
		}

		if err := writeConfigFile(configPath, model.DefaultConfig()); err != nil {
			return err
		}

		fmt.Printf("Created %s\n", configPath)
		fmt.Println("Set search.api_key and run 'citehunt prepare <dump>' before the first scan.")
		return nil
	},
}

// writeConfigFile persists a configuration as commented YAML.
func writeConfigFile(path string, cfg *model.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	header := `# Citehunt configuration file
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (CITEHUNT_*)
#   3. This config file
#   4. Built-in defaults

`
	if err := os.WriteFile(path, append([]byte(header), yamlData...), 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
