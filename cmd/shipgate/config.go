package main

import (
	"fmt"
	"os"

	"github.com/shipgate/shipgate/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd shows the effective configuration with secrets masked
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

// configSetKeyCmd stores the advisory API key in the OS keychain so it never
// has to live in a config file or shell profile
var configSetKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Store the advisory API key in the OS keychain",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetKey,
}

var configDeleteKeyCmd = &cobra.Command{
	Use:   "delete-key",
	Short: "Remove the advisory API key from the OS keychain",
	RunE:  runConfigDeleteKey,
}

func init() {
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configDeleteKeyCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	// Copy so masking never touches the live config
	masked := *cfg
	masked.API.OpenAIKey = config.MaskAPIKey(masked.API.OpenAIKey)
	masked.API.GeminiKey = config.MaskAPIKey(masked.API.GeminiKey)
	masked.GitHub.Token = config.MaskAPIKey(masked.GitHub.Token)

	data, err := yaml.Marshal(&masked)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	fmt.Fprint(os.Stdout, string(data))
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	km := config.NewKeyringManager()
	if !km.IsAvailable() {
		return fmt.Errorf("OS keychain not available on this system, set OPENAI_API_KEY instead")
	}

	if err := km.SaveAPIKey(args[0]); err != nil {
		return err
	}

	fmt.Printf("✅ API key stored in keychain (%s)\n", config.MaskAPIKey(args[0]))
	return nil
}

func runConfigDeleteKey(cmd *cobra.Command, args []string) error {
	km := config.NewKeyringManager()
	if err := km.DeleteAPIKey(); err != nil {
		return err
	}

	fmt.Println("✅ API key removed from keychain")
	return nil
}
