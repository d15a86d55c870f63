package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"balloonsim/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long: `Writes the default configuration to path (default:
~/.config/balloonsim/config.yaml). With --preset the built-in hero balloons
are also written to an editable preset file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("preset", "", "also write the built-in hero preset to this file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := userConfigPath()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

	preset, _ := cmd.Flags().GetString("preset")
	if preset == "" {
		return nil
	}
	if err := config.WriteHeroPreset(preset); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (set cluster.preset to use it)\n", preset)
	return nil
}

func userConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "balloonsim", "config.yaml"), nil
}
