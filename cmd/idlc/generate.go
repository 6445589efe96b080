package main

import (
	"fmt"
	"log"
	"os"

	"github.com/koskimas/idlc/internal/cmd"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile every schema listed in the project config",
	Long:  `Generate reads idlc.yaml (or idlc.toml) from the working directory and compiles the schemas it lists. Nothing is written if any schema fails to compile.`,
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("config", "c", "", "config file to use instead of idlc.yaml/idlc.toml")
}

func runGenerate(c *cobra.Command, _ []string) error {
	configPath, err := c.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	paths, err := cmd.Run(cmd.Settings{
		WorkingDir: wd,
		ConfigPath: configPath,
	})
	if err != nil {
		return err
	}

	logWritten(paths)
	return nil
}

func logWritten(paths []string) {
	for _, p := range paths {
		log.Printf("wrote %s", p)
	}
}
