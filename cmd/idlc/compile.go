package main

import (
	"fmt"

	"github.com/koskimas/idlc/internal/cmd"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file.idl",
	Short: "Compile a single schema file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringP("out", "o", ".", "output directory")
	compileCmd.Flags().String("writer", "", "import path of the fixup writer package")
}

func runCompile(c *cobra.Command, args []string) error {
	outDir, err := c.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	writer, err := c.Flags().GetString("writer")
	if err != nil {
		return fmt.Errorf("failed to get writer flag: %w", err)
	}

	paths, err := cmd.Compile(args[0], outDir, writer)
	if err != nil {
		return err
	}

	logWritten(paths)
	return nil
}
