package main

import (
	"fmt"
	"os"

	"github.com/koskimas/idlc/internal/cmd"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] file.idl",
	Short: "Print the resolved model of a schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", string(cmd.FormatText), "output format (text|yaml|msgpack)")
}

func runInspect(c *cobra.Command, args []string) error {
	format, err := c.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	return cmd.Inspect(os.Stdout, args[0], cmd.Format(format))
}
