package main

import (
	"os"

	"github.com/koskimas/idlc/internal/cmd"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize file.idl",
	Short: "Print the tokens of a schema file with their line numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return cmd.Tokenize(os.Stdout, args[0])
	},
}
