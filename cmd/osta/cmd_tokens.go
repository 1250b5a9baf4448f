package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osta-lang/osta/format"
	"github.com/osta-lang/osta/lexer"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			enc := format.NewTokenTableEncoder(cmd.OutOrStdout())
			if err := enc.Encode(lexer.NewTokenizer(data, filename)); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}
			return nil
		},
	}
}
