package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osta-lang/osta/format"
	"github.com/osta-lang/osta/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var entry string
	var source string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a source file and dump the syntax tree",
		Long: `Parse a source file and dump the syntax tree.

The input is read from the file argument, from --source, or from stdin.
--entry selects the grammar rule the input is parsed with.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader
			var opts []parser.Option
			switch {
			case source != "":
				r = strings.NewReader(source)
			case len(args) == 1:
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open source file: %w", err)
				}
				defer f.Close()
				r = f
				opts = append(opts, parser.WithFile(args[0]))
			default:
				r = cmd.InOrStdin()
				opts = append(opts, parser.WithFile("<stdin>"))
			}

			var p *parser.Parser
			switch entry {
			case "program":
				p = parser.ParseProgramFrom(r, opts...)
			case "stmt":
				p = parser.ParseStmtFrom(r, opts...)
			case "expr":
				p = parser.ParseExpressionFrom(r, opts...)
			case "type":
				p = parser.ParseTypeFrom(r, opts...)
			default:
				return fmt.Errorf("unknown entry rule: %s", entry)
			}

			var encoder format.Encoder
			out := cmd.OutOrStdout()
			switch outputFormat {
			case "json":
				encoder = format.NewASTJSONEncoder(out)
			case "tree":
				encoder = format.NewTreeEncoder(out)
			case "table":
				encoder = format.NewTableEncoder(out)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			tree, err := p.Finish()
			if err != nil {
				return err
			}
			if err := encoder.Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, tree, table)")
	cmd.Flags().StringVarP(&entry, "entry", "e", "program", "grammar rule to start with (program, stmt, expr, type)")
	cmd.Flags().StringVarP(&source, "source", "s", "", "parse this text instead of a file")

	return cmd
}
