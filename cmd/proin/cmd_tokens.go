package main

import (
	"fmt"
	"os"

	"github.com/mwessel/proin/prosim/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize an input deck and list the tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read input file: %w", err)
			}

			for _, tok := range parser.Tokenize(data, filename) {
				if tok.Kind == parser.TokenEOF {
					break
				}
				fmt.Printf("%s\t%s\t%q\n", tok.Span.Start, tok.Kind, tok.Text)
			}

			return nil
		},
	}
}
