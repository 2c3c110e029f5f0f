package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mwessel/proin/prosim/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an input deck and dump the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read input file: %w", err)
			}

			program := parser.ParseSource(data, filename)

			switch outputFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(program); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "text":
				if includePositions {
					fmt.Println(program.StringWithPositions())
				} else {
					fmt.Println(program.String())
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include line/column spans in text output")

	return cmd
}
