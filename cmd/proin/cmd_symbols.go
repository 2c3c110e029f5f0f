package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mwessel/proin/prosim/parser"
	"github.com/mwessel/proin/prosim/symbols"
	"github.com/spf13/cobra"
)

func newSymbolsCmd() *cobra.Command {
	var undefinedOnly bool
	var kindFilter string

	cmd := &cobra.Command{
		Use:   "symbols <file>",
		Short: "List the symbols defined and referenced by an input deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read input file: %w", err)
			}

			program := parser.ParseSource(data, filename)
			table := symbols.NewTable()
			table.Build(program, string(data))

			var list []*symbols.Symbol
			switch kindFilter {
			case "stream":
				list = table.SymbolsByKind(symbols.KindStream)
			case "unit":
				list = table.SymbolsByKind(symbols.KindUnit)
			case "component":
				list = table.SymbolsByKind(symbols.KindComponent)
			case "":
				list = append(list, table.SymbolsByKind(symbols.KindComponent)...)
				list = append(list, table.SymbolsByKind(symbols.KindStream)...)
				list = append(list, table.SymbolsByKind(symbols.KindUnit)...)
			default:
				return fmt.Errorf("unknown kind: %s (expected stream, unit or component)", kindFilter)
			}

			if undefinedOnly {
				list = filterUndefined(table, list)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tDEFINED\tREFS\tDETAIL")
			for _, sym := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					sym.Name, sym.Kind, definedLabel(sym), len(sym.References), symbolDetail(sym))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := table.Stats()
			fmt.Printf("\n%d component(s), %d stream(s), %d unit(s)\n",
				stats.ComponentCount, stats.StreamCount, stats.UnitCount)

			return nil
		},
	}

	cmd.Flags().BoolVar(&undefinedOnly, "undefined", false, "list only streams that are used but never defined")
	cmd.Flags().StringVar(&kindFilter, "kind", "", "restrict to one kind (stream, unit, component)")

	return cmd
}

// filterUndefined narrows a listing to its undefined members, so
// --undefined composes with --kind instead of overriding it.
func filterUndefined(table *symbols.Table, list []*symbols.Symbol) []*symbols.Symbol {
	undefined := make(map[*symbols.Symbol]bool)
	for _, sym := range table.UndefinedSymbols() {
		undefined[sym] = true
	}
	var result []*symbols.Symbol
	for _, sym := range list {
		if undefined[sym] {
			result = append(result, sym)
		}
	}
	return result
}

func definedLabel(sym *symbols.Symbol) string {
	if sym.IsDefined() {
		return fmt.Sprintf("line %d", sym.DefinitionLine)
	}
	return "-"
}

func symbolDetail(sym *symbols.Symbol) string {
	switch {
	case sym.Unit != nil:
		return sym.Unit.OpType
	case sym.Stream != nil:
		detail := ""
		if sym.Stream.Temperature != "" {
			detail += "TEMP=" + sym.Stream.Temperature + " "
		}
		if sym.Stream.Pressure != "" {
			detail += "PRES=" + sym.Stream.Pressure + " "
		}
		if sym.Stream.Rate != "" {
			detail += "RATE=" + sym.Stream.Rate
		}
		return detail
	case sym.Component != nil && sym.Component.Info != nil:
		return sym.Component.Info.Formula
	}
	return ""
}
