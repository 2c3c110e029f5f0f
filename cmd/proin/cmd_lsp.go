package main

import (
	"github.com/mwessel/proin/config"
	"github.com/mwessel/proin/prosim/workspace"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newLSPCmd(configPath *string) *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Log.Verbosity = verbosity
			}
			commonlog.Configure(cfg.Log.Verbosity, nil)

			ws := workspace.New(cfg)
			server := workspace.NewLSPServer(ws, version)
			return server.RunStdio()
		},
	}

	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 1, "log verbosity (0 quiet, 1 info, 2 debug)")

	return cmd
}
