package main

import (
	"os"

	"github.com/ignite/response-prettier/internal/api"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "prettyd",
		Short:        "Pretty-print HTTP responses on request",
		Version:      api.Version,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newFormatCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
