package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearpath-labs/policyrag/internal/cli"
	"github.com/clearpath-labs/policyrag/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "policyragd",
		Short: "Policyrag daemon",
		Long:  "Policyrag daemon for serving semantic search over policy documents",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
