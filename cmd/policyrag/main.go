package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearpath-labs/policyrag/internal/cli"
	"github.com/clearpath-labs/policyrag/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "policyrag",
		Short: "Policyrag CLI - semantic search over policy documents",
		Long: `Policyrag CLI provides commands to search and manage the policy knowledge base.

Environment variables:
  POLICYRAG_API_KEY   API key for authenticated servers (optional)
  POLICYRAG_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	client.AddConnectionFlags(rootCmd)
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.IngestCmd())
	rootCmd.AddCommand(client.HealthCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
