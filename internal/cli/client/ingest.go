package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// IngestResponse represents the ingest API response.
type IngestResponse struct {
	DocumentsProcessed int    `json:"documents_processed"`
	TotalChunks        int    `json:"total_chunks"`
	Message            string `json:"message"`
}

// IngestCmd creates the ingest command.
func IngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Rebuild the document index",
		Long:  "Asks the server to reload all policy documents and rebuild its vector index.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runIngest(cmd, outputJSON)
		},
	}
}

func runIngest(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/ingest", nil)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	var ingestResp IngestResponse
	if err := json.Unmarshal(resp.Data, &ingestResp); err != nil {
		return fmt.Errorf("failed to parse ingest response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(ingestResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(ingestResp.Message)
	return nil
}
