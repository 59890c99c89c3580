package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// HealthResponse represents the health API response.
type HealthResponse struct {
	Status         string `json:"status"`
	CollectionName string `json:"collection_name"`
	TotalChunks    int    `json:"total_chunks"`
	EmbeddingModel string `json:"embedding_model"`
}

// HealthCmd creates the health command.
func HealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runHealth(cmd, outputJSON)
		},
	}
}

func runHealth(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/health")
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	var healthResp HealthResponse
	if err := json.Unmarshal(resp.Data, &healthResp); err != nil {
		return fmt.Errorf("failed to parse health response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(healthResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("status:     %s\n", healthResp.Status)
	fmt.Printf("collection: %s\n", healthResp.CollectionName)
	fmt.Printf("chunks:     %d\n", healthResp.TotalChunks)
	fmt.Printf("model:      %s\n", healthResp.EmbeddingModel)
	return nil
}
