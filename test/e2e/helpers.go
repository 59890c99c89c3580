//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clearpath-labs/policyrag/internal/api/handlers"
	"github.com/clearpath-labs/policyrag/internal/chunker"
	"github.com/clearpath-labs/policyrag/internal/loader"
	"github.com/clearpath-labs/policyrag/internal/server"
	"github.com/clearpath-labs/policyrag/internal/service"
	"github.com/clearpath-labs/policyrag/internal/vectorstore/memory"
)

const embedDims = 64

// wordHashEmbedder produces deterministic bag-of-words embeddings. Texts that
// share vocabulary come out with higher cosine similarity, which is all the
// retrieval pipeline needs for an end-to-end run without a live provider.
type wordHashEmbedder struct{}

func (wordHashEmbedder) embed(text string) []float32 {
	vec := make([]float32, embedDims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?:;\"'()")
		if word == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%embedDims]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec
}

func (e wordHashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

func (e wordHashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.embed(text)
	}
	return out, nil
}

// E2EEnv holds a fully wired server backed by the in-memory vector store.
type E2EEnv struct {
	Server  *httptest.Server
	DocsDir string
	APIKey  string
	t       *testing.T
}

// SetupE2EEnv writes sample policy documents to a temp directory and starts
// an httptest server with the full ingestion and retrieval pipeline.
func SetupE2EEnv(t *testing.T, apiKey string) *E2EEnv {
	t.Helper()

	docsDir := t.TempDir()
	writeDoc(t, docsDir, "returns.md", strings.Join([]string{
		"Customers may return any unused item within 30 days of delivery for a full refund.",
		"Refunds are issued to the original payment method within 5 business days of receiving the returned item.",
		"Sale items and gift cards are not eligible for refunds.",
	}, "\n\n"))
	writeDoc(t, docsDir, "shipping.md", strings.Join([]string{
		"Standard shipping takes 3 to 5 business days within the continental United States.",
		"Express shipping is available for an additional fee and delivers within 2 business days.",
		"We do not ship to PO boxes.",
	}, "\n\n"))
	writeDoc(t, docsDir, "privacy.md", strings.Join([]string{
		"We collect only the personal data required to fulfil your order.",
		"Customer data is never sold to third parties.",
	}, "\n\n"))

	embedder := wordHashEmbedder{}
	store := memory.NewStore()
	source := loader.NewFSSource(docsDir)

	ingestor := service.NewIngestor(source, embedder, store, chunker.New(500, 50))
	retriever := service.NewRetriever(embedder, store, 3)

	router := server.NewRouter(server.RouterConfig{
		APIKey:        apiKey,
		SearchHandler: handlers.NewSearchHandler(retriever),
		IngestHandler: handlers.NewIngestHandler(ingestor),
		HealthHandler: handlers.NewHealthHandler(retriever, "ecommerce_policies", "stub-embedder"),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &E2EEnv{
		Server:  srv,
		DocsDir: docsDir,
		APIKey:  apiKey,
		t:       t,
	}
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

type apiResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Post sends a JSON POST to the test server, attaching the env's API key.
func (e *E2EEnv) Post(path string, body interface{}) (int, *apiResponse) {
	e.t.Helper()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.t, err)
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(http.MethodPost, e.Server.URL+path, reqBody)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	if e.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.APIKey)
	}

	return e.do(req)
}

// Get sends a GET to the test server without authentication.
func (e *E2EEnv) Get(path string) (int, *apiResponse) {
	e.t.Helper()

	req, err := http.NewRequest(http.MethodGet, e.Server.URL+path, nil)
	require.NoError(e.t, err)

	return e.do(req)
}

func (e *E2EEnv) do(req *http.Request) (int, *apiResponse) {
	e.t.Helper()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)

	var apiResp apiResponse
	require.NoError(e.t, json.Unmarshal(respBody, &apiResp),
		fmt.Sprintf("unexpected body: %s", respBody))

	return resp.StatusCode, &apiResp
}
