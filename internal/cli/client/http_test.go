package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_Post_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "refunds", req.Query)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"query":"refunds","results":[],"total_chunks":5}}`))
	}))
	defer srv.Close()

	api := NewAPIClientWithConfig("test-key", srv.URL)

	resp, err := api.Post("/search", SearchRequest{Query: "refunds"})

	require.NoError(t, err)
	assert.Empty(t, resp.Error)

	var searchResp SearchResponse
	require.NoError(t, json.Unmarshal(resp.Data, &searchResp))
	assert.Equal(t, 5, searchResp.TotalChunks)
}

func TestAPIClient_NoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"status":"healthy"}}`))
	}))
	defer srv.Close()

	api := NewAPIClientWithConfig("", srv.URL)

	_, err := api.Get("/health")
	require.NoError(t, err)
}

func TestAPIClient_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"query cannot be empty"}`))
	}))
	defer srv.Close()

	api := NewAPIClientWithConfig("", srv.URL)

	_, err := api.Post("/search", SearchRequest{})

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "query cannot be empty", apiErr.Message)
}

func TestAPIClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	api := NewAPIClientWithConfig("", srv.URL)

	_, err := api.Get("/health")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "bad gateway")
}
