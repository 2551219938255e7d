package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigor/pkg/utils"
)

func TestLegacyWebhookSignsAndPosts(t *testing.T) {
	var gotSignature, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Body-Signature")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sink := NewLegacyWebhook(server.URL, "hook-secret")
	require.NoError(t, sink.PostResult(context.Background(), testRecord()))

	assert.Equal(t, "application/json", gotContentType)
	// The receiver recomputes the digest over the exact bytes it got.
	assert.Equal(t, utils.SignPayload("hook-secret", gotBody), gotSignature)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "sess-1", payload["session_id"])
	assert.Equal(t, 72.0, payload["total_score"])
	assert.Equal(t, "t-boost-maintain", payload["recommended_tier"])
}

func TestLegacyWebhookNonSuccessStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sink := NewLegacyWebhook(server.URL, "hook-secret")
	err := sink.PostResult(context.Background(), testRecord())
	assert.ErrorContains(t, err, "500")
}

func TestLegacyWebhookWithoutURLIsANoop(t *testing.T) {
	sink := NewLegacyWebhook("", "hook-secret")
	assert.NoError(t, sink.PostResult(context.Background(), testRecord()))
}
