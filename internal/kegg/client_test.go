package kegg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("joins ids with plus and parses entries", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(sampleResponse))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		entries, err := client.Get(ctx, []string{"K00001", "map00010"})
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(gotPath, "/get/K00001+map00010"), "path %q", gotPath)
		require.Len(t, entries, 2)
		assert.Equal(t, "K00001", entries[0].ID)
	})

	t.Run("404 means no matching ids, not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		entries, err := client.Get(ctx, []string{"K99999"})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("5xx is an error for the retry policy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.Get(ctx, []string{"K00001"})
		assert.ErrorIs(t, err, ErrServerError)
	})

	t.Run("rejects empty id list", func(t *testing.T) {
		client := NewClient()
		_, err := client.Get(ctx, nil)
		assert.ErrorIs(t, err, ErrNoIDs)
	})

	t.Run("rejects more ids than the service ceiling", func(t *testing.T) {
		ids := make([]string, MaxIDsPerRequest+1)
		for i := range ids {
			ids[i] = "K00001"
		}
		client := NewClient()
		_, err := client.Get(ctx, ids)
		assert.ErrorIs(t, err, ErrTooManyIDs)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.Get(cancelCtx, []string{"K00001"})
		assert.Error(t, err)
	})
}
