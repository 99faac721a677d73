package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feedbox/internal/fetcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const sampleRSS = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Sample</title></channel></rss>`

func newClient(opts ...fetcher.Option) fetcher.Client {
	opts = append(opts, fetcher.WithPerHostRate(rate.Inf, 1))
	return fetcher.New("Feedbox/1.0", opts...)
}

func TestFetch_SendsConditionalHeaders(t *testing.T) {
	var gotETag, gotModified, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotETag = r.Header.Get("If-None-Match")
		gotModified = r.Header.Get("If-Modified-Since")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("ETag", `"v2"`)
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	client := newClient()
	result, err := client.Fetch(context.Background(), server.URL, fetcher.Validator{
		ETag:         `"v1"`,
		LastModified: "Mon, 02 Jan 2006 15:04:05 GMT",
	})
	require.NoError(t, err)
	require.Equal(t, fetcher.StatusFetched, result.Status)
	require.Equal(t, `"v1"`, gotETag)
	require.Equal(t, "Mon, 02 Jan 2006 15:04:05 GMT", gotModified)
	require.Equal(t, "Feedbox/1.0", gotUA)
	require.Equal(t, `"v2"`, result.Validator.ETag)
	require.NotEmpty(t, result.Validator.ContentHash)
	require.Equal(t, sampleRSS, string(result.Body))
}

func TestFetch_NotModified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	prev := fetcher.Validator{ETag: `"v1"`, ContentHash: "abc"}
	result, err := newClient().Fetch(context.Background(), server.URL, prev)
	require.NoError(t, err)
	require.Equal(t, fetcher.StatusUnchanged, result.Status)
	require.Empty(t, result.Body)
	// 304 carries no validators, the previous ones stay valid.
	require.Equal(t, prev, result.Validator)
}

func TestFetch_UnchangedByContentHash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	client := newClient()
	first, err := client.Fetch(context.Background(), server.URL, fetcher.Validator{})
	require.NoError(t, err)
	require.Equal(t, fetcher.StatusFetched, first.Status)

	second, err := client.Fetch(context.Background(), server.URL, first.Validator)
	require.NoError(t, err)
	require.Equal(t, fetcher.StatusUnchanged, second.Status)
	require.Equal(t, first.Validator.ContentHash, second.Validator.ContentHash)
}

func TestFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newClient().Fetch(context.Background(), server.URL, fetcher.Validator{})
	var statusErr *fetcher.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestFetch_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", (10<<20)+1)))
	}))
	defer server.Close()

	_, err := newClient().Fetch(context.Background(), server.URL, fetcher.Validator{})
	require.ErrorIs(t, err, fetcher.ErrTooLarge)
}

func TestFetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient().Fetch(ctx, server.URL, fetcher.Validator{})
	require.Error(t, err)
}
