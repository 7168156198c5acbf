package board

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_ReturnsDocumentAndSendsBrowserHeaders(t *testing.T) {
	const page = "<html><body><table><tr><td>Q2 707</td></tr></table></body></html>"
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(page))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.URL, logger.NewNopLogger())

	doc, err := fetcher.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, page, doc)
	assert.Contains(t, gotUA, "Mozilla/5.0")
	assert.Contains(t, gotAccept, "text/html")
}

func TestFetch_NonSuccessStatusIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.URL, logger.NewNopLogger())

	_, err := fetcher.Fetch(context.Background())
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "403")
}

func TestFetch_TransportFailureIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	fetcher := NewFetcher(server.URL, logger.NewNopLogger())

	_, err := fetcher.Fetch(context.Background())
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.NotNil(t, fetchErr.Err)
}

func TestFetch_CancelledContextAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	fetcher := NewFetcher(server.URL, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "context canceled"))
}

func TestNewFetcher_EmptyURLSelectsProductionBoard(t *testing.T) {
	fetcher := NewFetcher("", logger.NewNopLogger())
	assert.Equal(t, DefaultBoardURL, fetcher.url)
}
