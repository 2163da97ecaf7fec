package wiki

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAPI serves one queued JSON payload per request and records the
// query parameters of every call, mirroring how the real API is exercised.
type scriptedAPI struct {
	t *testing.T

	mu       sync.Mutex
	payloads []string
	calls    []url.Values
}

func (s *scriptedAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, r.URL.Query())
	if len(s.payloads) == 0 {
		s.t.Error("scriptedAPI: no more payloads queued")
		http.Error(w, "no more payloads", http.StatusInternalServerError)
		return
	}
	payload := s.payloads[0]
	s.payloads = s.payloads[1:]

	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, payload)
}

func (s *scriptedAPI) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *scriptedAPI) call(i int) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[i]
}

func newTestClient(t *testing.T, opts Options, payloads ...string) (*Client, *scriptedAPI) {
	t.Helper()

	api := &scriptedAPI{t: t, payloads: payloads}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(opts), api
}

func collectChunks(t *testing.T, c *Client, params url.Values) ([]*QueryChunk, error) {
	t.Helper()

	var chunks []*QueryChunk
	err := c.forEachChunk(context.Background(), params, func(chunk *QueryChunk) (bool, error) {
		chunks = append(chunks, chunk)
		return true, nil
	})
	return chunks, err
}

func TestForEachChunkSinglePage(t *testing.T) {
	client, api := newTestClient(t, Options{},
		`{"query":{"pages":[{"title":"Root","extract":"Root text","links":[]}]}}`,
	)

	chunks, err := collectChunks(t, client, client.pageParams("Root"))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Root", chunks[0].Pages[0].Title)

	require.Equal(t, 1, api.callCount())
	assert.Equal(t, "Root", api.call(0).Get("titles"))
	assert.Equal(t, "extracts|links", api.call(0).Get("prop"))
}

func TestForEachChunkMergesContinueParams(t *testing.T) {
	client, api := newTestClient(t, Options{},
		`{"query":{"pages":[{"title":"Root"}]},"continue":{"plcontinue":"123|0|Next","continue":"||"}}`,
		`{"query":{"pages":[{"title":"Root"}]}}`,
	)

	chunks, err := collectChunks(t, client, client.pageParams("Root"))
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	require.Equal(t, 2, api.callCount())
	second := api.call(1)
	assert.Equal(t, "123|0|Next", second.Get("plcontinue"))
	assert.Equal(t, "||", second.Get("continue"))
	// Base parameters remain on the continuation request.
	assert.Equal(t, "Root", second.Get("titles"))
}

func TestForEachChunkNumericContinueToken(t *testing.T) {
	client, api := newTestClient(t, Options{},
		`{"query":{"pages":[{"title":"Root"}]},"continue":{"excontinue":4503599,"continue":"||"}}`,
		`{"query":{"pages":[{"title":"Root"}]}}`,
	)

	_, err := collectChunks(t, client, client.pageParams("Root"))
	require.NoError(t, err)
	require.Equal(t, 2, api.callCount())
	assert.Equal(t, "4503599", api.call(1).Get("excontinue"))
}

func TestForEachChunkRemoteErrorAborts(t *testing.T) {
	client, api := newTestClient(t, Options{},
		`{"error":{"code":"maxlag","info":"retry later"}}`,
	)

	chunks, err := collectChunks(t, client, client.pageParams("Root"))
	require.Error(t, err)
	assert.Empty(t, chunks)
	assert.Equal(t, 1, api.callCount())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "maxlag", apiErr.Code)
	assert.Equal(t, "retry later", apiErr.Info)
	assert.JSONEq(t, `{"code":"maxlag","info":"retry later"}`, string(apiErr.Raw))
}

func TestForEachChunkHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{BaseURL: srv.URL, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	_, err := collectChunks(t, client, client.pageParams("Root"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestGateSlotReleasedAfterFailedRequests(t *testing.T) {
	// A single gate slot, reused across requests. If any failure path leaked
	// it, every later request would time out in Acquire instead of reaching
	// the server.
	handlers := make(chan http.HandlerFunc, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		(<-handlers)(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{
		BaseURL:     srv.URL,
		Concurrency: 1,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	run := func() ([]*QueryChunk, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		var chunks []*QueryChunk
		err := client.forEachChunk(ctx, client.pageParams("Root"), func(chunk *QueryChunk) (bool, error) {
			chunks = append(chunks, chunk)
			return true, nil
		})
		return chunks, err
	}

	// Connection dropped mid-request.
	handlers <- func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		conn.Close()
	}
	_, err := run()
	require.Error(t, err)

	// Non-200 status.
	handlers <- func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}
	_, err = run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")

	// Truncated response body.
	handlers <- func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"query":`)
	}
	_, err = run()
	require.Error(t, err)

	// The slot came back every time: a normal request still goes through.
	handlers <- func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"query":{"pages":[{"title":"Root","extract":"Root text"}]}}`)
	}
	chunks, err := run()
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Root", chunks[0].Pages[0].Title)
}
