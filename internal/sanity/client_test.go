package sanity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dogbodymind/go-site/pkg/interfaces"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		ProjectID: "abc123",
		Dataset:   "production",
		BaseURL:   server.URL,
	}, opts...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return client, server
}

func TestFetchEncodesQueryAndParams(t *testing.T) {
	var gotQuery, gotSlug string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotSlug = r.URL.Query().Get("$slug")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":{"_id":"post-1"},"ms":3}`))
	})

	result, err := client.Fetch(context.Background(),
		`*[_type == "post" && slug.current == $slug][0]`,
		interfaces.Params{"slug": "welpen"},
		interfaces.FetchOptions{},
	)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotQuery != `*[_type == "post" && slug.current == $slug][0]` {
		t.Fatalf("unexpected query sent: %q", gotQuery)
	}
	if gotSlug != `"welpen"` {
		t.Fatalf("expected JSON-encoded slug param, got %q", gotSlug)
	}
	if string(result) != `{"_id":"post-1"}` {
		t.Fatalf("unexpected result payload: %s", result)
	}
}

func TestFetchEmptyResultYieldsNull(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":null}`))
	})

	result, err := client.Fetch(context.Background(), "*[false]", nil, interfaces.FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(result) != "null" {
		t.Fatalf("expected null result, got %s", result)
	}
}

func TestFetchSurfacesEndpointErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"expected ']' following expression"}}`))
	})

	_, err := client.Fetch(context.Background(), "*[broken", nil, interfaces.FetchOptions{})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	reqErr, ok := err.(*RequestError)
	if !ok {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", reqErr.StatusCode)
	}
	if reqErr.Description == "" {
		t.Fatal("expected error description from response body")
	}
}

func TestFetchUsesQueryCacheWhenRequested(t *testing.T) {
	var calls atomic.Int64
	cache := NewQueryCache(16, time.Minute)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"result":[{"_id":"cat-1"}]}`))
	}, WithQueryCache(cache))

	for i := 0; i < 3; i++ {
		result, err := client.Fetch(context.Background(),
			`*[_type == "category"]`,
			interfaces.Params{"language": "de"},
			interfaces.FetchOptions{Cache: true},
		)
		if err != nil {
			t.Fatalf("Fetch %d error: %v", i, err)
		}
		var docs []json.RawMessage
		if err := json.Unmarshal(result, &docs); err != nil || len(docs) != 1 {
			t.Fatalf("unexpected result on call %d: %s", i, result)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}
}

func TestFetchSkipsCacheByDefault(t *testing.T) {
	var calls atomic.Int64
	cache := NewQueryCache(16, time.Minute)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"result":1}`))
	}, WithQueryCache(cache))

	for i := 0; i < 2; i++ {
		if _, err := client.Fetch(context.Background(), "count(*)", nil, interfaces.FetchOptions{}); err != nil {
			t.Fatalf("Fetch error: %v", err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected cache bypass, got %d calls", got)
	}
}

func TestNewRequiresProjectAndDataset(t *testing.T) {
	if _, err := New(Config{Dataset: "production"}); err == nil {
		t.Fatal("expected error for missing project id")
	}
	if _, err := New(Config{ProjectID: "abc123"}); err == nil {
		t.Fatal("expected error for missing dataset")
	}
}
