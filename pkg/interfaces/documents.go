package interfaces

import (
	"context"
	"encoding/json"
)

// Params is the key-value bag supplied alongside a document query. Values are
// serialized to JSON before being handed to the content store.
type Params map[string]any

// FetchOptions tunes a single document fetch.
type FetchOptions struct {
	// Cache requests that the result be served from (and stored in) the
	// client's query cache when one is configured.
	Cache bool
	// Tag annotates the request for upstream log correlation. Optional.
	Tag string
}

// DocumentClient is the external content-store collaborator. The query string
// is an opaque filter/projection expression owned by the caller; the client
// only transports it. A query that matches nothing yields the JSON literal
// null, not an error.
type DocumentClient interface {
	Fetch(ctx context.Context, query string, params Params, opts FetchOptions) (json.RawMessage, error)
}

// QueryCache stores raw query results keyed by query+params. Implementations
// own their TTL and eviction policy; callers must treat every hit as
// potentially stale.
type QueryCache interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, value json.RawMessage)
}
