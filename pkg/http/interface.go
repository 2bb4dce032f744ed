package http

import (
	"context"
)

// JSONClient defines the JSON-over-HTTP operations services depend on.
type JSONClient interface {
	DoJSON(ctx context.Context, method, url string, body, out interface{}) error
	GetJSON(ctx context.Context, url string, out interface{}) error
	PostJSON(ctx context.Context, url string, body, out interface{}) error
	Close()
}
