package storage

import (
	"context"
	"errors"
)

// ErrUpstreamQuery marks failures raised by the warehouse while executing a query.
var ErrUpstreamQuery = errors.New("upstream query failed")

// Row maps result column names to values. Text columns arrive as string.
type Row map[string]any

// Querier is the warehouse boundary. Parameters are always bound by name;
// only validated identifiers may be interpolated into query text.
type Querier interface {
	// RunQuery executes query and returns every row.
	RunQuery(ctx context.Context, query string, params map[string]any) ([]Row, error)

	// RunScalar executes query and returns the first column of the first row,
	// or nil when the query returned no rows.
	RunScalar(ctx context.Context, query string, params map[string]any) (any, error)
}
