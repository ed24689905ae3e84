package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Operation string    // exact match when set
}

// RequestEventData captures one backend call.
type RequestEventData struct {
	Operation    string
	Method       string
	Path         string
	Status       int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// RequestEventRecord is a stored backend call.
type RequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RequestEventData
}

// OperationStats aggregates the calls made for one operation.
type OperationStats struct {
	Operation    string
	Calls        int
	Failures     int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the request log.
type EventRepo interface {
	// AppendRequest records a backend call.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// QueryRequests returns calls newest first.
	QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error)

	// GetRequest returns one call, or nil if id is unknown.
	GetRequest(ctx context.Context, id int) (*RequestEventRecord, error)

	// UsageByOperation summarizes calls per operation.
	UsageByOperation(ctx context.Context) ([]OperationStats, error)

	// PruneRequests deletes all but the newest keep calls and reports how
	// many were removed.
	PruneRequests(ctx context.Context, keep int) (int64, error)
}
