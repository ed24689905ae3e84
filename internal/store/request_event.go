package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const requestEvents = "request_events"

var requestColumns = []string{
	"id", "sequence", "timestamp", "operation", "method", "path", "status",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo with ent's SQL builders.
type eventRepo struct {
	db  *sql.DB
	seq *sequences
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	seqNum, err := r.seq.next(ctx, requestEvents)
	if err != nil {
		return err
	}

	query, args := builder().Insert(requestEvents).
		Columns("sequence", "timestamp", "operation", "method", "path", "status",
			"latency_ms", "success", "error_message", "request_body", "response_body").
		Values(seqNum, time.Now().UnixMilli(), data.Operation, data.Method, data.Path, data.Status,
			data.LatencyMs, boolInt(data.Success), data.ErrorMessage, data.RequestBody, data.ResponseBody).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error) {
	t := builder().Table(requestEvents)
	sel := builder().Select(requestColumns...).From(t).OrderBy(entsql.Desc("sequence"))

	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel = sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel = sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel = sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.Operation != "" {
		sel = sel.Where(entsql.EQ("operation", opts.Operation))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	defer rows.Close()

	var records []RequestEventRecord
	for rows.Next() {
		rec, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request event: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) GetRequest(ctx context.Context, id int) (*RequestEventRecord, error) {
	query, args := builder().Select(requestColumns...).
		From(builder().Table(requestEvents)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanRequest(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get request event %d: %w", id, err)
	}
	return &rec, nil
}

func (r *eventRepo) UsageByOperation(ctx context.Context) ([]OperationStats, error) {
	query, args := builder().Select(
		"operation",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("success"), "ok"),
		entsql.As(entsql.Sum("latency_ms"), "latency"),
	).
		From(builder().Table(requestEvents)).
		GroupBy("operation").
		OrderBy("operation").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by operation: %w", err)
	}
	defer rows.Close()

	var stats []OperationStats
	for rows.Next() {
		var (
			st      OperationStats
			ok      int
			latency int64
		)
		if err := rows.Scan(&st.Operation, &st.Calls, &ok, &latency); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		st.Failures = st.Calls - ok
		if st.Calls > 0 {
			st.AvgLatencyMs = latency / int64(st.Calls)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (r *eventRepo) PruneRequests(ctx context.Context, keep int) (int64, error) {
	// The newest row that falls outside the window marks the cutoff.
	query, args := builder().Select("sequence").
		From(builder().Table(requestEvents)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Offset(max(keep, 0)).
		Query()
	var cutoff int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&cutoff)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find prune cutoff: %w", err)
	}

	query, args = builder().Delete(requestEvents).Where(entsql.LTE("sequence", cutoff)).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune request events: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(s scanner) (RequestEventRecord, error) {
	var (
		rec     RequestEventRecord
		ts      int64
		success int
	)
	err := s.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Operation, &rec.Method, &rec.Path, &rec.Status,
		&rec.LatencyMs, &success, &rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody)
	if err != nil {
		return RequestEventRecord{}, err
	}
	rec.Timestamp = time.UnixMilli(ts)
	rec.Success = success != 0
	return rec, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
