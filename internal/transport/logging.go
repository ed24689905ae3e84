package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/abhisek/studygenie/internal/store"
)

// maxLoggedBody bounds how much of a payload is kept in the event log.
const maxLoggedBody = 64 << 10

// LoggingGateway is a decorator that records every backend call as an
// event and a log line.
type LoggingGateway struct {
	inner     Gateway
	eventRepo store.EventRepo
	logger    *slog.Logger
}

// WithLogging wraps a Gateway with event logging. A nil repo only logs.
func WithLogging(g Gateway, repo store.EventRepo, logger *slog.Logger) Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingGateway{inner: g, eventRepo: repo, logger: logger}
}

func (l *LoggingGateway) Do(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	op := OperationFrom(ctx)

	resp, err := l.inner.Do(ctx, req)

	latency := time.Since(start)
	data := store.RequestEventData{
		Operation:   string(op),
		Method:      req.Method,
		Path:        req.Path,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeBody(req.Body),
	}
	if resp != nil {
		data.Status = resp.Status
		data.ResponseBody = truncateBody(string(resp.Body))
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		if te, ok := AsError(err); ok {
			data.Status = te.Status
		}
	}

	attrs := []any{
		slog.String("op", string(op)),
		slog.String("path", req.Path),
		slog.Int("status", data.Status),
		slog.Int64("latency_ms", data.LatencyMs),
	}
	if err != nil {
		l.logger.WarnContext(ctx, "backend request failed", append(attrs, slog.Any("error", err))...)
	} else {
		l.logger.DebugContext(ctx, "backend request", attrs...)
	}

	// Log the event but don't fail the request if logging fails.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.logger.Warn("failed to record request event", slog.Any("error", logErr))
		}
	}

	return resp, err
}

func (l *LoggingGateway) Endpoint() string {
	return l.inner.Endpoint()
}

func serializeBody(body any) string {
	if body == nil {
		return ""
	}
	b, err := json.Marshal(body)
	if err != nil {
		return ""
	}
	return truncateBody(string(b))
}

func truncateBody(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "…"
}
