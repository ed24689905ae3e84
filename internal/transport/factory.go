package transport

import (
	"log/slog"

	"github.com/abhisek/studygenie/internal/store"
)

// NewGateway creates the HTTP gateway from configuration, wrapped with
// retry and logging middleware.
func NewGateway(cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Gateway, error) {
	base, err := NewHTTPGateway(cfg)
	if err != nil {
		return nil, err
	}
	return Wrap(base, cfg.Retry, eventRepo, logger), nil
}

// Wrap applies the standard middleware: caller → retry → logging → base.
// Each retry attempt is logged separately.
func Wrap(base Gateway, retry RetryConfig, eventRepo store.EventRepo, logger *slog.Logger) Gateway {
	logged := WithLogging(base, eventRepo, logger)
	return WithRetry(logged, retry)
}
