package transport

import "context"

type contextKey string

const operationKey contextKey = "transport_operation"

// WithOperation attaches an operation name to the context for logging
// and error messages.
func WithOperation(ctx context.Context, op Operation) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// OperationFrom extracts the operation name from the context.
func OperationFrom(ctx context.Context) Operation {
	if v, ok := ctx.Value(operationKey).(Operation); ok {
		return v
	}
	return "unknown"
}
