// Package logging declares the structured logger the rest of the code is
// written against. The single production implementation wraps slog; tests
// usually point it at io.Discard.
package logging

import "context"

// Logger logs structured, context-aware events. Variadic args are key-value
// pairs:
//
//	log.Info(ctx, "check complete", "software_id", id, "latest", latest)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key-value pairs on
	// every record.
	With(args ...any) Logger
}
