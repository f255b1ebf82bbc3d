// Package context carries request-scoped values (request id, logger, caller identity)
// between the echo layer, the use cases and the infra adapters.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header read from and echoed back to the client.
const HeaderXRequestID = echo.HeaderXRequestID

const echoKeyRequestID = "request_id"

type scopeKey struct{}

// scope is the per-request bundle stored in a context.Context. It is copied on write so a
// derived context never mutates its parent.
type scope struct {
	requestID string
	logger    *slog.Logger
}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)

	return s
}

func withScope(ctx context.Context, s scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// Begin attaches requestID and a logger tagged with it to ctx.
func Begin(ctx context.Context, requestID string, base *slog.Logger) (context.Context, *slog.Logger) {
	logger := base.With(slog.String("request_id", requestID))

	return withScope(ctx, scope{requestID: requestID, logger: logger}), logger
}

// GetRequestID returns the request id of c. Requests that skipped the request id middleware
// get a fresh one.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoKeyRequestID).(string); ok && id != "" {
		return id
	}
	if id := scopeOf(c.Request().Context()).requestID; id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID stores the request id in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestIDFromContext returns the request id or "" when none was attached.
func GetRequestIDFromContext(ctx context.Context) string {
	return scopeOf(ctx).requestID
}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	s := scopeOf(ctx)
	s.requestID = requestID

	return withScope(ctx, s)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when none is attached.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := scopeOf(ctx).logger; logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	s := scopeOf(ctx)
	s.logger = logger

	return withScope(ctx, s)
}
