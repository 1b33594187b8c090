// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Values are set by middleware and handlers but consumed by the gate and its
// collaborators, which never import net/http.
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithPageID(ctx, "page-1")
package requestcontext

import (
	"context"
	"time"
)

type (
	clientIDKey    struct{}
	pageIDKey      struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyClientID    = clientIDKey{}
	ContextKeyPageID      = pageIDKey{}
	ContextKeyClientIP    = clientIPKey{}
	ContextKeyUserAgent   = userAgentKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Browsing client and page
// -----------------------------------------------------------------------------

// ClientID retrieves the browsing client identifier (consent cookie value).
func ClientID(ctx context.Context) string {
	if clientID, ok := ctx.Value(ContextKeyClientID).(string); ok {
		return clientID
	}
	return ""
}

// WithClientID injects a browsing client identifier into the context.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ContextKeyClientID, clientID)
}

// PageID retrieves the page session identifier from the context.
func PageID(ctx context.Context) string {
	if pageID, ok := ctx.Value(ContextKeyPageID).(string); ok {
		return pageID
	}
	return ""
}

// WithPageID injects a page session identifier into the context.
func WithPageID(ctx context.Context, pageID string) context.Context {
	return context.WithValue(ctx, ContextKeyPageID, pageID)
}

// -----------------------------------------------------------------------------
// Client metadata (IP, User-Agent)
// -----------------------------------------------------------------------------

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	ctx = context.WithValue(ctx, ContextKeyUserAgent, userAgent)
	return ctx
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, load callbacks, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
