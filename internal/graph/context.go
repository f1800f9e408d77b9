package graph

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/seanacker/souberUp/internal/models"
)

// RequestContext carries the per-request state resolvers need: the caller
// resolved from the bearer token (nil for anonymous requests) and a request
// scoped logger. It is threaded explicitly through context.Context; there is
// no ambient or global lookup.
type RequestContext struct {
	User *models.User
	Log  zerolog.Logger
}

type requestContextKey struct{}

func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// FromContext returns the request context, or an anonymous one when the
// middleware never ran (tests, background work).
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestContextKey{}).(*RequestContext); ok && rc != nil {
		return rc
	}
	return &RequestContext{Log: zerolog.Nop()}
}
