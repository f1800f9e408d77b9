package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/seanacker/souberUp/internal/graph"
	"github.com/seanacker/souberUp/internal/service"
)

// BearerContext resolves the Authorization header into a request context for
// the GraphQL layer. It never aborts: a missing, malformed or invalid token
// leaves the request anonymous and authorization is decided per operation.
func BearerContext(auth *service.AuthService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := &graph.RequestContext{
			Log: log.With().
				Str("request_id", c.Writer.Header().Get(requestIDHeader)).
				Logger(),
		}

		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			rc.User = auth.VerifyAccessToken(c.Request.Context(), token)
		}

		c.Request = c.Request.WithContext(graph.WithRequestContext(c.Request.Context(), rc))
		c.Next()
	}
}
