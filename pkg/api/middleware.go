package api

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/reqctx"
)

const requestIDHeader = "X-Request-ID"

// requestContext attaches the request id and caller credentials to the
// request context and bounds every request by timeout.
func requestContext(log logger.ILogger, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := reqctx.Request{
			ID:    c.GetHeader(requestIDHeader),
			Token: bearer(c.GetHeader("Authorization")),
			Actor: c.GetHeader("X-Actor"),
		}
		if req.ID == "" {
			req.ID = reqctx.NewID()
		}
		c.Writer.Header().Set(requestIDHeader, req.ID)

		ctx := reqctx.With(c.Request.Context(), req)
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		log.Debug("request served", append(reqctx.Fields(ctx),
			logger.String("method", c.Request.Method),
			logger.String("path", c.FullPath()),
			logger.Int("status", c.Writer.Status()),
			logger.Any("duration", time.Since(start)))...)
	}
}

func bearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
