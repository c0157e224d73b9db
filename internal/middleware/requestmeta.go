package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/handlers"
)

// RequestMeta adds client IP, user agent and referrer to the request context.
func RequestMeta(ctx huma.Context, next func(huma.Context)) {
	meta := handlers.RequestMeta{
		ClientIP:  clientIP(ctx),
		UserAgent: ctx.Header("User-Agent"),
		Referrer:  ctx.Header("Referer"),
	}

	next(huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta)))
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection's remote address.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	addr := ctx.RemoteAddr()

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}
