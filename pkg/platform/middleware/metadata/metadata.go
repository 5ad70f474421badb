package metadata

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"loanengine/pkg/requestcontext"
)

// ClientMetadata extracts client IP address and User-Agent from the request
// and adds them to the context. Apply it early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest extracts the real client IP from the request, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For: client, proxy1, proxy2
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if addr := r.RemoteAddr; addr != "" {
		if host, _, err := net.SplitHostPort(addr); err == nil {
			return host
		}
		return addr
	}

	return "unknown"
}

// ClientKind describes the calling client for access logs.
type ClientKind struct {
	Browser string
	Bot     bool
	Mobile  bool
}

// DescribeUserAgent parses a User-Agent header into a ClientKind.
func DescribeUserAgent(ua string) ClientKind {
	if ua == "" {
		return ClientKind{}
	}
	parsed := useragent.New(ua)
	name, _ := parsed.Browser()
	return ClientKind{
		Browser: name,
		Bot:     parsed.Bot(),
		Mobile:  parsed.Mobile(),
	}
}
