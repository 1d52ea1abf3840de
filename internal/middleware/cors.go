package middleware

import (
	"net/http"
	"strings"

	"github.com/2beens/fitforge/internal/auth"

	log "github.com/sirupsen/logrus"
)

var corsAllowedHeaders = strings.Join([]string{
	"Accept",
	"Content-Type",
	"Content-Length",
	"Accept-Encoding",
	"Authorization",
	auth.TokenHeader,
	"MCP-Protocol-Version",
	"MCP-Session-Id",
}, ", ")

// Cors allows browser requests from the given origins. Native clients send no
// Origin header and pass through untouched.
func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case origin == "" && strings.HasPrefix(r.URL.Path, "/mcp"):
				// MCP clients often send no Origin
				setCorsHeaders(w, "*")
			case origin == "":
			case allowed[origin]:
				setCorsHeaders(w, origin)
			default:
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setCorsHeaders(w http.ResponseWriter, origin string) {
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
}
