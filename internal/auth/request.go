package auth

import (
	"net/http"
	"strings"
)

const TokenHeader = "X-FIT-TOKEN"

// TokenFromRequest reads the API token from the Authorization bearer header,
// falling back to X-FIT-TOKEN.
func TokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		scheme, token, found := strings.Cut(authz, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(TokenHeader))
}
