package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/2beens/fitforge/internal/auth"
	"github.com/2beens/fitforge/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type loginChecker interface {
	UserID(ctx context.Context, token string) (string, error)
}

type AuthMiddlewareHandler struct {
	loginChecker         loginChecker
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(loginChecker loginChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
		allowedPaths: map[string]bool{
			"/":        true,
			"/version": true,

			// account handler, logout checks the token itself
			"/auth/login":  true,
			"/auth/signup": true,
			"/auth/reset":  true,
			"/auth/logout": true,
		},
		allowedPathsPrefixes: []string{},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthCheck resolves the request token to a user id and puts it in the
// request context. Requests without a valid session get a 401.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := auth.TokenFromRequest(r)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			uid, err := h.loginChecker.UserID(ctx, authToken)
			if err != nil {
				if auth.IsUnauthorized(err) {
					log.Tracef("[invalid token] [auth middleware] unauthorized => %s: %s", r.URL.Path, err)
					span.SetStatus(codes.Error, "not-logged")
				} else {
					log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
					span.SetStatus(codes.Error, "check-logged-err")
					span.RecordError(err)
				}
				http.Error(w, "no can do", http.StatusUnauthorized)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), uid)))
		})
	}
}
