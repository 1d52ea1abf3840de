package account

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/fitforge/internal/auth"
	"github.com/2beens/fitforge/internal/identity"
	"github.com/2beens/fitforge/internal/middleware"
	"github.com/2beens/fitforge/internal/profile"
	"github.com/2beens/fitforge/internal/telemetry/metrics"
	"github.com/2beens/fitforge/internal/telemetry/tracing"
	"github.com/2beens/fitforge/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=account_test

type identityClient interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, email, password string) (string, error)
	SendPasswordReset(ctx context.Context, email string) error
}

type sessionService interface {
	Login(ctx context.Context, uid string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type userCreator interface {
	CreateUser(ctx context.Context, uid string, user profile.User) error
}

type Handler struct {
	identity       identityClient
	sessions       sessionService
	users          userCreator
	versionInfo    string
	metricsManager *metrics.Manager
}

type NewHandlerParams struct {
	Identity       identityClient
	Sessions       sessionService
	Users          userCreator
	VersionInfo    string
	MetricsManager *metrics.Manager
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		identity:       params.Identity,
		sessions:       params.Sessions,
		users:          params.Users,
		versionInfo:    params.VersionInfo,
		metricsManager: params.MetricsManager,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
}

type ResetRequest struct {
	Email string `json:"email"`
}

type SignUpResponse struct {
	UID string `json:"uid"`
}

type FieldErrorsResponse struct {
	Errors map[string]string `json:"errors"`
}

func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
) {
	mainRouter.HandleFunc("/", h.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", h.handleGetVersionInfo).Methods("GET").Name("version")

	authSubrouter := mainRouter.PathPrefix("/auth").Subrouter()
	authSubrouter.HandleFunc("/signup", h.handleSignUp).Methods("POST", "OPTIONS").Name("signup")
	authSubrouter.HandleFunc("/login", h.handleLogin).Methods("POST", "OPTIONS").Name("login")
	authSubrouter.HandleFunc("/reset", h.handleReset).Methods("POST", "OPTIONS").Name("reset-password")
	authSubrouter.HandleFunc("/logout", h.handleLogout).Methods("GET", "OPTIONS").Name("logout")

	// rate limit the account endpoints to prevent abuse
	authSubrouter.Use(middleware.RateLimit(rateLimiter, "auth", allowedPerMin, h.metricsManager))
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (h *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, h.versionInfo)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var loginReq LoginRequest
	if err := pkg.ReadJSON(r, &loginReq); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	uid, err := h.identity.SignIn(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		h.countLogin("failed")
		span.SetStatus(codes.Error, "sign-in-failed")
		writeIdentityError(w, "login", err, "Unable to sign in, please try again.")
		return
	}
	span.SetAttributes(attribute.String("uid", uid))

	token, err := h.sessions.Login(ctx, uid, time.Now())
	if err != nil {
		h.countLogin("error")
		log.Errorf("login failed, create session: %s", err)
		http.Error(w, "create session error", http.StatusInternalServerError)
		return
	}

	h.countLogin("success")
	log.Tracef("new login success for %s", uid)
	pkg.WriteJSON(w, LoginResponse{Token: token, UID: uid}, http.StatusOK)
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountHandler.signUp")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var form profile.SignUpForm
	if err := pkg.ReadJSON(r, &form); err != nil {
		log.Errorf("sign up, unmarshal json params: %s", err)
		http.Error(w, "sign up failed", http.StatusBadRequest)
		return
	}

	if err := form.Validate(); err != nil {
		var fieldErrs profile.FieldErrors
		if errors.As(err, &fieldErrs) {
			pkg.WriteJSON(w, FieldErrorsResponse{Errors: fieldErrs}, http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	uid, err := h.identity.SignUp(ctx, form.Email, form.Password)
	if err != nil {
		span.SetStatus(codes.Error, "sign-up-failed")
		if errors.Is(err, identity.ErrEmailExists) {
			pkg.WriteJSON(w, FieldErrorsResponse{
				Errors: map[string]string{"email": identity.UserMessage(err)},
			}, http.StatusConflict)
			return
		}
		writeIdentityError(w, "sign up", err, "Something went wrong.")
		return
	}

	// the account exists at this point, a missing user record is not fatal
	if err := h.users.CreateUser(ctx, uid, form.User()); err != nil {
		log.Warnf("sign up, failed saving user record for %s: %s", uid, err)
	}

	pkg.WriteJSON(w, SignUpResponse{UID: uid}, http.StatusCreated)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountHandler.reset")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var resetReq ResetRequest
	if err := pkg.ReadJSON(r, &resetReq); err != nil {
		log.Errorf("reset password, unmarshal json params: %s", err)
		http.Error(w, "reset failed", http.StatusBadRequest)
		return
	}

	if err := h.identity.SendPasswordReset(ctx, resetReq.Email); err != nil {
		if errors.Is(err, identity.ErrMissingEmail) {
			http.Error(w, "Please enter your account email first.", http.StatusBadRequest)
			return
		}
		writeIdentityError(w, "reset password", err, "Failed to send reset email. Please try again later.")
		return
	}

	pkg.WriteTextResponseOK(w, "Please check your inbox for the password-reset link.")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := auth.TokenFromRequest(r)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := h.sessions.Logout(ctx, authToken)
	if err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (h *Handler) countLogin(outcome string) {
	if h.metricsManager == nil {
		return
	}
	h.metricsManager.CounterLogins.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// writeIdentityError answers with the user facing message of a provider or
// validation error, and with fallback when the provider could not be reached.
func writeIdentityError(w http.ResponseWriter, op string, err error, fallback string) {
	var providerErr *identity.ProviderError
	switch {
	case errors.As(err, &providerErr):
		log.Debugf("%s rejected by identity provider: %s", op, err)
		status := http.StatusBadRequest
		if op == "login" {
			status = http.StatusUnauthorized
		}
		http.Error(w, identity.UserMessage(err), status)
	case errors.Is(err, identity.ErrMissingEmail),
		errors.Is(err, identity.ErrInvalidEmail),
		errors.Is(err, identity.ErrMissingPassword):
		http.Error(w, identity.UserMessage(err), http.StatusBadRequest)
	case errors.Is(err, identity.ErrEmailNotRegistered),
		errors.Is(err, identity.ErrWrongPassword),
		errors.Is(err, identity.ErrAuthFailed):
		http.Error(w, identity.UserMessage(err), http.StatusUnauthorized)
	default:
		log.Errorf("%s, identity provider: %s", op, err)
		http.Error(w, fallback, http.StatusBadGateway)
	}
}
