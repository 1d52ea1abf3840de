package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/2beens/fitforge/internal/telemetry/tracing"
	"github.com/2beens/fitforge/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// DevAccount signs in as a fixed uid without asking the provider.
// Only meant for development builds.
type DevAccount struct {
	Email        string
	PasswordHash string
	UID          string
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	devAccount *DevAccount
}

type NewClientParams struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	DevAccount *DevAccount
}

func NewClient(params NewClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	devAccount := params.DevAccount
	if devAccount != nil && (devAccount.Email == "" || devAccount.PasswordHash == "" || devAccount.UID == "") {
		log.Warnln("identity client: incomplete dev account, ignoring it")
		devAccount = nil
	}
	return &Client{
		baseURL:    strings.TrimSuffix(params.BaseURL, "/"),
		apiKey:     params.APIKey,
		httpClient: httpClient,
		devAccount: devAccount,
	}
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type oobCodeRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

type accountResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn verifies the password with the provider and returns the user id.
func (c *Client) SignIn(ctx context.Context, email, password string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "identity.signIn")
	defer tracing.EndSpanWithErrCheck(span, &err)

	if err := ValidateLogin(email, password); err != nil {
		return "", err
	}

	if uid, ok := c.devSignIn(email, password); ok {
		span.SetAttributes(attribute.Bool("dev", true))
		log.Debugf("identity: dev account signed in as %s", uid)
		return uid, nil
	}

	var resp accountResponse
	req := passwordRequest{Email: email, Password: password, ReturnSecureToken: true}
	if err := c.post(ctx, opSignIn, "accounts:signInWithPassword", req, &resp); err != nil {
		return "", err
	}
	if resp.LocalID == "" {
		return "", fmt.Errorf("%w: sign in response without user id", ErrAuthFailed)
	}
	return resp.LocalID, nil
}

// SignUp creates an account and returns the new user id.
func (c *Client) SignUp(ctx context.Context, email, password string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "identity.signUp")
	defer tracing.EndSpanWithErrCheck(span, &err)

	var resp accountResponse
	req := passwordRequest{Email: email, Password: password, ReturnSecureToken: true}
	if err := c.post(ctx, opSignUp, "accounts:signUp", req, &resp); err != nil {
		return "", err
	}
	if resp.LocalID == "" {
		return "", fmt.Errorf("%w: sign up response without user id", ErrAuthFailed)
	}
	return resp.LocalID, nil
}

// SendPasswordReset asks the provider to mail a password reset link.
func (c *Client) SendPasswordReset(ctx context.Context, email string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "identity.sendPasswordReset")
	defer tracing.EndSpanWithErrCheck(span, &err)

	if strings.TrimSpace(email) == "" {
		return ErrMissingEmail
	}

	req := oobCodeRequest{RequestType: "PASSWORD_RESET", Email: email}
	return c.post(ctx, opReset, "accounts:sendOobCode", req, nil)
}

func (c *Client) devSignIn(email, password string) (string, bool) {
	if c.devAccount == nil {
		return "", false
	}
	if !strings.EqualFold(strings.TrimSpace(email), c.devAccount.Email) {
		return "", false
	}
	if !pkg.CheckPasswordHash(password, c.devAccount.PasswordHash) {
		return "", false
	}
	return c.devAccount.UID, true
}

func (c *Client) post(ctx context.Context, op, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", op, err)
	}

	reqURL := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", pkg.ContentType.JSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			log.Debugf("identity %s: undecodable error body: %s", op, body)
		}
		return &ProviderError{
			Op:         op,
			Code:       errorCode(errResp.Error.Message),
			StatusCode: resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
