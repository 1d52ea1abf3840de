// Package apiclient talks to the fitforge HTTP API on behalf of the terminal client.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2beens/fitforge/internal/chatbot"
	"github.com/2beens/fitforge/internal/diets"
	"github.com/2beens/fitforge/internal/workouts"
)

var ErrNotSignedIn = errors.New("not signed in, run fitctl login first")

// StatusError is a non 2xx answer. Message is the trimmed response body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d", e.StatusCode)
	}
	return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

type LoginResult struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res, false)
	return res, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/logout", nil, nil, true)
}

func (c *Client) Workouts(ctx context.Context, category workouts.Category, search string) ([]workouts.Workout, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", string(category))
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/workouts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var list []workouts.Workout
	err := c.do(ctx, http.MethodGet, path, nil, &list, true)
	return list, err
}

func (c *Client) Workout(ctx context.Context, id string) (workouts.Workout, error) {
	var w workouts.Workout
	err := c.do(ctx, http.MethodGet, "/workouts/"+url.PathEscape(id), nil, &w, true)
	return w, err
}

func (c *Client) Diets(ctx context.Context) ([]diets.Plan, error) {
	var plans []diets.Plan
	err := c.do(ctx, http.MethodGet, "/diets", nil, &plans, true)
	return plans, err
}

func (c *Client) Chat(ctx context.Context, prompt string) (chatbot.Reply, error) {
	var reply chatbot.Reply
	err := c.do(ctx, http.MethodPost, "/chat", map[string]string{"prompt": prompt}, &reply, true)
	return reply, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, authenticated bool) error {
	if authenticated && c.token == "" {
		return ErrNotSignedIn
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
