package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/2beens/fitforge/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// ErrNotFound is returned by Get when the document at the path does not exist.
var ErrNotFound = errors.New("document not found")

// StatusError is returned for any non-2xx response from the store.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("docstore %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to a hierarchical JSON document store over REST. Every document
// lives at {baseURL}/{path}.json. There are no retries and no timeouts other
// than the ones carried by the caller's context.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

func NewClient(baseURL, authToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		authToken:  authToken,
		httpClient: httpClient,
	}
}

// Get decodes the document at path into out. A missing document (the store
// answers with a JSON null) returns ErrNotFound and leaves out untouched.
func (c *Client) Get(ctx context.Context, path string, out any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.get")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("path", path))

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if isNull(body) {
		return ErrNotFound
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Post appends in as a new child of the collection at path and returns the
// key the store generated for it.
func (c *Client) Post(ctx context.Context, path string, in any) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.post")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("path", path))

	body, err := c.do(ctx, http.MethodPost, path, in)
	if err != nil {
		return "", err
	}

	var resp struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode post response: %w", err)
	}
	if resp.Name == "" {
		return "", errors.New("post response without a generated key")
	}
	return resp.Name, nil
}

// Put replaces the document at path.
func (c *Client) Put(ctx context.Context, path string, in any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.put")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("path", path))

	_, err = c.do(ctx, http.MethodPut, path, in)
	return err
}

// Patch merges the top level fields of in into the document at path.
func (c *Client) Patch(ctx context.Context, path string, in any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.patch")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("path", path))

	_, err = c.do(ctx, http.MethodPatch, path, in)
	return err
}

func (c *Client) Delete(ctx context.Context, path string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.delete")
	defer tracing.EndSpanWithErrCheck(span, &err)
	span.SetAttributes(attribute.String("path", path))

	_, err = c.do(ctx, http.MethodDelete, path, nil)
	return err
}

// List reads the collection at path as a map of generated keys to raw
// documents and returns the keys in ascending order. Generated keys are
// chronological, so this is creation order. A missing collection is empty.
func (c *Client) List(ctx context.Context, path string) ([]string, map[string]json.RawMessage, error) {
	docs := map[string]json.RawMessage{}
	if err := c.Get(ctx, path, &docs); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, docs, nil
		}
		return nil, nil, err
	}

	keys := make([]string, 0, len(docs))
	for k, raw := range docs {
		if isNull(raw) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, docs, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reqBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("docstore %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return body, nil
}

func (c *Client) url(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	u := c.baseURL + "/" + strings.Join(segments, "/") + ".json"
	if c.authToken != "" {
		u += "?auth=" + url.QueryEscape(c.authToken)
	}
	return u
}

func isNull(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
