package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/2beens/fitforge/internal/telemetry/tracing"
)

const noResponseReply = "No response."

// GeneratorClient asks the text generation service for a reply to prompts
// no rule matched.
type GeneratorClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGeneratorClient(baseURL string, httpClient *http.Client) *GeneratorClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeneratorClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate posts the prompt to {baseURL}/generate. A non 2xx answer becomes
// the reply "Error {status}" and an empty answer becomes "No response.";
// only transport failures are returned as errors.
func (c *GeneratorClient) Generate(ctx context.Context, prompt string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "chatbot.generator.generate")
	defer tracing.EndSpanWithErrCheck(span, &err)

	payload, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("encode prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Sprintf("Error %d", resp.StatusCode), nil
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Response == "" {
		return noResponseReply, nil
	}
	return out.Response, nil
}
