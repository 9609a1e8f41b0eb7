package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const defaultAnthropicURL = "https://api.anthropic.com"

// Image formats the Messages API takes as a base64 source.
var claudeMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ClaudeClient reads form photos with the Anthropic Messages API.
type ClaudeClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client

	Stats *Stats
}

func NewClaudeClient(apiKey, model string) *ClaudeClient {
	return &ClaudeClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultAnthropicURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		Stats: NewStats(time.Hour),
	}
}

// WithBaseURL points the client at another endpoint, e.g. a proxy.
func (c *ClaudeClient) WithBaseURL(u string) *ClaudeClient {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

func (c *ClaudeClient) Name() string  { return "claude" }
func (c *ClaudeClient) Model() string { return c.model }

func (c *ClaudeClient) LatencyStats() *Stats { return c.Stats }

// Accepts reports whether the Messages API can read mediaType. TIFF is not
// among them.
func (c *ClaudeClient) Accepts(mediaType string) bool { return claudeMediaTypes[mediaType] }

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type anthropicMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Recognize sends the image followed by the prompt and returns the
// model's text.
func (c *ClaudeClient) Recognize(ctx context.Context, img Image, prompt string) (string, error) {
	if !c.Accepts(img.MediaType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, img.MediaType)
	}
	start := time.Now()
	text, err := c.recognize(ctx, img, prompt)
	if err != nil {
		c.Stats.RecordFailure(time.Since(start).Milliseconds())
		return "", err
	}
	c.Stats.Record(time.Since(start).Milliseconds())
	return text, nil
}

func (c *ClaudeClient) recognize(ctx context.Context, img Image, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: 4096,
		Messages: []anthropicMessage{{
			Role: "user",
			Content: []contentBlock{
				{Type: "image", Source: &imageSource{
					Type:      "base64",
					MediaType: img.MediaType,
					Data:      base64.StdEncoding.EncodeToString(img.Data),
				}},
				{Type: "text", Text: prompt},
			},
		}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: c.Name(), StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if apiResp.Error != nil {
		return "", &ProviderError{Provider: c.Name(), Message: apiResp.Error.Type + ": " + apiResp.Error.Message}
	}

	var sb strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", &ProviderError{Provider: c.Name(), Message: "empty response"}
	}
	return stripCodeFence(sb.String()), nil
}

var codeFenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

// stripCodeFence removes a wrapping Markdown code fence some models add
// despite the prompt.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// Close releases resources.
func (c *ClaudeClient) Close() {
	c.httpClient.CloseIdleConnections()
}
