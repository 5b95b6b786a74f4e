package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"familyconnect/pkg/config"
)

// Client implements Completer over a generateContent-style HTTP endpoint.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	system   string
	maxBody  int64
	httpc    *http.Client
}

// NewClient builds a Client from the assistant configuration.
func NewClient(cfg config.AssistantConfig, apiKey string) *Client {
	timeout := cfg.Timeout.Duration()
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	maxBody := cfg.MaxResponseBytes.Int64()
	if maxBody <= 0 {
		maxBody = 64 << 10
	}
	return &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   apiKey,
		system:   cfg.SystemInstruction,
		maxBody:  maxBody,
		httpc:    &http.Client{Timeout: timeout},
	}
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Role  string        `json:"role"`
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Model             string    `json:"model"`
	SystemInstruction string    `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Complete sends the transcript plus the new message to the backend and
// returns the response text. Prior assistant turns are tagged "model" on
// the wire, everything else "user".
func (c *Client) Complete(ctx context.Context, message string, history []Turn) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("assistant endpoint not configured")
	}
	req := generateRequest{Model: c.model, SystemInstruction: c.system}
	for _, t := range history {
		role := "user"
		if t.Role == RoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []contentPart{{Text: t.Text}}})
	}
	req.Contents = append(req.Contents, content{Role: "user", Parts: []contentPart{{Text: message}}})

	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	hreq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		hreq.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.httpc.Do(hreq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant backend status %d", resp.StatusCode)
	}
	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("invalid assistant response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("assistant backend error: %s", out.Error)
	}
	return out.Text, nil
}
