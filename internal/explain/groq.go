package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
)

// GroqConfig configures the Groq chat-completions client.
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GroqClient generates explanations via the Groq chat-completions API.
type GroqClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGroqClient creates a Groq-backed explainer.
func NewGroqClient(cfg GroqConfig) *GroqClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GroqClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger for request diagnostics.
func (c *GroqClient) SetLogger(l *zap.Logger) {
	c.logger = l
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a clinical pharmacogenomics expert. Respond with a JSON object " +
	"containing the keys summary, biological_mechanism, variant_significance and " +
	"clinical_implications. Each value is 2-3 plain sentences for a clinician audience."

// Explain requests a narrative explanation for one classified drug. A
// transport or decoding failure is returned as an error; callers are
// expected to substitute the Nop placeholder and continue.
func (c *GroqClient) Explain(ctx context.Context, req Request) (Explanation, error) {
	user := fmt.Sprintf(
		"Drug: %s\nPrimary gene: %s\nDiplotype: %s\nPhenotype: %s\nRisk label: %s\nSeverity: %s\nGuideline recommendation: %s",
		req.Drug, req.Gene, req.Diplotype, req.Phenotype, req.RiskLabel, req.Severity, req.Recommendation)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: user},
		},
		Temperature:    0.3,
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return Explanation{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Explanation{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Explanation{}, fmt.Errorf("call explanation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("explanation service returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.String("drug", req.Drug))
		return Explanation{}, fmt.Errorf("explanation service: status %d: %s", resp.StatusCode, payload)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Explanation{}, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return Explanation{}, fmt.Errorf("explanation service: empty choices")
	}

	var exp Explanation
	if err := json.Unmarshal([]byte(decoded.Choices[0].Message.Content), &exp); err != nil {
		return Explanation{}, fmt.Errorf("decode explanation content: %w", err)
	}
	exp.Success = true
	return exp, nil
}
