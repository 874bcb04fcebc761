package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client asks a Gemini model for campaign subject lines
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Gemini client. An empty baseURL uses the public endpoint.
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

const subjectPrompt = `You are an expert in content creation and email marketing.
Generate ONE professional email subject and ONE clear purpose for a campaign related to the category: '%s'.
The tone should be neutral, professional, and informative.
Return only this JSON: {"subject": "...", "purpose": "..."}`

// GenerateSubject returns one subject and purpose for category
func (c *Client) GenerateSubject(ctx context.Context, category string) (models.SubjectLine, error) {
	text, err := c.generate(ctx, fmt.Sprintf(subjectPrompt, category))
	if err != nil {
		return models.SubjectLine{}, err
	}
	return parseSubject(text)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini api key is not configured")
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// parseSubject extracts the JSON object from a model answer, which may be
// wrapped in a markdown code fence
func parseSubject(text string) (models.SubjectLine, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return models.SubjectLine{}, fmt.Errorf("no JSON object in model answer")
	}

	var line models.SubjectLine
	if err := json.Unmarshal([]byte(text[start:end+1]), &line); err != nil {
		return models.SubjectLine{}, fmt.Errorf("failed to parse model answer: %w", err)
	}
	line.Subject = strings.TrimSpace(line.Subject)
	line.Purpose = strings.TrimSpace(line.Purpose)
	if line.Subject == "" {
		return models.SubjectLine{}, fmt.Errorf("model answer has no subject")
	}
	return line, nil
}
