// Package vision extracts category/score pairs from an uploaded life-wheel
// image through a multimodal generateContent endpoint. The vendor is a
// black box behind the request/response contract here.
package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

var (
	// ErrNotConfigured means no API key was supplied; the feature is
	// disabled rather than failing at call time.
	ErrNotConfigured = errors.New("vision: API key not configured")

	// ErrBadResponse means the model answered with something that does not
	// parse into the expected schema.
	ErrBadResponse = errors.New("vision: malformed model response")
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const extractionPrompt = "Analise esta imagem da Roda da Vida. Identifique cada categoria e a " +
	"pontuação preenchida (de 0 a 10). Retorne um array de objetos JSON com 'category' e 'score'."

// ScoreResult is one extracted category/score pair.
type ScoreResult struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

type Client struct {
	http   *resty.Client
	apiKey string
	model  string
	logger internal.Logger
}

func NewClient(baseURL, apiKey, model string, logger internal.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)
	return &Client{http: c, apiKey: apiKey, model: model, logger: logger}
}

// Enabled reports whether extraction can be attempted.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// --- generateContent request/response binding ---

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeWheel sends the image and returns the extracted scores. Failure
// leaves the caller free to fall back to manual entry.
func (c *Client) AnalyzeWheel(ctx context.Context, image []byte, mimeType string) ([]ScoreResult, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: extractionPrompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(&reqBody).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		c.logger.Errorf("vision: request failed: %v", err)
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		c.logger.Errorf("vision: status %d: %s", resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("vision: status %d", resp.StatusCode())
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, ErrBadResponse
	}

	return ParseScores(gr.Candidates[0].Content.Parts[0].Text)
}

// ParseScores decodes the model's JSON array, tolerating markdown code
// fences around the payload.
func ParseScores(text string) ([]ScoreResult, error) {
	text = StripFences(text)
	if text == "" {
		return nil, ErrBadResponse
	}
	var results []ScoreResult
	if err := json.Unmarshal([]byte(text), &results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(results) == 0 {
		return nil, ErrBadResponse
	}
	for _, r := range results {
		if r.Category == "" || r.Score < 0 || r.Score > 10 {
			return nil, ErrBadResponse
		}
	}
	return results, nil
}

// StripFences removes a surrounding markdown code block, if present.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
