// Package ai holds the client that asks an OpenAI-style chat endpoint for a
// raw game-analysis payload. The model is untrusted to emit clean JSON, so
// the response content is scrubbed of markdown fences and chatter before
// unmarshal. Whatever survives parsing is still treated as untrusted; the
// normalization pipeline owns all shape guarantees.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"pregame/internal/config"
	"pregame/models"
)

const systemPrompt = "You are a sports betting analyst. Respond with a single JSON object containing your game analysis: opening_summary, matchup_edges, model_win_probability (home_win_prob/away_win_prob), ai_spread_pick, ai_total_pick, best_bets, key_stats, trends."

// PayloadClient requests analysis payloads from the upstream model
type PayloadClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// NewPayloadClient creates a client from AI configuration
func NewPayloadClient(cfg config.AIConfig) *PayloadClient {
	return &PayloadClient{
		apiKey:      cfg.OpenAIKey,
		baseURL:     "https://api.openai.com/v1",
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string         `json:"model"`
	Messages            []chatMessage  `json:"messages"`
	Temperature         float64        `json:"temperature,omitempty"`
	MaxCompletionTokens int            `json:"max_completion_tokens,omitempty"`
	ResponseFormat      responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GeneratePayload asks the model for an analysis of one matchup and returns
// the raw, untrusted payload
func (c *PayloadClient) GeneratePayload(ctx context.Context, sport, matchup string) (models.RawPayload, error) {
	prompt := fmt.Sprintf("Analyze the upcoming %s game: %s.", sport, matchup)
	log.Printf("[PayloadClient] Requesting analysis - model=%s, sport=%s, matchup=%s", c.model, sport, matchup)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:         c.temperature,
		MaxCompletionTokens: c.maxTokens,
		ResponseFormat:      responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model API error (status %d): %s", resp.StatusCode, string(detail))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	log.Printf("[PayloadClient] Response received in %v (%d bytes)", time.Since(start), len(raw))

	var envelope chatResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response envelope: %w", err)
	}
	if len(envelope.Choices) == 0 {
		return nil, fmt.Errorf("no choices in model response")
	}

	content := CleanJSONContent(envelope.Choices[0].Message.Content)

	payload := make(models.RawPayload)
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse payload JSON: %w", err)
	}
	return payload, nil
}

// CleanJSONContent strips markdown code fences and conversational chatter
// that models sometimes wrap around JSON output
func CleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Drop leading chatter lines before the first JSON bracket
	if idx := strings.IndexAny(content, "{["); idx > 0 {
		prefix := content[:idx]
		if !strings.ContainsAny(prefix, "{[") {
			lines := strings.Split(prefix, "\n")
			last := strings.TrimSpace(lines[len(lines)-1])
			if last == "" || looksLikeChatter(last) {
				content = content[idx:]
			}
		}
	}

	return strings.TrimSpace(content)
}

func looksLikeChatter(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range []string{"here is", "here's", "the json", "output:", "response:", "below is", "following is"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
