// Package openai generates narrative scan summaries through an
// OpenAI-compatible chat completion API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/avolkov/dirscope/internal/core/domain"
)

const systemPrompt = `You are a file organization expert. You receive a JSON summary of a directory scan.
Respond with a JSON object of the form {"insights": ["..."], "recommendation": "..."}.
Provide three to five short insights about the file collection and one actionable
recommendation for organizing it better. Respond with JSON only.`

type Client struct {
	api   *openai.Client
	model string
}

func New(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

func (c *Client) Summarize(ctx context.Context, dataSummary string) (*domain.InsightSummary, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: dataSummary},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat completion: no choices in response")
	}

	var summary domain.InsightSummary
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &summary); err != nil {
		return nil, fmt.Errorf("parse insight response: %w", err)
	}
	if len(summary.Insights) == 0 && summary.Recommendation == "" {
		return nil, fmt.Errorf("parse insight response: empty payload")
	}
	return &summary, nil
}
