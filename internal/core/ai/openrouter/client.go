package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"fridgechef/internal/core/ai/provider"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Client talks to the OpenRouter chat-completions API.
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient creates an OpenRouter client.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://fridgechef.app").
		SetHeader("X-Title", "FridgeChef")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate sends a chat completion request and returns the raw model
// output. Implements provider.Provider.
func (c *Client) Generate(ctx context.Context, req *provider.Request) (string, error) {
	msgContent := []map[string]interface{}{
		{
			"type": "text",
			"text": strings.TrimSpace(req.Prompt),
		},
	}
	if req.ImageURL != "" {
		url := req.ImageURL
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "data:image/") {
			url = fmt.Sprintf("data:image/jpeg;base64,%s", url)
		}
		msgContent = append(msgContent, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]string{
				"url": url,
			},
		})
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.config.OpenRouter.MaxTokens
	}

	body := map[string]interface{}{
		"model": req.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": msgContent,
			},
		},
		"max_tokens": maxTokens,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned error: %s", resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	return result.Choices[0].Message.Content, nil
}
