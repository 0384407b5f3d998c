package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/promptlens/internal/domain/ai"
	"github.com/bryanwahyu/promptlens/internal/infra/ai/prompt"
)

const (
	defaultModel     = "gpt-4o-mini"
	defaultMaxTokens = 1024
)

// Config for any OpenAI-compatible chat completion endpoint.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

type Client struct {
	*openai.Client
	Model     string
	MaxTokens int
}

func NewClient(cfg Config) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &Client{Client: openai.NewClientWithConfig(oc), Model: cfg.Model, MaxTokens: cfg.MaxTokens}
}

// Describe sends the image plus the fixed instruction in one user message.
func (c *Client) Describe(ctx context.Context, r ai.Request) (ai.Reply, error) {
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    r.Image.String(),
							Detail: openai.ImageURLDetailAuto,
						},
					},
					{Type: openai.ChatMessagePartTypeText, Text: prompt.GetInstruction()},
				},
			},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return ai.Reply{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	return replyFromResponse(resp), nil
}

// replyFromResponse maps the first choice into tagged content blocks.
func replyFromResponse(resp openai.ChatCompletionResponse) ai.Reply {
	if len(resp.Choices) == 0 {
		return ai.Reply{}
	}
	msg := resp.Choices[0].Message

	var blocks []ai.ContentBlock
	if msg.Content != "" {
		blocks = append(blocks, ai.ContentBlock{Kind: ai.BlockText, Text: msg.Content})
	}
	for _, part := range msg.MultiContent {
		switch part.Type {
		case openai.ChatMessagePartTypeText:
			blocks = append(blocks, ai.ContentBlock{Kind: ai.BlockText, Text: part.Text})
		case openai.ChatMessagePartTypeImageURL:
			if part.ImageURL != nil {
				blocks = append(blocks, ai.ContentBlock{Kind: ai.BlockImage, URL: part.ImageURL.URL})
			}
		}
	}
	if msg.Refusal != "" {
		blocks = append(blocks, ai.ContentBlock{Kind: ai.BlockRefusal, Text: msg.Refusal})
	}
	return ai.Reply{Blocks: blocks}
}
