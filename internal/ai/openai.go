package ai

import (
	"context"
	"fmt"

	"github.com/crowdwisdom/marketbrief/internal/models"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const summarySystemPrompt = "You are a senior financial analyst. Provide a concise summary of the key " +
	"financial events and market movements, under 500 words, with an executive summary, " +
	"key developments as bullet points, notable corporate news and an economic outlook."

// OpenAIClient implements both the summarization and translation
// capabilities on top of the Chat Completions API.
type OpenAIClient struct {
	client openai.Client
	model  openai.ChatModel
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModelGPT4oMini,
	}
}

func (c *OpenAIClient) Summarize(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, summarySystemPrompt,
		fmt.Sprintf("Summarize this financial news:\n\n%s", text))
}

func (c *OpenAIClient) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	prompt := fmt.Sprintf("Translate this financial summary to %s (%s). Keep the formatting and "+
		"preserve numerical data exactly. Use proper %s financial terminology:\n\n%s",
		target.Name, target.NativeName, target.Name, text)
	return c.complete(ctx, "You are a professional financial translator.", prompt)
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string) (string, error) {
	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(2000),
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return response.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Name() string {
	return "openai"
}
