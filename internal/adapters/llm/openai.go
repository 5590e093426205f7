// Package llm provides the hosted chat-completion adapter.
// Clean Architecture: Adapter implementing ports.LLMService.
package llm

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/tanaybasak/lawai/internal/domain/ports"
)

// OpenAIAdapter implements ports.LLMService using the OpenAI chat API.
type OpenAIAdapter struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIAdapter creates a chat-completion adapter. An empty baseURL uses
// the public API; the timeout bounds every request including streaming reads.
func NewOpenAIAdapter(apiKey, baseURL, model string, temperature float32, timeout time.Duration) *OpenAIAdapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	if model == "" {
		model = openai.GPT4TurboPreview
	}
	return &OpenAIAdapter{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
	}
}

// Complete sends the messages and returns the full response text.
func (a *OpenAIAdapter) Complete(ctx context.Context, messages []ports.Message) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.temperature,
		Messages:    toChatMessages(messages),
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream sends the messages and delivers incremental fragments on a channel.
func (a *OpenAIAdapter) Stream(ctx context.Context, messages []ports.Message) (<-chan ports.StreamToken, error) {
	stream, err := a.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.temperature,
		Messages:    toChatMessages(messages),
		Stream:      true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening completion stream")
	}

	ch := make(chan ports.StreamToken, 100)

	go func() {
		defer close(ch)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				select {
				case ch <- ports.StreamToken{Done: true}:
				case <-ctx.Done():
				}
				return
			}
			if err != nil {
				select {
				case ch <- ports.StreamToken{Err: errors.Wrap(err, "reading completion stream")}:
				case <-ctx.Done():
				}
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			content := resp.Choices[0].Delta.Content
			if content == "" {
				continue
			}
			select {
			case ch <- ports.StreamToken{Content: content}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func toChatMessages(messages []ports.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == ports.MessageRoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}
