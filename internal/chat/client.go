// Package chat proxies conversations to the upstream completion service and
// re-streams the output fragment by fragment.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/giftgrug/giftgrug/pkg/models"
	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned when no upstream API key is present.
var ErrNotConfigured = errors.New("completion service not configured")

// Fragment is one unit of streamed output. Err is set on the final fragment
// of a stream that failed mid-flight.
type Fragment struct {
	Content string
	Err     error
}

// Completer produces streamed completions for a conversation
type Completer interface {
	StreamCompletion(ctx context.Context, messages []models.ChatMessage) (<-chan Fragment, error)
	Configured() bool
}

// Client wraps the upstream completion API
type Client struct {
	api    *openai.Client
	model  string
	buffer int
}

// NewClient creates a completion client. An empty API key yields a client
// that reports itself unconfigured rather than an error, so the server can
// still boot for local development.
func NewClient(apiKey, model string, buffer int) *Client {
	var api *openai.Client
	if apiKey != "" {
		api = openai.NewClient(apiKey)
	}
	if buffer <= 0 {
		buffer = 32
	}

	return &Client{
		api:    api,
		model:  model,
		buffer: buffer,
	}
}

// Configured reports whether an upstream API key is present
func (c *Client) Configured() bool {
	return c.api != nil
}

// StreamCompletion submits the conversation, prefixed with the system
// prompt, and returns a channel of output fragments. An error return means
// the upstream call failed before any output was produced. The producer
// goroutine stops on context cancellation so a disconnected client releases
// the upstream connection.
func (c *Client) StreamCompletion(ctx context.Context, messages []models.ChatMessage) (<-chan Fragment, error) {
	if c.api == nil {
		return nil, ErrNotConfigured
	}

	apiMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	apiMessages = append(apiMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: GrugSystemPrompt,
	})
	for _, m := range messages {
		apiMessages = append(apiMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: apiMessages,
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start completion stream: %w", err)
	}

	fragments := make(chan Fragment, c.buffer)

	go func() {
		defer close(fragments)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				select {
				case fragments <- Fragment{Err: fmt.Errorf("stream interrupted: %w", err)}:
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
			case fragments <- Fragment{Content: content}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return fragments, nil
}
