package ai

import (
	"context"
	"errors"
	"strings"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	// ErrEmptyPrompt is returned when nothing would be sent to the provider.
	ErrEmptyPrompt = errors.New("prompt must not be empty")
	// ErrEmptyResponse is returned when the provider replied without text.
	ErrEmptyResponse = errors.New("model returned empty response")
)

// Message is a single turn of a chat conversation.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content"`
}

// Generator sends prompts to an LLM provider and returns the raw reply text.
// Replies are not parsed; callers decode them.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, messages []Message) (string, error)
	// Ping performs the cheapest possible round trip to the provider.
	Ping(ctx context.Context) error
	Provider() string
	Model() string
}

// SplitSystem separates system messages from the conversation turns. System
// contents are joined with blank lines; empty turns are dropped.
func SplitSystem(messages []Message) (string, []Message) {
	var system []string
	turns := make([]Message, 0, len(messages))
	for _, msg := range messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		if msg.Role == RoleSystem {
			system = append(system, content)
			continue
		}
		turns = append(turns, Message{Role: msg.Role, Content: content})
	}
	return strings.Join(system, "\n\n"), turns
}
