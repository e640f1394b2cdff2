// Package llm defines the chat-completion provider interface. A provider
// receives the full conversation history (system preamble included) and
// returns the assistant's reply; the conversation package owns the history,
// providers stay stateless.
package llm

import (
	"context"

	"github.com/chriscow/voicebot-go/pkg/ai"
)

// LLM-specific error kinds re-exported for callers that only import this package.
var (
	ErrAuth             = ai.ErrAuth
	ErrModelUnavailable = ai.ErrModelUnavailable
	ErrProvider         = ai.ErrProvider
)

// MessageRole represents the role of a message in a chat conversation.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message represents a single message sent to the chat provider.
type Message struct {
	Role    MessageRole
	Content string
}

// ChatRequest contains parameters for a chat completion request.
// Credential travels per request because the presentation layer collects
// the API key per interaction.
type ChatRequest struct {
	Model      string
	Messages   []Message
	Credential string
}

// ChatResponse contains the assistant reply from a chat completion request.
type ChatResponse struct {
	Message      Message
	TokensUsed   int
	FinishReason string
}

// LLMCapabilities describes the capabilities of an LLM provider.
type LLMCapabilities struct {
	SupportedModels    []string
	SupportsSystemRole bool
	MaxTokens          int
}

// LLM is the main interface for chat completion providers.
type LLM interface {
	// Chat performs a single blocking chat completion round trip.
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)

	// Capabilities returns the provider's capabilities.
	Capabilities() LLMCapabilities
}
