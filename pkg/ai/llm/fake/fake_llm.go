// Package fake provides a fake LLM implementation for testing.
package fake

import (
	"context"

	"github.com/chriscow/voicebot-go/pkg/ai/llm"
)

// FakeLLM is a fake LLM provider cycling through canned responses.
type FakeLLM struct {
	Responses []string
	Err       error

	// Requests records every chat request for assertions.
	Requests  []llm.ChatRequest
	callCount int
}

// NewFakeLLM creates a fake LLM provider with predefined responses.
func NewFakeLLM(responses ...string) *FakeLLM {
	if len(responses) == 0 {
		responses = []string{"This is a fake response from the fake LLM provider."}
	}
	return &FakeLLM{Responses: responses}
}

// NewFailingLLM creates a fake LLM provider that always fails with err.
func NewFailingLLM(err error) *FakeLLM {
	return &FakeLLM{Err: err}
}

// Chat returns the next canned response or the configured error.
func (f *FakeLLM) Chat(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return llm.ChatResponse{}, f.Err
	}
	response := f.Responses[f.callCount%len(f.Responses)]
	f.callCount++
	return llm.ChatResponse{
		Message:      llm.Message{Role: llm.RoleAssistant, Content: response},
		TokensUsed:   len(response),
		FinishReason: "stop",
	}, nil
}

// Capabilities returns the fake LLM capabilities.
func (f *FakeLLM) Capabilities() llm.LLMCapabilities {
	return llm.LLMCapabilities{
		SupportedModels:    []string{"fake-model-1", "fake-model-2"},
		SupportsSystemRole: true,
		MaxTokens:          4096,
	}
}
