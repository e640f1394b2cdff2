package openai

import (
	"context"

	"github.com/chriscow/voicebot-go/pkg/ai"
	"github.com/chriscow/voicebot-go/pkg/ai/llm"
	openai "github.com/sashabaranov/go-openai"
)

// ChatModels is the enumerated model set the presentation layer offers.
var ChatModels = []string{"gpt-4o-mini", "gpt-4.1-mini", "gpt-3.5-turbo"}

// DefaultChatModel is used when the request names no model.
const DefaultChatModel = "gpt-4o-mini"

// GPTLLM implements the LLM interface using OpenAI chat completion.
type GPTLLM struct {
	model string

	newClient func(credential string) *openai.Client
}

// NewGPTLLM creates a GPT chat completion provider. The configured model is a
// fallback; requests normally carry their own model choice.
func NewGPTLLM(cfg Config) *GPTLLM {
	model := cfg.Model
	if model == "" {
		model = DefaultChatModel
	}
	return &GPTLLM{model: model, newClient: openai.NewClient}
}

// Chat sends the full message history and returns the assistant reply.
func (g *GPTLLM) Chat(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	if req.Credential == "" {
		return llm.ChatResponse{}, ai.NewError(ai.ErrConfiguration, "llm.chat",
			"API credential is not configured", nil)
	}

	model := req.Model
	if model == "" {
		model = g.model
	}

	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	resp, err := g.newClient(req.Credential).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return llm.ChatResponse{}, classify(err, "llm.chat")
	}
	if len(resp.Choices) == 0 {
		return llm.ChatResponse{}, ai.NewError(ai.ErrProvider, "llm.chat",
			"no completion choices returned", nil)
	}

	choice := resp.Choices[0]
	return llm.ChatResponse{
		Message: llm.Message{
			Role:    llm.MessageRole(choice.Message.Role),
			Content: choice.Message.Content,
		},
		TokensUsed:   resp.Usage.TotalTokens,
		FinishReason: string(choice.FinishReason),
	}, nil
}

// Capabilities returns the provider's capabilities.
func (g *GPTLLM) Capabilities() llm.LLMCapabilities {
	return llm.LLMCapabilities{
		SupportedModels:    ChatModels,
		SupportsSystemRole: true,
		MaxTokens:          4096,
	}
}
