// Package openai implements the STT, LLM and TTS provider interfaces on top
// of the OpenAI API using the go-openai client: Whisper transcription, GPT
// chat completion and speech synthesis.
package openai

import (
	"github.com/chriscow/voicebot-go/pkg/plugin"
)

func init() {
	plugin.RegisterWithMetadata(&plugin.Plugin{
		Kind:        plugin.KindSTT,
		Name:        "openai",
		Description: "Whisper speech-to-text",
		Version:     "1.0.0",
		Factory: func(cfg map[string]any) (any, error) {
			return NewWhisperSTT(Config{
				Model:    stringOption(cfg, "model"),
				Language: stringOption(cfg, "language"),
			}), nil
		},
	})

	plugin.RegisterWithMetadata(&plugin.Plugin{
		Kind:        plugin.KindLLM,
		Name:        "openai",
		Description: "GPT chat completion",
		Version:     "1.0.0",
		Factory: func(cfg map[string]any) (any, error) {
			return NewGPTLLM(Config{Model: stringOption(cfg, "model")}), nil
		},
	})

	plugin.RegisterWithMetadata(&plugin.Plugin{
		Kind:        plugin.KindTTS,
		Name:        "openai",
		Description: "OpenAI speech synthesis",
		Version:     "1.0.0",
		Factory: func(cfg map[string]any) (any, error) {
			return NewOpenAITTS(Config{
				APIKey: stringOption(cfg, "api_key"),
				Voice:  stringOption(cfg, "voice"),
			})
		},
	})
}

// Config holds the plugin-level options shared by the three providers.
// Credentials for STT and LLM travel per request; only TTS holds its key here
// because the synthesis contract carries no credential.
type Config struct {
	APIKey   string
	Model    string
	Language string
	Voice    string
}

func stringOption(cfg map[string]any, key string) string {
	if cfg == nil {
		return ""
	}
	s, _ := cfg[key].(string)
	return s
}
