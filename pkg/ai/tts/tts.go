// Package tts defines the text-to-speech provider interface. Providers take
// text and return a playback-compatible audio payload tagged with its MIME
// type so the playback sink knows how to render it.
package tts

import (
	"context"

	"github.com/chriscow/voicebot-go/pkg/ai"
)

// TTS-specific error kinds re-exported for callers that only import this package.
var (
	ErrInvalidInput = ai.ErrInvalidInput
	ErrProvider     = ai.ErrProvider
)

// SynthesizeRequest contains parameters for text-to-speech synthesis.
type SynthesizeRequest struct {
	Text     string
	Language string // two-letter code, e.g. "ko"
	Voice    string // optional, provider-specific
}

// Audio is a synthesized audio payload for the playback sink.
type Audio struct {
	Data   []byte
	Format string // MIME type, e.g. "audio/mpeg" or "audio/wav"
}

// TTSCapabilities describes the capabilities of a TTS provider.
type TTSCapabilities struct {
	SupportedLanguages []string
	SupportedVoices    []string
	OutputFormat       string
}

// TTS is the main interface for text-to-speech providers.
type TTS interface {
	// Synthesize converts non-empty text to an audio payload.
	Synthesize(ctx context.Context, req SynthesizeRequest) (Audio, error)

	// Capabilities returns the provider's capabilities.
	Capabilities() TTSCapabilities
}
