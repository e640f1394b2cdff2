// Package fake provides a fake TTS implementation for testing.
package fake

import (
	"context"

	"github.com/chriscow/voicebot-go/pkg/ai"
	"github.com/chriscow/voicebot-go/pkg/ai/tts"
)

// FakeTTS is a fake TTS provider returning canned audio bytes.
type FakeTTS struct {
	Audio tts.Audio
	Err   error

	// Requests records every synthesize request for assertions.
	Requests []tts.SynthesizeRequest
}

// NewFakeTTS creates a fake TTS provider with a small canned mp3 payload.
func NewFakeTTS() *FakeTTS {
	return &FakeTTS{Audio: tts.Audio{Data: []byte("fake-mp3-bytes"), Format: "audio/mpeg"}}
}

// NewFailingTTS creates a fake TTS provider that always fails with err.
func NewFailingTTS(err error) *FakeTTS {
	return &FakeTTS{Err: err}
}

// Synthesize returns the canned audio or error. Empty text fails the same way
// real providers do.
func (f *FakeTTS) Synthesize(ctx context.Context, req tts.SynthesizeRequest) (tts.Audio, error) {
	f.Requests = append(f.Requests, req)
	if req.Text == "" {
		return tts.Audio{}, ai.NewError(ai.ErrInvalidInput, "tts.synthesize", "no text to synthesize", nil)
	}
	if f.Err != nil {
		return tts.Audio{}, f.Err
	}
	return f.Audio, nil
}

// Capabilities returns the fake provider capabilities.
func (f *FakeTTS) Capabilities() tts.TTSCapabilities {
	return tts.TTSCapabilities{
		SupportedLanguages: []string{"en", "ko"},
		OutputFormat:       "audio/mpeg",
	}
}
