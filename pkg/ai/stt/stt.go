// Package stt defines the speech-to-text provider interface. Providers take
// a complete recorded utterance (single-channel PCM WAV as produced by the
// recorder) and return a best-effort transcript in one blocking round trip.
package stt

import (
	"context"

	"github.com/chriscow/voicebot-go/pkg/ai"
)

// STT-specific error kinds re-exported for callers that only import this package.
var (
	ErrAuth         = ai.ErrAuth
	ErrInvalidInput = ai.ErrInvalidInput
	ErrProvider     = ai.ErrProvider
)

// TranscribeRequest contains a recorded utterance to transcribe.
type TranscribeRequest struct {
	Audio      []byte // single-channel PCM WAV payload
	Language   string // optional hint, ISO-639-1
	Credential string // API credential collected by the presentation layer
}

// Transcript is the result of a transcription round trip. An empty Text is a
// valid (if unhelpful) result and is recorded as-is by the caller.
type Transcript struct {
	Text     string
	Language string
	Duration float64 // audio duration in seconds, when the provider reports it
}

// STTCapabilities describes the capabilities of an STT provider.
type STTCapabilities struct {
	SupportedLanguages []string
	SampleRates        []int
}

// STT is the main interface for speech-to-text providers.
type STT interface {
	// Transcribe converts one recorded utterance to text.
	Transcribe(ctx context.Context, req TranscribeRequest) (Transcript, error)

	// Capabilities returns the provider's capabilities.
	Capabilities() STTCapabilities
}
