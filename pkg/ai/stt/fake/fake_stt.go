// Package fake provides a fake STT implementation for testing.
package fake

import (
	"context"

	"github.com/chriscow/voicebot-go/pkg/ai/stt"
)

// FakeSTT is a fake STT provider returning a canned transcript or error.
type FakeSTT struct {
	Transcript string
	Err        error

	// Calls records every request for assertions.
	Calls []stt.TranscribeRequest
}

// NewFakeSTT creates a fake STT provider that returns the given transcript.
func NewFakeSTT(transcript string) *FakeSTT {
	return &FakeSTT{Transcript: transcript}
}

// NewFailingSTT creates a fake STT provider that always fails with err.
func NewFailingSTT(err error) *FakeSTT {
	return &FakeSTT{Err: err}
}

// Transcribe returns the canned transcript or error.
func (f *FakeSTT) Transcribe(ctx context.Context, req stt.TranscribeRequest) (stt.Transcript, error) {
	f.Calls = append(f.Calls, req)
	if f.Err != nil {
		return stt.Transcript{}, f.Err
	}
	return stt.Transcript{Text: f.Transcript, Language: req.Language}, nil
}

// Capabilities returns the fake provider capabilities.
func (f *FakeSTT) Capabilities() stt.STTCapabilities {
	return stt.STTCapabilities{
		SupportedLanguages: []string{"en", "ko"},
		SampleRates:        []int{16000, 44100, 48000},
	}
}
