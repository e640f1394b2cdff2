package openai

import (
	"bytes"
	"context"

	"github.com/chriscow/voicebot-go/pkg/ai"
	"github.com/chriscow/voicebot-go/pkg/ai/stt"
	"github.com/chriscow/voicebot-go/pkg/audio/wav"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultTranscribeModel is used when no model is configured.
const DefaultTranscribeModel = openai.Whisper1

// WhisperSTT implements the STT interface using OpenAI transcription.
type WhisperSTT struct {
	model    string
	language string

	// newClient builds the API client per call from the request credential,
	// matching how the presentation layer hands the key in. Replaceable in tests.
	newClient func(credential string) *openai.Client
}

// NewWhisperSTT creates a Whisper STT provider. The model defaults to
// whisper-1; gpt-4o-mini-transcribe is also accepted by the API.
func NewWhisperSTT(cfg Config) *WhisperSTT {
	model := cfg.Model
	if model == "" {
		model = DefaultTranscribeModel
	}
	return &WhisperSTT{
		model:     model,
		language:  cfg.Language,
		newClient: openai.NewClient,
	}
}

// Transcribe converts one recorded WAV utterance to text. The payload is
// validated locally before any network call so malformed audio never reaches
// the API.
func (w *WhisperSTT) Transcribe(ctx context.Context, req stt.TranscribeRequest) (stt.Transcript, error) {
	if len(req.Audio) == 0 {
		return stt.Transcript{}, ai.NewError(ai.ErrInvalidInput, "stt.transcribe",
			"audio payload is empty", nil)
	}
	if _, err := wav.Decode(req.Audio); err != nil {
		return stt.Transcript{}, ai.NewError(ai.ErrInvalidInput, "stt.transcribe",
			"audio payload is not a valid WAV file", err)
	}
	if req.Credential == "" {
		return stt.Transcript{}, ai.NewError(ai.ErrConfiguration, "stt.transcribe",
			"API credential is not configured", nil)
	}

	language := req.Language
	if language == "" {
		language = w.language
	}

	resp, err := w.newClient(req.Credential).CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		Language: language,
		Format:   openai.AudioResponseFormatJSON,
		Reader:   bytes.NewReader(req.Audio),
		FilePath: "input.wav", // the API requires a file name for in-memory readers
	})
	if err != nil {
		return stt.Transcript{}, classify(err, "stt.transcribe")
	}

	return stt.Transcript{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}

// Capabilities returns the provider's capabilities.
func (w *WhisperSTT) Capabilities() stt.STTCapabilities {
	return stt.STTCapabilities{
		SupportedLanguages: []string{
			"en", "zh", "de", "es", "ru", "ko", "fr", "ja", "pt", "tr", "pl", "nl",
			"ar", "sv", "it", "id", "hi", "fi", "vi", "he", "uk", "el", "cs", "ro",
		},
		SampleRates: []int{8000, 16000, 22050, 24000, 44100, 48000},
	}
}
