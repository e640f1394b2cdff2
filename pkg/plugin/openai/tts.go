package openai

import (
	"context"
	"io"

	"github.com/chriscow/voicebot-go/pkg/ai"
	"github.com/chriscow/voicebot-go/pkg/ai/tts"
	"github.com/chriscow/voicebot-go/pkg/audio/wav"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAI TTS emits 24kHz 16-bit mono PCM when asked for raw output.
const (
	ttsSampleRate    = 24000
	ttsChannels      = 1
	ttsBitsPerSample = 16
)

// OpenAITTS implements the TTS interface using OpenAI speech synthesis.
// Unlike STT and LLM, the synthesis contract carries no credential, so the
// key is fixed at construction.
type OpenAITTS struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

// NewOpenAITTS creates an OpenAI TTS provider.
func NewOpenAITTS(cfg Config) (*OpenAITTS, error) {
	if cfg.APIKey == "" {
		return nil, ai.NewError(ai.ErrConfiguration, "tts.new",
			"OpenAI TTS requires an API key", nil)
	}
	voice := openai.SpeechVoice(cfg.Voice)
	if voice == "" {
		voice = openai.VoiceNova
	}
	return &OpenAITTS{
		client: openai.NewClient(cfg.APIKey),
		model:  openai.TTSModel1,
		voice:  voice,
	}, nil
}

// Synthesize converts text to a WAV payload. The API returns raw PCM, which
// is wrapped in a WAV container for the playback sink.
func (o *OpenAITTS) Synthesize(ctx context.Context, req tts.SynthesizeRequest) (tts.Audio, error) {
	if req.Text == "" {
		return tts.Audio{}, ai.NewError(ai.ErrInvalidInput, "tts.synthesize",
			"no text to synthesize", nil)
	}

	voice := o.voice
	if req.Voice != "" {
		voice = openai.SpeechVoice(req.Voice)
	}

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          req.Text,
		Voice:          voice,
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return tts.Audio{}, classify(err, "tts.synthesize")
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return tts.Audio{}, ai.NewError(ai.ErrProvider, "tts.synthesize",
			"failed to read synthesis response", err)
	}

	return tts.Audio{
		Data:   wav.Encode(pcm, ttsSampleRate, ttsChannels, ttsBitsPerSample),
		Format: "audio/wav",
	}, nil
}

// Capabilities returns the provider's capabilities.
func (o *OpenAITTS) Capabilities() tts.TTSCapabilities {
	return tts.TTSCapabilities{
		SupportedLanguages: []string{"en", "ko", "ja", "zh", "es", "fr", "de"},
		SupportedVoices:    []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"},
		OutputFormat:       "audio/wav",
	}
}
