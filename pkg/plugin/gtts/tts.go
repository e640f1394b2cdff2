// Package gtts implements the TTS interface against the unauthenticated
// Google Translate speech endpoint. It returns mp3 audio and defaults to
// Korean, the assistant's spoken language.
package gtts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chriscow/voicebot-go/pkg/ai"
	"github.com/chriscow/voicebot-go/pkg/ai/tts"
	"github.com/chriscow/voicebot-go/pkg/plugin"
)

const (
	// DefaultBaseURL is the Translate speech endpoint.
	DefaultBaseURL = "https://translate.google.com/translate_tts"

	// DefaultLanguage is used when the request carries no language code.
	DefaultLanguage = "ko"

	// maxChunkRunes bounds one request's text; the endpoint truncates
	// anything much longer.
	maxChunkRunes = 200
)

func init() {
	plugin.RegisterWithMetadata(&plugin.Plugin{
		Kind:        plugin.KindTTS,
		Name:        "gtts",
		Description: "Google Translate speech synthesis",
		Version:     "1.0.0",
		Factory: func(cfg map[string]any) (any, error) {
			language, _ := cfg["language"].(string)
			return New(Config{Language: language}), nil
		},
	})
}

// Config holds the synthesizer options. BaseURL is overridable for tests.
type Config struct {
	BaseURL    string
	Language   string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// TTS implements the TTS interface via the Translate speech endpoint.
type TTS struct {
	baseURL    string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Translate TTS provider.
func New(cfg Config) *TTS {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &TTS{
		baseURL:    cfg.BaseURL,
		language:   cfg.Language,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
}

// Synthesize converts text to an mp3 payload. Long text is split into chunks
// the endpoint accepts and the mp3 segments concatenated. The response is
// staged through a temp file that is removed before returning on every exit
// path; cleanup failure is logged, not propagated.
func (t *TTS) Synthesize(ctx context.Context, req tts.SynthesizeRequest) (tts.Audio, error) {
	if req.Text == "" {
		return tts.Audio{}, ai.NewError(ai.ErrInvalidInput, "tts.synthesize",
			"no text to synthesize", nil)
	}

	language := req.Language
	if language == "" {
		language = t.language
	}

	chunks := splitText(req.Text, maxChunkRunes)

	staging, err := os.CreateTemp("", "gtts-*.mp3")
	if err != nil {
		return tts.Audio{}, ai.NewError(ai.ErrProvider, "tts.synthesize",
			"failed to stage synthesis output", err)
	}
	defer func() {
		staging.Close()
		if err := os.Remove(staging.Name()); err != nil {
			t.logger.Warn("failed to remove synthesis staging file",
				slog.String("path", staging.Name()),
				slog.String("error", err.Error()))
		}
	}()

	for idx, chunk := range chunks {
		if err := t.fetchChunk(ctx, staging, chunk, language, idx, len(chunks)); err != nil {
			return tts.Audio{}, err
		}
	}

	if _, err := staging.Seek(0, io.SeekStart); err != nil {
		return tts.Audio{}, ai.NewError(ai.ErrProvider, "tts.synthesize",
			"failed to rewind synthesis output", err)
	}
	data, err := io.ReadAll(staging)
	if err != nil {
		return tts.Audio{}, ai.NewError(ai.ErrProvider, "tts.synthesize",
			"failed to read synthesis output", err)
	}

	return tts.Audio{Data: data, Format: "audio/mpeg"}, nil
}

// Capabilities returns the provider's capabilities.
func (t *TTS) Capabilities() tts.TTSCapabilities {
	return tts.TTSCapabilities{
		SupportedLanguages: []string{"ko", "en", "ja", "zh-CN", "es", "fr", "de"},
		OutputFormat:       "audio/mpeg",
	}
}

func (t *TTS) fetchChunk(ctx context.Context, out io.Writer, text, language string, idx, total int) error {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", language)
	query.Set("q", text)
	query.Set("idx", fmt.Sprint(idx))
	query.Set("total", fmt.Sprint(total))
	query.Set("textlen", fmt.Sprint(len([]rune(text))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return ai.NewError(ai.ErrProvider, "tts.synthesize", "failed to build request", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return ai.NewError(ai.ErrProvider, "tts.synthesize", "synthesis request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		kind := ai.ErrProvider
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
			kind = ai.ErrInvalidInput
		}
		return ai.NewError(kind, "tts.synthesize",
			fmt.Sprintf("synthesis failed: status=%d body=%s", resp.StatusCode, string(body)), nil)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		return ai.NewError(ai.ErrProvider, "tts.synthesize", "failed to stage audio chunk", err)
	}
	return nil
}

// splitText breaks text into chunks of at most limit runes, preferring
// whitespace boundaries. Concatenated mp3 segments remain playable.
func splitText(text string, limit int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentRunes := 0

	for _, word := range words {
		wordRunes := len([]rune(word))
		if currentRunes > 0 && currentRunes+1+wordRunes > limit {
			chunks = append(chunks, current.String())
			current.Reset()
			currentRunes = 0
		}
		if currentRunes > 0 {
			current.WriteByte(' ')
			currentRunes++
		}
		// A single word longer than the limit goes out as its own chunk.
		current.WriteString(word)
		currentRunes += wordRunes
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
