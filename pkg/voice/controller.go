// Package voice orchestrates one interaction cycle of the voice assistant:
// recorded audio in, transcript and assistant reply appended to the
// conversation, synthesized speech out. The controller is a small state
// machine; correctness comes from forbidding overlapping cycles on one
// session rather than fine-grained locking.
package voice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/chriscow/voicebot-go/pkg/ai"
	"github.com/chriscow/voicebot-go/pkg/ai/llm"
	"github.com/chriscow/voicebot-go/pkg/ai/stt"
	"github.com/chriscow/voicebot-go/pkg/ai/tts"
	"github.com/chriscow/voicebot-go/pkg/conversation"
)

// Phase is the controller's position in the interaction cycle.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseTranscribing
	PhaseComposing
	PhaseAnswered
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTranscribing:
		return "transcribing"
	case PhaseComposing:
		return "composing"
	case PhaseAnswered:
		return "answered"
	default:
		return "unknown"
	}
}

// DefaultLanguage is the synthesis language when none is configured.
const DefaultLanguage = "ko"

// Config assembles the providers and session options for one controller.
type Config struct {
	STT stt.STT
	LLM llm.LLM
	TTS tts.TTS

	// SystemPrompt seeds the conversation history; empty uses the default.
	SystemPrompt string

	// Language is the two-letter synthesis language code, default "ko".
	Language string

	Logger *slog.Logger

	// Now supplies turn timestamps; defaults to time.Now. Injectable for tests.
	Now func() time.Time
}

// SubmitRequest carries one recorded utterance through a full cycle.
type SubmitRequest struct {
	Audio      []byte
	Model      string
	Credential string
}

// Exchange is the user/assistant turn pair produced by a successful cycle.
type Exchange struct {
	Question conversation.Turn
	Answer   conversation.Turn
}

// Controller runs interaction cycles against one conversation session.
// One instance per session; a mutex serializes cycles so at most one Submit
// is in flight at a time.
type Controller struct {
	stt   stt.STT
	llm   llm.LLM
	tts   tts.TTS
	state *conversation.State

	language string
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	phase Phase
}

// New creates a controller with a fresh conversation state.
func New(cfg Config) (*Controller, error) {
	if cfg.STT == nil || cfg.LLM == nil || cfg.TTS == nil {
		return nil, ai.NewError(ai.ErrConfiguration, "voice.new",
			"STT, LLM and TTS providers are all required", nil)
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Controller{
		stt:      cfg.STT,
		llm:      cfg.LLM,
		tts:      cfg.TTS,
		state:    conversation.New(cfg.SystemPrompt),
		language: cfg.Language,
		logger:   cfg.Logger,
		now:      cfg.Now,
	}, nil
}

// State exposes the session's conversation for display.
func (c *Controller) State() *conversation.State {
	return c.state
}

// Phase returns the controller's current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Submit runs one full cycle: transcribe the audio, append the user turn,
// request a completion, append the assistant turn and record the last answer.
//
// A failed transcription leaves the conversation untouched. A failed
// completion retains the already-appended user turn (so the user sees what
// was heard) and leaves the last answer unchanged; the caller decides whether
// to submit again or reset.
func (c *Controller) Submit(ctx context.Context, req SubmitRequest) (Exchange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.phase = PhaseIdle }()

	if len(req.Audio) == 0 {
		return Exchange{}, ai.NewError(ai.ErrConfiguration, "voice.submit",
			"no audio recorded", nil)
	}
	if req.Credential == "" {
		return Exchange{}, ai.NewError(ai.ErrConfiguration, "voice.submit",
			"API credential is not configured", nil)
	}

	c.phase = PhaseTranscribing
	c.logger.Debug("transcribing utterance", slog.Int("audio_bytes", len(req.Audio)))

	transcript, err := c.stt.Transcribe(ctx, stt.TranscribeRequest{
		Audio:      req.Audio,
		Credential: req.Credential,
	})
	if err != nil {
		c.logger.Warn("transcription failed", slog.String("error", err.Error()))
		return Exchange{}, asProviderError(err, "stt.transcribe")
	}

	// An empty transcript is valid and proceeds to the chat provider as-is.
	question := conversation.Turn{
		Speaker: conversation.SpeakerUser,
		At:      c.now(),
		Text:    transcript.Text,
	}
	c.state.AppendTurn(question.Speaker, question.Text, question.At)

	c.phase = PhaseComposing
	c.logger.Debug("requesting completion",
		slog.String("model", req.Model),
		slog.Int("history_len", len(c.state.SnapshotHistory())))

	resp, err := c.llm.Chat(ctx, llm.ChatRequest{
		Model:      req.Model,
		Messages:   c.state.SnapshotHistory(),
		Credential: req.Credential,
	})
	if err != nil {
		c.logger.Warn("completion failed, user turn retained",
			slog.String("model", req.Model),
			slog.String("error", err.Error()))
		return Exchange{}, asProviderError(err, "llm.chat")
	}

	answer := conversation.Turn{
		Speaker: conversation.SpeakerAssistant,
		At:      c.now(),
		Text:    resp.Message.Content,
	}
	c.state.AppendTurn(answer.Speaker, answer.Text, answer.At)
	c.state.SetLastAnswer(answer.Text)

	c.phase = PhaseAnswered
	c.logger.Info("cycle completed",
		slog.String("model", req.Model),
		slog.Int("question_len", len(question.Text)),
		slog.Int("answer_len", len(answer.Text)))

	return Exchange{Question: question, Answer: answer}, nil
}

// Reset clears the conversation and returns the controller to idle from any
// phase. Idempotent.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Reset()
	c.phase = PhaseIdle
	c.logger.Debug("session reset")
}

// SpeakLastAnswer synthesizes the most recent assistant reply for playback.
// It never mutates the conversation.
func (c *Controller) SpeakLastAnswer(ctx context.Context) (tts.Audio, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	answer := c.state.LastAnswer()
	if answer == "" {
		return tts.Audio{}, ai.NewError(ai.ErrNoContent, "voice.speak",
			"no answer to speak yet", nil)
	}

	audio, err := c.tts.Synthesize(ctx, tts.SynthesizeRequest{
		Text:     answer,
		Language: c.language,
	})
	if err != nil {
		c.logger.Warn("synthesis failed", slog.String("error", err.Error()))
		return tts.Audio{}, asProviderError(err, "tts.synthesize")
	}

	c.logger.Debug("answer synthesized",
		slog.String("format", audio.Format),
		slog.Int("audio_bytes", len(audio.Data)))
	return audio, nil
}

// asProviderError passes kinded errors through and classifies anything else
// as a provider failure so callers always see a typed error.
func asProviderError(err error, op string) error {
	if ai.Kind(err) != nil {
		return err
	}
	return ai.NewError(ai.ErrProvider, op, err.Error(), err)
}
