// Package shell is the presentation layer: a WebSocket endpoint the browser
// UI talks to. The browser records audio and plays replies; the shell decodes
// signals, drives one turn controller per connection and renders state back
// as JSON commands. Sessions never share conversation state.
package shell

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"

	"github.com/chriscow/voicebot-go/pkg/ai"
	"github.com/chriscow/voicebot-go/pkg/conversation"
	"github.com/chriscow/voicebot-go/pkg/voice"
)

// Signal and command type constants
const (
	SignalTypeSubmit = "submit"
	SignalTypeReset  = "reset"
	SignalTypeSpeak  = "speak"

	CommandTypeAnswer = "answer"
	CommandTypeLog    = "log"
	CommandTypeAudio  = "audio"
	CommandTypeError  = "error"
)

// Signal is one JSON message from the browser.
type Signal struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Command is one JSON message to the browser.
type Command struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Session binds one connection to one turn controller.
type Session struct {
	controller *voice.Controller
	logger     *slog.Logger
}

// NewSession creates a session around the given controller.
func NewSession(controller *voice.Controller, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{controller: controller, logger: logger}
}

// Handle processes one signal and returns the commands to send back.
// Failures come back as error commands; the session stays usable.
func (s *Session) Handle(ctx context.Context, signal *Signal) []*Command {
	s.logger.Debug("processing signal", slog.String("type", signal.Type))

	switch signal.Type {
	case SignalTypeSubmit:
		return s.handleSubmit(ctx, signal)
	case SignalTypeReset:
		s.controller.Reset()
		return []*Command{s.logCommand()}
	case SignalTypeSpeak:
		return s.handleSpeak(ctx)
	default:
		s.logger.Warn("unknown signal type", slog.String("type", signal.Type))
		return []*Command{errorCommand(ai.NewError(ai.ErrInvalidInput, "shell.handle",
			"unknown signal type: "+signal.Type, nil))}
	}
}

func (s *Session) handleSubmit(ctx context.Context, signal *Signal) []*Command {
	encoded, _ := signal.Data["audio"].(string)
	model, _ := signal.Data["model"].(string)
	credential, _ := signal.Data["key"].(string)

	audio, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return []*Command{errorCommand(ai.NewError(ai.ErrInvalidInput, "shell.submit",
			"audio payload is not valid base64", err))}
	}

	exchange, err := s.controller.Submit(ctx, voice.SubmitRequest{
		Audio:      audio,
		Model:      model,
		Credential: credential,
	})
	if err != nil {
		// The log still refreshes: a failed completion retains the user turn.
		return []*Command{errorCommand(err), s.logCommand()}
	}

	return []*Command{
		{
			Type: CommandTypeAnswer,
			Data: map[string]any{
				"question": turnPayload(exchange.Question),
				"answer":   turnPayload(exchange.Answer),
			},
		},
		s.logCommand(),
	}
}

func (s *Session) handleSpeak(ctx context.Context) []*Command {
	audio, err := s.controller.SpeakLastAnswer(ctx)
	if err != nil {
		return []*Command{errorCommand(err)}
	}
	return []*Command{{
		Type: CommandTypeAudio,
		Data: map[string]any{
			"format": audio.Format,
			"data":   base64.StdEncoding.EncodeToString(audio.Data),
		},
	}}
}

func (s *Session) logCommand() *Command {
	turns := s.controller.State().Turns()
	entries := make([]map[string]any, len(turns))
	for i, turn := range turns {
		entries[i] = turnPayload(turn)
	}
	return &Command{Type: CommandTypeLog, Data: map[string]any{"turns": entries}}
}

func turnPayload(turn conversation.Turn) map[string]any {
	return map[string]any{
		"speaker": string(turn.Speaker),
		"clock":   turn.Clock(),
		"text":    turn.Text,
	}
}

func errorCommand(err error) *Command {
	return &Command{
		Type: CommandTypeError,
		Data: map[string]any{
			"kind":    kindLabel(err),
			"message": err.Error(),
		},
	}
}

// kindLabel renders an error kind as the wire label the UI shows.
func kindLabel(err error) string {
	switch {
	case errors.Is(err, ai.ErrConfiguration):
		return "configuration"
	case errors.Is(err, ai.ErrAuth):
		return "auth"
	case errors.Is(err, ai.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ai.ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, ai.ErrNoContent):
		return "no_content"
	default:
		return "provider"
	}
}
