package shell

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/chriscow/voicebot-go/pkg/ai"
	llmfake "github.com/chriscow/voicebot-go/pkg/ai/llm/fake"
	sttfake "github.com/chriscow/voicebot-go/pkg/ai/stt/fake"
	ttsfake "github.com/chriscow/voicebot-go/pkg/ai/tts/fake"
	"github.com/chriscow/voicebot-go/pkg/voice"
)

func testSession(t *testing.T, cfg voice.Config) *Session {
	t.Helper()
	if cfg.STT == nil {
		cfg.STT = sttfake.NewFakeSTT("안녕")
	}
	if cfg.LLM == nil {
		cfg.LLM = llmfake.NewFakeLLM("안녕하세요")
	}
	if cfg.TTS == nil {
		cfg.TTS = ttsfake.NewFakeTTS()
	}
	controller, err := voice.New(cfg)
	if err != nil {
		t.Fatalf("controller setup: %v", err)
	}
	return NewSession(controller, nil)
}

func submitSignal(audio []byte) *Signal {
	return &Signal{
		Type: SignalTypeSubmit,
		Data: map[string]any{
			"audio": base64.StdEncoding.EncodeToString(audio),
			"model": "gpt-4o-mini",
			"key":   "sk-test",
		},
	}
}

func TestSession_Submit(t *testing.T) {
	is := is.New(t)
	session := testSession(t, voice.Config{})

	commands := session.Handle(context.Background(), submitSignal([]byte("pcm")))

	is.Equal(len(commands), 2)
	is.Equal(commands[0].Type, CommandTypeAnswer)

	question := commands[0].Data["question"].(map[string]any)
	answer := commands[0].Data["answer"].(map[string]any)
	is.Equal(question["speaker"], "user")
	is.Equal(question["text"], "안녕")
	is.Equal(answer["speaker"], "assistant")
	is.Equal(answer["text"], "안녕하세요")

	is.Equal(commands[1].Type, CommandTypeLog)
	turns := commands[1].Data["turns"].([]map[string]any)
	is.Equal(len(turns), 2)
}

func TestSession_Submit_BadBase64(t *testing.T) {
	is := is.New(t)
	session := testSession(t, voice.Config{})

	commands := session.Handle(context.Background(), &Signal{
		Type: SignalTypeSubmit,
		Data: map[string]any{"audio": "not base64!!!", "key": "sk-test"},
	})

	is.Equal(len(commands), 1)
	is.Equal(commands[0].Type, CommandTypeError)
	is.Equal(commands[0].Data["kind"], "invalid_input")
}

func TestSession_Submit_MissingCredential(t *testing.T) {
	is := is.New(t)
	session := testSession(t, voice.Config{})

	commands := session.Handle(context.Background(), &Signal{
		Type: SignalTypeSubmit,
		Data: map[string]any{"audio": base64.StdEncoding.EncodeToString([]byte("pcm"))},
	})

	is.Equal(commands[0].Type, CommandTypeError)
	is.Equal(commands[0].Data["kind"], "configuration")
}

func TestSession_Submit_CompletionFailureRefreshesLog(t *testing.T) {
	is := is.New(t)
	failure := ai.NewError(ai.ErrProvider, "llm.chat", "upstream down", errors.New("boom"))
	session := testSession(t, voice.Config{LLM: llmfake.NewFailingLLM(failure)})

	commands := session.Handle(context.Background(), submitSignal([]byte("pcm")))

	// The user turn is retained, so the error rides with a log refresh.
	is.Equal(len(commands), 2)
	is.Equal(commands[0].Type, CommandTypeError)
	is.Equal(commands[0].Data["kind"], "provider")
	is.Equal(commands[1].Type, CommandTypeLog)
	turns := commands[1].Data["turns"].([]map[string]any)
	is.Equal(len(turns), 1)
	is.Equal(turns[0]["speaker"], "user")
}

func TestSession_Reset(t *testing.T) {
	is := is.New(t)
	session := testSession(t, voice.Config{})
	session.Handle(context.Background(), submitSignal([]byte("pcm")))

	commands := session.Handle(context.Background(), &Signal{Type: SignalTypeReset})

	is.Equal(len(commands), 1)
	is.Equal(commands[0].Type, CommandTypeLog)
	turns := commands[0].Data["turns"].([]map[string]any)
	is.Equal(len(turns), 0)
}

func TestSession_Speak(t *testing.T) {
	is := is.New(t)
	session := testSession(t, voice.Config{})
	session.Handle(context.Background(), submitSignal([]byte("pcm")))

	commands := session.Handle(context.Background(), &Signal{Type: SignalTypeSpeak})

	is.Equal(len(commands), 1)
	is.Equal(commands[0].Type, CommandTypeAudio)
	is.Equal(commands[0].Data["format"], "audio/mpeg")

	decoded, err := base64.StdEncoding.DecodeString(commands[0].Data["data"].(string))
	is.NoErr(err)
	is.Equal(string(decoded), "fake-mp3-bytes")
}

func TestSession_Speak_NoAnswerYet(t *testing.T) {
	is := is.New(t)
	session := testSession(t, voice.Config{})

	commands := session.Handle(context.Background(), &Signal{Type: SignalTypeSpeak})

	is.Equal(len(commands), 1)
	is.Equal(commands[0].Type, CommandTypeError)
	is.Equal(commands[0].Data["kind"], "no_content")
}

func TestSession_UnknownSignal(t *testing.T) {
	is := is.New(t)
	session := testSession(t, voice.Config{})

	commands := session.Handle(context.Background(), &Signal{Type: "bogus"})

	is.Equal(len(commands), 1)
	is.Equal(commands[0].Type, CommandTypeError)
	is.Equal(commands[0].Data["kind"], "invalid_input")
}
