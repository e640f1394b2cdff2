package gtts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chriscow/voicebot-go/pkg/ai"
	"github.com/chriscow/voicebot-go/pkg/ai/tts"
)

func TestSynthesize_EmptyText(t *testing.T) {
	synth := New(Config{})

	_, err := synth.Synthesize(context.Background(), tts.SynthesizeRequest{})
	if !errors.Is(err, ai.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestSynthesize_Success(t *testing.T) {
	var gotLang, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.URL.Query().Get("tl")
		gotText = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	synth := New(Config{BaseURL: srv.URL})

	audio, err := synth.Synthesize(context.Background(), tts.SynthesizeRequest{Text: "안녕하세요"})
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if string(audio.Data) != "mp3-bytes" {
		t.Errorf("unexpected audio payload: %q", audio.Data)
	}
	if audio.Format != "audio/mpeg" {
		t.Errorf("expected audio/mpeg, got %s", audio.Format)
	}
	if gotLang != "ko" {
		t.Errorf("expected default language ko, got %s", gotLang)
	}
	if gotText != "안녕하세요" {
		t.Errorf("expected text to pass through, got %s", gotText)
	}
}

func TestSynthesize_LanguageOverride(t *testing.T) {
	var gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.URL.Query().Get("tl")
		_, _ = w.Write([]byte("mp3"))
	}))
	defer srv.Close()

	synth := New(Config{BaseURL: srv.URL})
	_, err := synth.Synthesize(context.Background(), tts.SynthesizeRequest{Text: "hello", Language: "en"})
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if gotLang != "en" {
		t.Errorf("expected language en, got %s", gotLang)
	}
}

func TestSynthesize_ChunksLongText(t *testing.T) {
	var chunks []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chunks = append(chunks, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte("seg|"))
	}))
	defer srv.Close()

	synth := New(Config{BaseURL: srv.URL})

	longText := strings.TrimSpace(strings.Repeat("다람쥐 헌 쳇바퀴에 타고파 ", 40))
	audio, err := synth.Synthesize(context.Background(), tts.SynthesizeRequest{Text: longText})
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected long text to be chunked, got %d request(s)", len(chunks))
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > maxChunkRunes {
			t.Errorf("chunk %d exceeds limit: %d runes", i, n)
		}
	}
	// Segments are concatenated in request order.
	if string(audio.Data) != strings.Repeat("seg|", len(chunks)) {
		t.Errorf("unexpected concatenated payload: %q", audio.Data)
	}
}

func TestSynthesize_HTTPFailures(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		wantKind error
	}{
		{"server_error", http.StatusInternalServerError, ai.ErrProvider},
		{"rate_limited", http.StatusTooManyRequests, ai.ErrProvider},
		{"bad_request", http.StatusBadRequest, ai.ErrInvalidInput},
		{"not_found", http.StatusNotFound, ai.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			synth := New(Config{BaseURL: srv.URL})
			_, err := synth.Synthesize(context.Background(), tts.SynthesizeRequest{Text: "hello"})
			if !errors.Is(err, tc.wantKind) {
				t.Errorf("expected kind %v, got %v", tc.wantKind, err)
			}
		})
	}
}

func TestSplitText(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		limit int
		want  int
	}{
		{"short", "hello world", 200, 1},
		{"exact_fit", "aaa bbb", 7, 1},
		{"two_chunks", "aaa bbb ccc", 7, 2},
		{"oversized_word", strings.Repeat("x", 50), 10, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chunks := splitText(tc.text, tc.limit)
			if len(chunks) != tc.want {
				t.Errorf("expected %d chunks, got %d: %q", tc.want, len(chunks), chunks)
			}
			if strings.Join(chunks, " ") != strings.Join(strings.Fields(tc.text), " ") {
				t.Errorf("chunks lost content: %q", chunks)
			}
		})
	}
}
