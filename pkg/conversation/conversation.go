// Package conversation owns the running transcript of one voice-assistant
// session: the display log of turns and the message history sent to the chat
// provider. The two sequences are mirrored 1:1, with history carrying one
// leading system message. State is append-only except for a full reset.
package conversation

import (
	"sync"
	"time"

	"github.com/chriscow/voicebot-go/pkg/ai/llm"
)

// DefaultSystemPrompt is the system directive seeded into every fresh history.
const DefaultSystemPrompt = "You are a thoughtful assistant. Answer in Korean. Keep it concise."

// Speaker identifies who produced a turn in the display log.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one utterance shown in the conversation log.
type Turn struct {
	Speaker Speaker
	At      time.Time
	Text    string
}

// Clock returns the wall-clock HH:MM label the log displays for this turn.
func (t Turn) Clock() string {
	return t.At.Format("15:04")
}

// State holds one session's transcript. Created once per session, mutated only
// by the turn controller, never shared across sessions.
type State struct {
	mu           sync.RWMutex
	systemPrompt string
	turns        []Turn
	history      []llm.Message
	lastAnswer   string
}

// New creates a fresh State seeded with the given system prompt, or
// DefaultSystemPrompt when empty.
func New(systemPrompt string) *State {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	s := &State{systemPrompt: systemPrompt}
	s.Reset()
	return s
}

// AppendTurn pushes one turn to the display log and mirrors it into the chat
// history. Empty text is permitted and recorded as-is.
func (s *State) AppendTurn(speaker Speaker, text string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, Turn{Speaker: speaker, At: at, Text: text})

	role := llm.RoleUser
	if speaker == SpeakerAssistant {
		role = llm.RoleAssistant
	}
	s.history = append(s.history, llm.Message{Role: role, Content: text})
}

// Reset restores the state to its initial shape: no turns, a history holding
// only the system message, and an empty last answer. Idempotent.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = nil
	s.history = []llm.Message{{Role: llm.RoleSystem, Content: s.systemPrompt}}
	s.lastAnswer = ""
}

// SnapshotHistory returns a copy of the message history for a provider call,
// so the provider never observes concurrent mutation.
func (s *State) SnapshotHistory() []llm.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]llm.Message, len(s.history))
	copy(snapshot, s.history)
	return snapshot
}

// Turns returns a copy of the display log in chronological order.
func (s *State) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

// LastAnswer returns the most recent assistant reply, or "" before the first
// successful cycle.
func (s *State) LastAnswer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAnswer
}

// SetLastAnswer records the reply consumed by playback. Overwritten each cycle.
func (s *State) SetLastAnswer(answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAnswer = answer
}
