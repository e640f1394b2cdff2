// Package ai provides common types shared by the STT, LLM and TTS provider
// packages: the error kinds every provider call can fail with and a wrapper
// that carries them across package boundaries.
package ai

import "errors"

// Error kinds shared across providers and the turn controller. Callers match
// them with errors.Is; concrete errors wrap one of these via KindError.
var (
	// ErrConfiguration indicates missing input before any provider call:
	// no recorded audio or no API credential.
	ErrConfiguration = errors.New("configuration error")

	// ErrAuth indicates the provider rejected the supplied credential.
	ErrAuth = errors.New("authentication rejected")

	// ErrInvalidInput indicates malformed audio or empty text to synthesize.
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelUnavailable indicates the requested model identifier is not served.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrProvider indicates a transport or service failure at the provider.
	ErrProvider = errors.New("provider failure")

	// ErrNoContent indicates playback was requested with nothing to speak.
	ErrNoContent = errors.New("no content to speak")
)

// KindError wraps an underlying error with its kind classification and the
// operation that produced it.
type KindError struct {
	Kind       error  // one of the sentinel kinds above
	Op         string // e.g. "stt.transcribe", "llm.chat"
	Message    string // human-readable status for the user
	Underlying error
}

func (e *KindError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Underlying != nil {
		return e.Underlying.Error()
	}
	return e.Kind.Error()
}

func (e *KindError) Unwrap() error {
	return e.Kind
}

// NewError creates a KindError for the given kind and operation.
func NewError(kind error, op, message string, underlying error) error {
	return &KindError{Kind: kind, Op: op, Message: message, Underlying: underlying}
}

// Kind returns the sentinel kind an error maps to, or nil for untyped errors.
func Kind(err error) error {
	for _, kind := range []error{
		ErrConfiguration, ErrAuth, ErrInvalidInput,
		ErrModelUnavailable, ErrProvider, ErrNoContent,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
