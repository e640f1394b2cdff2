package openai

import (
	"errors"

	"github.com/chriscow/voicebot-go/pkg/ai"
	openai "github.com/sashabaranov/go-openai"
)

// classify maps a go-openai error to one of the shared error kinds.
func classify(err error, op string) error {
	status := 0
	code := ""

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
		if s, ok := apiErr.Code.(string); ok {
			code = s
		}
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	kind := ai.ErrProvider
	switch {
	case status == 401 || status == 403:
		kind = ai.ErrAuth
	case status == 404 || code == "model_not_found":
		kind = ai.ErrModelUnavailable
	case status == 400 || status == 422:
		kind = ai.ErrInvalidInput
	}

	return ai.NewError(kind, op, err.Error(), err)
}
