package alunoapi

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrMissingID is returned when an item operation is called without an identifier.
var ErrMissingID = errors.New("aluno id is required")

// ErrInvalidResponse marks a list response that does not match the resource contract.
var ErrInvalidResponse = errors.New("invalid aluno api response")

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func newStatusError(method, path string, status int, body []byte) *StatusError {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return &StatusError{Method: method, Path: path, StatusCode: status, Body: text}
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: request failed with status code %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: request failed with status code %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether err carries a 404 from the API.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == 404
}
