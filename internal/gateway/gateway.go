// Package gateway wraps the three external AI providers: text completion,
// URL content extraction, and image generation. Each client issues a single
// outbound HTTP call and maps provider failures to *Error. There are no
// retries; a failed call is terminal for the request that made it.
package gateway

import (
	"fmt"
	"net/http"
	"time"
)

// Error is a failure from an upstream AI provider, carrying the upstream
// message so the API layer can surface it.
type Error struct {
	Provider string
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func newError(provider, format string, args ...any) *Error {
	return &Error{Provider: provider, Message: fmt.Sprintf(format, args...)}
}

// URLContent is the result of extracting a page through the content
// provider.
type URLContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
