// Package clients holds thin HTTP wrappers around the local inference
// services (speech-to-text, facial emotion). Both are treated as black boxes.
package clients

import (
	"net/http"
	"time"
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 120 * time.Second}
}
