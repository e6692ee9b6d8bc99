package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"softskill-server/internal/speech"
)

// Transcription is the speech-to-text engine's output: the full transcript,
// a detected language tag, and time-aligned segments.
type Transcription struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Segments []speech.Segment `json:"segments"`
}

// Transcriber talks to the transcription service.
type Transcriber struct {
	url string
	c   *http.Client
}

func NewTranscriber(url string) *Transcriber {
	return &Transcriber{url: url, c: newHTTPClient()}
}

// Transcribe uploads an audio clip and returns the transcription. Failures are
// hard errors: there is no meaningful placeholder for the primary artifact.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename string) (*Transcription, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err = fw.Write(audio); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url+"/transcribe", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := t.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("transcriber %s: %s", resp.Status, string(body))
	}

	var out Transcription
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("transcriber decode: %w", err)
	}
	return &out, nil
}
