package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type frameRequest struct {
	Image string `json:"image"`
}

// FaceRegion is the bounding box of the detected face.
type FaceRegion struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// FaceAnalysis is the emotion classifier's output: a dominant label and a
// probability distribution over emotion categories, values summing near 100.
type FaceAnalysis struct {
	DominantEmotion string             `json:"dominant_emotion"`
	Distribution    map[string]float64 `json:"emotion_distribution"`
	Region          FaceRegion         `json:"region"`
}

// EmotionClassifier talks to the facial-emotion service.
type EmotionClassifier struct {
	url string
	c   *http.Client
}

func NewEmotionClassifier(url string) *EmotionClassifier {
	return &EmotionClassifier{url: url, c: newHTTPClient()}
}

// Classify sends a base64-encoded frame and returns the emotion analysis.
func (e *EmotionClassifier) Classify(ctx context.Context, imageData string) (*FaceAnalysis, error) {
	b, _ := json.Marshal(frameRequest{Image: imageData})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url+"/analyze", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("emotion %s: %s", resp.Status, string(body))
	}

	var out FaceAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("emotion decode: %w", err)
	}
	return &out, nil
}
