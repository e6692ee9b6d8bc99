package speech

import (
	"regexp"
	"strings"
)

// Segment is one time-aligned piece of a transcription, as returned by the
// transcription engine.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Metrics holds delivery statistics for one spoken answer.
type Metrics struct {
	WPM             float64        `json:"wpm" bson:"wpm"`
	FillerRate      float64        `json:"filler_rate" bson:"fillerRate"`
	FillerCount     int            `json:"filler_count" bson:"fillerCount"`
	FillerWordsUsed map[string]int `json:"filler_words_used" bson:"fillerWordsUsed"`
}

// fillerWords is the closed lexicon of conversational hedges counted against
// speech quality. English-only.
var fillerWords = map[string]struct{}{
	"um": {}, "uh": {}, "like": {}, "you": {}, "know": {},
	"er": {}, "ah": {}, "so": {}, "well": {}, "actually": {},
}

var wordRe = regexp.MustCompile(`\w+`)

// ComputeMetrics derives speaking-rate and filler statistics from ordered
// transcription segments. An empty list or a non-positive speaking span is a
// defined degenerate case and yields zero metrics. The function is pure.
func ComputeMetrics(segments []Segment) Metrics {
	zero := Metrics{FillerWordsUsed: map[string]int{}}
	if len(segments) == 0 {
		return zero
	}

	span := segments[len(segments)-1].End - segments[0].Start
	if span <= 0 {
		return zero
	}

	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		texts = append(texts, s.Text)
	}
	full := strings.ToLower(strings.Join(texts, " "))
	words := wordRe.FindAllString(full, -1)

	m := Metrics{FillerWordsUsed: map[string]int{}}
	m.WPM = float64(len(words)) / (span / 60.0)

	for _, w := range words {
		if _, ok := fillerWords[w]; ok {
			m.FillerCount++
			m.FillerWordsUsed[w]++
		}
	}
	if len(words) > 0 {
		m.FillerRate = float64(m.FillerCount) / float64(len(words))
	}
	return m
}
