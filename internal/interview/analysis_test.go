package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"softskill-server/internal/speech"
	"softskill-server/internal/storage"
)

func TestAggregateSpeechEmpty(t *testing.T) {
	words, filler, rating := aggregateSpeech(nil)
	assert.Zero(t, words)
	assert.Zero(t, filler)
	assert.Equal(t, 3.0, rating)
}

func TestAggregateSpeechNoRatedAnswers(t *testing.T) {
	answers := []storage.AnswerRecord{
		{Transcript: "one two three", Metrics: speech.Metrics{FillerCount: 1}},
	}
	words, filler, rating := aggregateSpeech(answers)
	assert.Equal(t, 3, words)
	assert.InDelta(t, 0.333, filler, 1e-9)
	assert.Equal(t, 3.0, rating)
}

func TestAggregateSpeech(t *testing.T) {
	answers := []storage.AnswerRecord{
		{
			Transcript: "um I built the ingestion pipeline",
			Metrics:    speech.Metrics{FillerCount: 1},
			Assessment: &storage.Assessment{Rating: 4},
		},
		{
			Transcript: "so we paired on it",
			Metrics:    speech.Metrics{FillerCount: 1},
			Assessment: &storage.Assessment{Rating: 5},
		},
		{
			Transcript: "short answer",
			Metrics:    speech.Metrics{FillerCount: 0},
		},
	}
	words, filler, rating := aggregateSpeech(answers)
	assert.Equal(t, 13, words)
	assert.InDelta(t, 0.154, filler, 1e-9)
	assert.InDelta(t, 4.5, rating, 1e-9)
}

func TestAggregateEmotions(t *testing.T) {
	timeline := []storage.EmotionSnapshot{
		{Distribution: map[string]float64{"happy": 60, "neutral": 40}},
		{Distribution: map[string]float64{"happy": 40, "neutral": 50, "sad": 10}},
	}
	avg, std := aggregateEmotions(timeline)

	assert.Equal(t, 50.0, avg["happy"])
	assert.Equal(t, 45.0, avg["neutral"])
	// "sad" appeared in one snapshot only: its average covers that one sample
	// and it gets no deviation entry.
	assert.Equal(t, 10.0, avg["sad"])
	assert.NotContains(t, std, "sad")

	// population σ of {60,40} is 10
	assert.Equal(t, 10.0, std["happy"])
	assert.Equal(t, 5.0, std["neutral"])
}

func TestAggregateEmotionsEmpty(t *testing.T) {
	avg, std := aggregateEmotions(nil)
	assert.Empty(t, avg)
	assert.Empty(t, std)
}

func TestEmotionDigest(t *testing.T) {
	assert.Equal(t, "No emotion captured.", emotionDigest(nil, nil))

	avg := map[string]float64{"happy": 50, "neutral": 30, "sad": 20}
	std := map[string]float64{"happy": 5, "neutral": 12}
	digest := emotionDigest(avg, std)
	assert.Contains(t, digest, "Dominant → happy (50%), neutral (30%)")
	assert.Contains(t, digest, "Most variable → neutral (12%), happy (5%)")
}

func TestTopKStableOnTies(t *testing.T) {
	d := map[string]float64{"b": 1, "a": 1, "c": 1}
	assert.Equal(t, "a (1%), b (1%)", topK(d, 2))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 4.67, round(14.0/3.0, 2))
	assert.Equal(t, 0.286, round(2.0/7.0, 3))
}
