package speech

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil)
	assert.Zero(t, m.WPM)
	assert.Zero(t, m.FillerRate)
	assert.Zero(t, m.FillerCount)
	require.NotNil(t, m.FillerWordsUsed)
	assert.Empty(t, m.FillerWordsUsed)
}

func TestComputeMetricsNonPositiveSpan(t *testing.T) {
	cases := []struct {
		name     string
		segments []Segment
	}{
		{"zero span", []Segment{{Start: 5, End: 5, Text: "hello world"}}},
		{"negative span", []Segment{{Start: 10, End: 3, Text: "hello world"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := ComputeMetrics(tc.segments)
			assert.Equal(t, Metrics{FillerWordsUsed: map[string]int{}}, m)
		})
	}
}

func TestComputeMetricsScenario(t *testing.T) {
	segments := []Segment{{Start: 0, End: 10, Text: "um so I think this is good"}}
	m := ComputeMetrics(segments)

	assert.InDelta(t, 42.0, m.WPM, 1e-9)
	assert.Equal(t, 2, m.FillerCount)
	assert.InDelta(t, 2.0/7.0, m.FillerRate, 1e-9)
	assert.Equal(t, map[string]int{"um": 1, "so": 1}, m.FillerWordsUsed)
}

func TestComputeMetricsMultipleSegments(t *testing.T) {
	segments := []Segment{
		{Start: 1.5, End: 4.0, Text: "Well, I led the project"},
		{Start: 4.2, End: 31.5, Text: "and, uh, we shipped on time, actually ahead of schedule"},
	}
	m := ComputeMetrics(segments)

	// span = 30s, 15 word tokens
	assert.InDelta(t, 30.0, m.WPM, 1e-9)
	assert.Equal(t, 3, m.FillerCount) // well, uh, actually
	assert.Equal(t, map[string]int{"well": 1, "uh": 1, "actually": 1}, m.FillerWordsUsed)
}

func TestComputeMetricsTokenizerBoundaries(t *testing.T) {
	// Punctuation splits tokens; matching is case-insensitive.
	segments := []Segment{{Start: 0, End: 6, Text: "Um... SO-so, re-entry"}}
	m := ComputeMetrics(segments)

	// tokens: um, so, so, re, entry
	assert.InDelta(t, 50.0, m.WPM, 1e-9)
	assert.Equal(t, 3, m.FillerCount)
	assert.Equal(t, map[string]int{"um": 1, "so": 2}, m.FillerWordsUsed)
}

func TestComputeMetricsBounds(t *testing.T) {
	cases := [][]Segment{
		nil,
		{{Start: 0, End: 1, Text: ""}},
		{{Start: 0, End: 2, Text: "um uh er ah"}},
		{{Start: 0, End: 120, Text: "a single deliberate sentence without hedges"}},
	}
	for _, segs := range cases {
		m := ComputeMetrics(segs)
		assert.GreaterOrEqual(t, m.WPM, 0.0)
		assert.False(t, math.IsNaN(m.WPM))
		assert.GreaterOrEqual(t, m.FillerRate, 0.0)
		assert.LessOrEqual(t, m.FillerRate, 1.0)
	}
}

func TestComputeMetricsAllFillers(t *testing.T) {
	m := ComputeMetrics([]Segment{{Start: 0, End: 4, Text: "um uh um"}})
	assert.Equal(t, 1.0, m.FillerRate)
	assert.Equal(t, 3, m.FillerCount)
	assert.Equal(t, map[string]int{"um": 2, "uh": 1}, m.FillerWordsUsed)
}
