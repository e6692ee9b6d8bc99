package metrics

import (
	"sync"
	"time"
)

// Metrics holds process-wide operational counters, shared across requests.
type Metrics struct {
	mu                  sync.RWMutex
	ResumesAnalyzed     int64     `json:"resumes_analyzed"`
	InterviewsStarted   int64     `json:"interviews_started"`
	InterviewsCompleted int64     `json:"interviews_completed"`
	AnswersSubmitted    int64     `json:"answers_submitted"`
	EmotionSamples      int64     `json:"emotion_samples"`
	ModelCallsTotal     int64     `json:"model_calls_total"`
	ModelCallsFailed    int64     `json:"model_calls_failed"`
	LastUpdateTime      time.Time `json:"last_update"`
}

func New() *Metrics {
	return &Metrics{LastUpdateTime: time.Now()}
}

func (m *Metrics) touch() { m.LastUpdateTime = time.Now() }

func (m *Metrics) IncResumesAnalyzed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResumesAnalyzed++
	m.touch()
}

func (m *Metrics) IncInterviewsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InterviewsStarted++
	m.touch()
}

func (m *Metrics) IncInterviewsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InterviewsCompleted++
	m.touch()
}

func (m *Metrics) IncAnswersSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnswersSubmitted++
	m.touch()
}

func (m *Metrics) IncEmotionSamples() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmotionSamples++
	m.touch()
}

func (m *Metrics) IncModelCall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ModelCallsTotal++
	if !success {
		m.ModelCallsFailed++
	}
	m.touch()
}

// Snapshot returns a copy safe to serialize.
func (m *Metrics) Snapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Metrics{
		ResumesAnalyzed:     m.ResumesAnalyzed,
		InterviewsStarted:   m.InterviewsStarted,
		InterviewsCompleted: m.InterviewsCompleted,
		AnswersSubmitted:    m.AnswersSubmitted,
		EmotionSamples:      m.EmotionSamples,
		ModelCallsTotal:     m.ModelCallsTotal,
		ModelCallsFailed:    m.ModelCallsFailed,
		LastUpdateTime:      m.LastUpdateTime,
	}
}
