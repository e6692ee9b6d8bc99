package interview

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"softskill-server/internal/api"
	"softskill-server/internal/apperr"
	"softskill-server/internal/clients"
	"softskill-server/internal/config"
	"softskill-server/internal/metrics"
	"softskill-server/internal/speech"
	"softskill-server/internal/storage"
)

// Store is the slice of the document store the engine mutates.
type Store interface {
	LatestResume(ctx context.Context, email string) (*storage.ResumeAnalysis, error)
	InsertInterview(ctx context.Context, doc *storage.InterviewSession) (primitive.ObjectID, error)
	Interview(ctx context.Context, id primitive.ObjectID, email string) (*storage.InterviewSession, error)
	PushAnswer(ctx context.Context, id primitive.ObjectID, answer storage.AnswerRecord) (int, error)
	SetAssessment(ctx context.Context, id primitive.ObjectID, index int, a storage.Assessment) error
	PushEmotion(ctx context.Context, id primitive.ObjectID, snap storage.EmotionSnapshot) error
	Complete(ctx context.Context, id primitive.ObjectID) error
}

// Transcriber converts an audio clip into a transcript with segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (*clients.Transcription, error)
}

// SkillSummarizer supplies the cached-or-computed skill summary for a resume.
type SkillSummarizer interface {
	EnsureSkillsSummary(ctx context.Context, doc *storage.ResumeAnalysis) (string, error)
}

// Service owns the interview lifecycle: creation, per-answer ingestion,
// emotion logging, finalization and the on-demand analytics report.
type Service struct {
	store       Store
	model       api.Generator
	transcriber Transcriber
	skills      SkillSummarizer
	bank        *config.QuestionBank
	technical   int
	stats       *metrics.Metrics
	locks       *sessionLocks
	log         *logrus.Entry

	rngMu sync.Mutex
	rng   *rand.Rand
}

func New(store Store, model api.Generator, transcriber Transcriber, skills SkillSummarizer, bank *config.QuestionBank, technicalCount int, stats *metrics.Metrics) *Service {
	return NewWithRand(store, model, transcriber, skills, bank, technicalCount, stats,
		rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand is New with an injected randomness source.
func NewWithRand(store Store, model api.Generator, transcriber Transcriber, skills SkillSummarizer, bank *config.QuestionBank, technicalCount int, stats *metrics.Metrics, rng *rand.Rand) *Service {
	return &Service{
		store:       store,
		model:       model,
		transcriber: transcriber,
		skills:      skills,
		bank:        bank,
		technical:   technicalCount,
		stats:       stats,
		locks:       newSessionLocks(),
		log:         logrus.WithField("component", "interview"),
		rng:         rng,
	}
}

// Start creates a new session for the owner's latest resume: skill summary
// (computed lazily when absent), technical questions with coverage
// validation, then one soft-skill question per category.
func (s *Service) Start(ctx context.Context, email string) (*storage.InterviewSession, error) {
	resumeDoc, err := s.store.LatestResume(ctx, email)
	if err != nil {
		return nil, err
	}

	summary, err := s.skills.EnsureSkillsSummary(ctx, resumeDoc)
	if err != nil {
		return nil, err
	}
	if summary == "" || strings.HasPrefix(strings.ToLower(summary), "error") {
		return nil, apperr.InvalidArgumentf("failed to summarize skills automatically")
	}

	skills := parseSkillLines(summary)
	technical := s.generateTechnical(ctx, skills)
	soft := s.softSkillQuestions()

	session := &storage.InterviewSession{
		Email:     email,
		Questions: append(append([]string{}, technical...), soft...),
		// The actual batch length, not the configured target: a degraded
		// model response can shrink the batch, and the soft-skill index
		// mapping follows whatever was stored.
		TechnicalCount:    len(technical),
		SoftSkillSections: append([]string{}, config.SoftSkillSections...),
		Answers:           []storage.AnswerRecord{},
		EmotionTimeline:   []storage.EmotionSnapshot{},
		Status:            storage.StatusInProgress,
		CreatedAt:         time.Now().UTC(),
	}

	id, err := s.store.InsertInterview(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	s.stats.IncInterviewsStarted()

	s.log.WithFields(logrus.Fields{
		"email":     email,
		"interview": id.Hex(),
		"questions": len(session.Questions),
	}).Info("interview started")
	return session, nil
}

// SubmitAnswer transcribes the clip, computes speech metrics, appends the
// answer record and attaches its assessment. The append and the assessment
// write are serialized per session and the assessment targets the array index
// reported back by the append itself.
func (s *Service) SubmitAnswer(ctx context.Context, email, idHex string, questionIndex int, audio []byte, filename string) (*storage.AnswerRecord, error) {
	id, err := storage.ParseID(idHex)
	if err != nil {
		return nil, err
	}
	session, err := s.store.Interview(ctx, id, email)
	if err != nil {
		return nil, err
	}
	if questionIndex < 0 || questionIndex >= len(session.Questions) {
		return nil, apperr.InvalidArgumentf("questionIndex %d out of range [0,%d)", questionIndex, len(session.Questions))
	}

	// Transcription failure is a hard failure: the primary artifact has no
	// meaningful placeholder.
	tr, err := s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, apperr.Upstreamf("transcribing answer: %v", err)
	}

	answer := storage.AnswerRecord{
		QuestionIndex: questionIndex,
		Transcript:    tr.Text,
		Language:      strings.ToUpper(tr.Language),
		Metrics:       speech.ComputeMetrics(tr.Segments),
		Timestamp:     time.Now().UTC(),
	}

	lock := s.locks.get(idHex)
	lock.Lock()
	defer lock.Unlock()

	index, err := s.store.PushAnswer(ctx, id, answer)
	if err != nil {
		return nil, err
	}

	assessment := s.assess(ctx, session, questionIndex, tr.Text)
	if err := s.store.SetAssessment(ctx, id, index, assessment); err != nil {
		return nil, err
	}
	answer.Assessment = &assessment
	s.stats.IncAnswersSubmitted()

	s.log.WithFields(logrus.Fields{
		"interview": idHex,
		"question":  questionIndex,
		"index":     index,
		"rating":    assessment.Rating,
	}).Info("answer submitted")
	return &answer, nil
}

// LogEmotion appends one facial-emotion snapshot to the session timeline.
func (s *Service) LogEmotion(ctx context.Context, email, idHex string, distribution map[string]float64) error {
	if len(distribution) == 0 {
		return apperr.InvalidArgumentf("no valid emotion distribution")
	}
	id, err := storage.ParseID(idHex)
	if err != nil {
		return err
	}
	if _, err := s.store.Interview(ctx, id, email); err != nil {
		return err
	}
	if err := s.store.PushEmotion(ctx, id, storage.EmotionSnapshot{
		Timestamp:    time.Now().UTC(),
		Distribution: distribution,
	}); err != nil {
		return err
	}
	s.stats.IncEmotionSamples()
	return nil
}

// Finalize seals the session. Idempotent in effect: repeated calls re-stamp
// completed_at, and the status never reverts.
func (s *Service) Finalize(ctx context.Context, email, idHex string) error {
	id, err := storage.ParseID(idHex)
	if err != nil {
		return err
	}
	if _, err := s.store.Interview(ctx, id, email); err != nil {
		return err
	}
	if err := s.store.Complete(ctx, id); err != nil {
		return err
	}
	s.stats.IncInterviewsCompleted()
	s.log.WithField("interview", idHex).Info("interview finalized")
	return nil
}

// GetAssessment returns the raw questions and answers of one session.
func (s *Service) GetAssessment(ctx context.Context, email, idHex string) (*storage.InterviewSession, error) {
	id, err := storage.ParseID(idHex)
	if err != nil {
		return nil, err
	}
	return s.store.Interview(ctx, id, email)
}
