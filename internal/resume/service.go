package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"softskill-server/internal/api"
	"softskill-server/internal/apperr"
	"softskill-server/internal/metrics"
	"softskill-server/internal/prompts"
	"softskill-server/internal/storage"
)

// Service runs resume analysis and skill summarization. Model failures here
// degrade to diagnostic text instead of failing the request: a flaky model
// should cost output quality, not availability.
type Service struct {
	store *storage.Store
	model api.Generator
	stats *metrics.Metrics
	log   *logrus.Entry
}

func New(store *storage.Store, model api.Generator, stats *metrics.Metrics) *Service {
	return &Service{
		store: store,
		model: model,
		stats: stats,
		log:   logrus.WithField("component", "resume"),
	}
}

// Analyze extracts text from the uploaded resume, asks the model for a
// structured analysis, and stores the result.
func (s *Service) Analyze(ctx context.Context, email, filename string, data []byte, jobDescription string) (*storage.ResumeAnalysis, error) {
	text, err := ExtractText(filename, data)
	if err != nil {
		return nil, err
	}

	analysis, err := s.model.Generate(ctx, prompts.ResumeAnalysis(text, jobDescription))
	s.stats.IncModelCall(err == nil)
	if err != nil {
		s.log.WithError(err).Warn("resume analysis degraded")
		analysis = fmt.Sprintf("Error analyzing resume: %v", err)
	} else {
		analysis = api.CleanResponse(analysis)
	}

	doc := &storage.ResumeAnalysis{
		Email:          email,
		Analysis:       analysis,
		JobDescription: jobDescription,
		ResumeText:     truncate(text, 1000),
	}
	id, err := s.store.InsertResume(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	s.stats.IncResumesAnalyzed()

	s.log.WithFields(logrus.Fields{"email": email, "resume_id": id.Hex()}).Info("resume analyzed")
	return doc, nil
}

// Summarize recomputes and caches the skill summary for the owner's latest
// resume.
func (s *Service) Summarize(ctx context.Context, email string) (string, error) {
	doc, err := s.store.LatestResume(ctx, email)
	if err != nil {
		return "", err
	}
	return s.summarize(ctx, doc)
}

// EnsureSkillsSummary returns the cached summary, computing it once when
// absent.
func (s *Service) EnsureSkillsSummary(ctx context.Context, doc *storage.ResumeAnalysis) (string, error) {
	if summary := strings.TrimSpace(doc.SkillsSummary); summary != "" {
		return summary, nil
	}
	return s.summarize(ctx, doc)
}

var skillLabelRe = regexp.MustCompile(`(?i)(Languages|Tools|Technologies/Frameworks):`)

func (s *Service) summarize(ctx context.Context, doc *storage.ResumeAnalysis) (string, error) {
	raw := ParseKeySkills(doc.Analysis)
	if strings.TrimSpace(raw) == "" {
		return "", apperr.InvalidArgumentf("no key_skills found in analysis")
	}

	cleaned := skillLabelRe.ReplaceAllString(raw, "")

	// Single best-effort call, no retry. A failure is cached as a diagnostic
	// string and rejected downstream by session creation.
	summary, err := s.model.Generate(ctx, prompts.SkillSummary(cleaned))
	s.stats.IncModelCall(err == nil)
	if err != nil {
		s.log.WithError(err).Warn("skill summarization degraded")
		summary = fmt.Sprintf("Error summarizing skills: %v", err)
	} else {
		summary = api.CleanResponse(summary)
	}

	if err := s.store.SetSkillsSummary(ctx, doc.ID, summary); err != nil {
		return "", err
	}
	doc.SkillsSummary = summary
	return summary, nil
}

// ParseKeySkills reads the key_skills field out of the nominally-JSON analysis
// blob. The blob is untrusted model output: any parse trouble yields "".
func ParseKeySkills(analysis string) string {
	var fields struct {
		KeySkills string `json:"key_skills"`
	}
	if err := json.Unmarshal([]byte(analysis), &fields); err != nil {
		return ""
	}
	return fields.KeySkills
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
