package interview

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"softskill-server/internal/api"
	"softskill-server/internal/prompts"
	"softskill-server/internal/storage"
)

// Report is the end-of-session (or mid-session) aggregated view.
type Report struct {
	Status           string                    `json:"status"`
	CompletedAt      *time.Time                `json:"completed_at"`
	EmotionTimeline  []storage.EmotionSnapshot `json:"emotionTimeline"`
	EmotionAverages  map[string]float64        `json:"emotionAverages"`
	EmotionStd       map[string]float64        `json:"emotionStd"`
	EmotionAnalysis  []string                  `json:"emotionAnalysis"`
	AvgRating        float64                   `json:"avgRating"`
	FillerRate       float64                   `json:"fillerRate"`
	TotalWordsSpoken int                       `json:"totalWordsSpoken"`
	FinalSummary     string                    `json:"final_summary"`
	SkillAnalysis    map[string]string         `json:"skillAnalysis"`
}

// Analyze computes the session report on demand, never caching. Model
// failures inside the report degrade to placeholder strings.
func (s *Service) Analyze(ctx context.Context, email, idHex string) (*Report, error) {
	id, err := storage.ParseID(idHex)
	if err != nil {
		return nil, err
	}
	session, err := s.store.Interview(ctx, id, email)
	if err != nil {
		return nil, err
	}

	totalWords, fillerRate, avgRating := aggregateSpeech(session.Answers)
	emoAvg, emoStd := aggregateEmotions(session.EmotionTimeline)
	digest := emotionDigest(emoAvg, emoStd)

	report := &Report{
		Status:           session.Status,
		CompletedAt:      session.CompletedAt,
		EmotionTimeline:  session.EmotionTimeline,
		EmotionAverages:  emoAvg,
		EmotionStd:       emoStd,
		AvgRating:        avgRating,
		FillerRate:       fillerRate,
		TotalWordsSpoken: totalWords,
		SkillAnalysis:    s.skillCritiques(ctx, session),
	}

	summary, err := s.model.Generate(ctx, prompts.FinalSummary(avgRating, fillerRate, totalWords, digest))
	s.stats.IncModelCall(err == nil)
	if err != nil {
		report.FinalSummary = fmt.Sprintf("(Could not generate summary – %v)", err)
	} else {
		report.FinalSummary = strings.TrimSpace(summary)
	}

	report.EmotionAnalysis = s.emotionBullets(ctx, emoAvg)
	return report, nil
}

// aggregateSpeech sums transcript word counts and filler counts and averages
// the ratings that are present. No ratings at all means the neutral 3.0.
func aggregateSpeech(answers []storage.AnswerRecord) (totalWords int, fillerRate, avgRating float64) {
	totalFiller := 0
	var ratings []int
	for _, a := range answers {
		totalWords += len(strings.Fields(a.Transcript))
		totalFiller += a.Metrics.FillerCount
		if a.Assessment != nil {
			ratings = append(ratings, a.Assessment.Rating)
		}
	}

	avgRating = float64(neutralRating)
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		avgRating = round(float64(sum)/float64(len(ratings)), 2)
	}
	if totalWords > 0 {
		fillerRate = round(float64(totalFiller)/float64(totalWords), 3)
	}
	return totalWords, fillerRate, avgRating
}

// aggregateEmotions computes the per-label mean and population standard
// deviation across snapshots. A label absent from a snapshot contributes
// nothing for that snapshot; σ is reported only for labels with at least two
// samples.
func aggregateEmotions(timeline []storage.EmotionSnapshot) (avg, std map[string]float64) {
	buckets := make(map[string][]float64)
	for _, snap := range timeline {
		for label, val := range snap.Distribution {
			buckets[label] = append(buckets[label], val)
		}
	}

	avg = make(map[string]float64, len(buckets))
	std = make(map[string]float64)
	for label, vals := range buckets {
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		mean := sum / float64(len(vals))
		avg[label] = round(mean, 1)

		if len(vals) > 1 {
			variance := 0.0
			for _, v := range vals {
				variance += (v - mean) * (v - mean)
			}
			std[label] = round(math.Sqrt(variance/float64(len(vals))), 1)
		}
	}
	return avg, std
}

// emotionDigest names the two most extreme average and variance emotions.
func emotionDigest(avg, std map[string]float64) string {
	if len(avg) == 0 {
		return "No emotion captured."
	}
	return fmt.Sprintf("Dominant → %s | Most variable → %s", topK(avg, 2), topK(std, 2))
}

func topK(d map[string]float64, k int) string {
	type pair struct {
		label string
		val   float64
	}
	pairs := make([]pair, 0, len(d))
	for label, val := range d {
		pairs = append(pairs, pair{label, val})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].val != pairs[j].val {
			return pairs[i].val > pairs[j].val
		}
		return pairs[i].label < pairs[j].label
	})
	if len(pairs) > k {
		pairs = pairs[:k]
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s (%v%%)", p.label, p.val))
	}
	return strings.Join(parts, ", ")
}

// skillCritiques produces the per-category textual critique: for category i
// the answer is the one whose questionIndex is technicalCount+i; a missing
// answer yields a fixed placeholder, never an error.
func (s *Service) skillCritiques(ctx context.Context, session *storage.InterviewSession) map[string]string {
	out := make(map[string]string, len(session.SoftSkillSections))
	for i, skill := range session.SoftSkillSections {
		wantIdx := session.TechnicalCount + i

		var answer *storage.AnswerRecord
		for j := range session.Answers {
			if session.Answers[j].QuestionIndex == wantIdx {
				answer = &session.Answers[j]
				break
			}
		}
		if answer == nil {
			out[skill] = fmt.Sprintf("No answer provided for %s.", skill)
			continue
		}

		rating := neutralRating
		if answer.Assessment != nil {
			rating = answer.Assessment.Rating
		}

		critique, err := s.model.Generate(ctx, prompts.SkillCritique(skill, answer.Transcript, rating))
		s.stats.IncModelCall(err == nil)
		if err != nil {
			out[skill] = fmt.Sprintf("Error: %v", err)
			continue
		}
		out[skill] = api.CleanResponse(critique)
	}
	return out
}

func (s *Service) emotionBullets(ctx context.Context, averages map[string]float64) []string {
	raw, err := s.model.Generate(ctx, prompts.EmotionBullets(averages))
	s.stats.IncModelCall(err == nil)
	if err != nil {
		return []string{"Could not analyse emotions via LLM."}
	}

	var bullets []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•- "))
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

func round(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
