package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"softskill-server/internal/api"
	"softskill-server/internal/prompts"
	"softskill-server/internal/storage"
)

const (
	// neutralRating is used whenever the model produced nothing usable.
	neutralRating = 3

	placeholder = "N/A"
)

// assess builds the structured rating for one answer. It never surfaces a
// model failure: unusable output degrades to a neutral assessment with a
// diagnostic explanation.
func (s *Service) assess(ctx context.Context, session *storage.InterviewSession, questionIndex int, transcript string) storage.Assessment {
	question := ""
	if questionIndex >= 0 && questionIndex < len(session.Questions) {
		question = session.Questions[questionIndex]
	}
	technical := questionIndex < session.TechnicalCount

	var prompt string
	if technical {
		prompt = prompts.TechnicalAssessment(question, transcript)
	} else {
		prompt = prompts.SoftSkillAssessment(question, transcript)
	}

	raw, err := s.model.Generate(ctx, prompt)
	s.stats.IncModelCall(err == nil)
	if err != nil {
		return degradedAssessment(fmt.Sprintf("Error: %v", err))
	}
	return parseAssessment(raw, technical)
}

// parseAssessment parses model output into an Assessment for the given
// question shape. Output is stripped of fences and parsed as JSON only when
// it begins with '{'; anything else yields the neutral default.
func parseAssessment(raw string, technical bool) storage.Assessment {
	raw = api.CleanResponse(raw)
	if !strings.HasPrefix(raw, "{") {
		return degradedAssessment(truncate(raw, 200))
	}

	var parsed struct {
		Rating       *int     `json:"rating"`
		Explanation  string   `json:"explanation"`
		IdealAnswer  string   `json:"ideal_answer"`
		Strengths    []string `json:"strengths"`
		Improvements []string `json:"improvements"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return degradedAssessment(truncate(raw, 200))
	}

	a := emptyAssessment()
	if parsed.Rating != nil {
		a.Rating = *parsed.Rating
	}
	if technical {
		if parsed.Explanation != "" {
			a.Explanation = parsed.Explanation
		}
		if parsed.IdealAnswer != "" {
			a.IdealAnswer = parsed.IdealAnswer
		}
	} else {
		if len(parsed.Strengths) > 0 {
			a.Strengths = parsed.Strengths
		}
		if len(parsed.Improvements) > 0 {
			a.Improvements = parsed.Improvements
		}
	}
	return a
}

// emptyAssessment carries the neutral rating and the fixed placeholders for
// every field; the applicable shape's fields get overwritten.
func emptyAssessment() storage.Assessment {
	return storage.Assessment{
		Rating:       neutralRating,
		Explanation:  placeholder,
		IdealAnswer:  placeholder,
		Strengths:    []string{},
		Improvements: []string{},
	}
}

func degradedAssessment(diagnostic string) storage.Assessment {
	a := emptyAssessment()
	a.Explanation = diagnostic
	return a
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
