package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"softskill-server/internal/api"
	"softskill-server/internal/config"
	"softskill-server/internal/prompts"
)

// minSkillCoverage is how many distinct skills every generated technical
// question must reference.
const minSkillCoverage = 2

const maxSkills = 10

// parseSkillLines turns a bullet-list skill summary into up to maxSkills
// distinct skill strings, order-preserving.
func parseSkillLines(summary string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, line := range strings.Split(summary, "\n") {
		skill := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*• "))
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
		if len(out) == maxSkills {
			break
		}
	}
	return out
}

// parseQuestionArray parses model output as a JSON array of strings. Anything
// else degrades gracefully to a single-element list wrapping the raw text.
func parseQuestionArray(raw string) []string {
	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return []string{raw}
	}
	return arr
}

// skillCoverage counts the distinct skills referenced in a question,
// case-insensitive substring match.
func skillCoverage(question string, skills []string) int {
	q := strings.ToLower(question)
	n := 0
	for _, skill := range skills {
		if strings.Contains(q, strings.ToLower(skill)) {
			n++
		}
	}
	return n
}

func coveragePasses(questions, skills []string) bool {
	for _, q := range questions {
		if skillCoverage(q, skills) < minSkillCoverage {
			return false
		}
	}
	return true
}

// generateTechnical asks the model for the technical question batch and
// validates skill coverage, regenerating the whole batch at most once. It
// never fails: model errors become a single diagnostic question.
func (s *Service) generateTechnical(ctx context.Context, skills []string) []string {
	prompt := prompts.TechnicalQuestions(skills, s.technical)

	gen := func() []string {
		raw, err := s.model.Generate(ctx, prompt)
		s.stats.IncModelCall(err == nil)
		if err != nil {
			return []string{fmt.Sprintf("Error generating questions: %v", err)}
		}
		return parseQuestionArray(api.CleanResponse(raw))
	}

	return retryOnce(gen, func(qs []string) bool { return coveragePasses(qs, skills) })
}

// softSkillQuestions draws one random question per category, in the fixed
// category order.
func (s *Service) softSkillQuestions() []string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	out := make([]string, 0, len(config.SoftSkillSections))
	for _, section := range config.SoftSkillSections {
		q, ok := s.bank.Pick(section, s.rng)
		if !ok {
			q = fmt.Sprintf("[Missing question for %s]", section)
		}
		out = append(out, q)
	}
	return out
}
