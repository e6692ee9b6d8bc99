// Package prompts builds every prompt sent to the generative model. Keeping
// them in one place makes the model contract reviewable.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResumeAnalysis asks for a structured-JSON extraction of a resume, optionally
// scored against a job description.
func ResumeAnalysis(resumeText, jobDescription string) string {
	if jobDescription != "" {
		return fmt.Sprintf(`You are an HR assistant analyzing a resume for a specific job.
Extract the following details in a structured JSON:
{
  "full_name": string,
  "contact_details": string,
  "professional_summary": string,
  "relevant_experience": string,
  "key_skills": string,
  "certifications": string,
  "industry_expertise": string,
  "match_score": number,
  "match_explanation": string
}

Resume Text:
%s

Job Description:
%s
`, resumeText, jobDescription)
	}

	return fmt.Sprintf(`You are an HR assistant analyzing a resume.
Extract the following details in a structured JSON:
{
  "full_name": string,
  "contact_details": string,
  "professional_summary": string,
  "relevant_experience": string,
  "key_skills": string,
  "certifications": string,
  "industry_expertise": string
}

Resume Text:
%s
`, resumeText)
}

// SkillSummary asks for a short deduplicated bullet list of skill names.
func SkillSummary(rawSkills string) string {
	return fmt.Sprintf(`We have these raw skill lines from a resume:
"""%s"""

Ignore any mention that the candidate lacks skills.
Produce a SHORT bullet list (max 10) of distinct skill names.
No explanation, no code fences, just bullet items.
`, rawSkills)
}

// TechnicalQuestions asks for n skill-based questions, each referencing at
// least two distinct skills from the list.
func TechnicalQuestions(skills []string, n int) string {
	var bullets strings.Builder
	for _, s := range skills {
		fmt.Fprintf(&bullets, "- %s\n", s)
	}

	return fmt.Sprintf(`Below is the candidate's skill list (ignore any mention of lacking skill):
%s
Generate exactly %d skill-based interview questions.
Each question must mention at least two distinct skill names from above
and ask how the candidate has used them in real projects.

Return only a valid JSON array of %d strings, with no extra commentary or metadata.
If you cannot comply, return "Unable to comply."
`, bullets.String(), n, n)
}

// TechnicalAssessment asks for a rating, explanation and ideal-answer summary
// for a technical question.
func TechnicalAssessment(question, transcript string) string {
	return fmt.Sprintf(`You are an expert interviewer.
Rate the user's answer on a scale of 1 to 5 (5=excellent).
Provide a short explanation and a short 'ideal answer' summary.
Return only valid JSON:
{
  "rating": integer,
  "explanation": string,
  "ideal_answer": string
}

Question: %s
User's Answer Transcript: %s
`, question, transcript)
}

// SoftSkillAssessment asks for a rating plus strengths and improvements for a
// soft-skill question.
func SoftSkillAssessment(question, transcript string) string {
	return fmt.Sprintf(`You are an expert behavioral interviewer.
Rate the user's answer on a scale of 1 to 5 (5=excellent).
List what the candidate did well and what they should improve.
Return only valid JSON:
{
  "rating": integer,
  "strengths": [string],
  "improvements": [string]
}

Question: %s
User's Answer Transcript: %s
`, question, transcript)
}

// SkillCritique asks for a short bullet critique of one soft-skill answer.
func SkillCritique(skill, transcript string, rating int) string {
	return fmt.Sprintf(`You are evaluating the candidate's %s skill.
Transcript:
"""%s"""
Numeric rating: %d/5.
Give up to 5 bullet-points (strengths / weaknesses).`, skill, transcript, rating)
}

// FinalSummary synthesizes the numeric stats and the emotion digest into a
// short natural-language assessment.
func FinalSummary(avgRating, fillerRate float64, totalWords int, emotionDigest string) string {
	return fmt.Sprintf(`You are an interview evaluator.

Speech metrics → rating %.2f/5, filler %.3f, words %d.
Emotions → %s

Interpretation rules:
- A predominantly *neutral* face (e.g., >60 %%) usually signals calm composure, **not** disengagement.
- A predominantly *happy* or *surprise* face indicates enthusiasm / positive engagement.
- Anger, sadness, fear or disgust in high proportions may indicate stress or negativity.

Write 3-4 sentences assessing communication, confidence and engagement,
using BOTH speech and emotion evidence. No code fences.`, avgRating, fillerRate, totalWords, emotionDigest)
}

// EmotionBullets asks for concise bullet points about the averaged facial
// emotion percentages.
func EmotionBullets(averages map[string]float64) string {
	blob, _ := json.MarshalIndent(averages, "", "  ")
	return fmt.Sprintf(`Given these average facial-emotion percentages:
%s

Using the same interpretation rules as above (neutral = calm,
happy/surprise = enthusiastic),
list up to 4 concise bullet points on engagement, stress level and authenticity.
No code fences.`, string(blob))
}
