package storage

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"softskill-server/internal/speech"
)

// Session status values. The transition is monotonic: in_progress is set at
// creation and completed is terminal.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ResumeAnalysis is one resume upload: the raw model analysis blob plus the
// lazily computed skills summary. Immutable after creation except for
// SkillsSummary, which is cached once.
type ResumeAnalysis struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	Analysis       string             `bson:"analysis" json:"analysis"`
	JobDescription string             `bson:"job_description,omitempty" json:"job_description,omitempty"`
	ResumeText     string             `bson:"resume_text" json:"-"`
	SkillsSummary  string             `bson:"skills_summary,omitempty" json:"skills_summary,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// Assessment is the structured rating attached to one answer. Both question
// shapes share the struct; the fields that do not apply to a shape carry
// fixed placeholders.
type Assessment struct {
	Rating       int      `bson:"rating" json:"rating"`
	Explanation  string   `bson:"explanation" json:"explanation"`
	IdealAnswer  string   `bson:"ideal_answer" json:"ideal_answer"`
	Strengths    []string `bson:"strengths" json:"strengths"`
	Improvements []string `bson:"improvements" json:"improvements"`
}

// AnswerRecord is one submitted answer. Owned exclusively by its session,
// append-only, ordered by submission completion.
type AnswerRecord struct {
	QuestionIndex int            `bson:"questionIndex" json:"questionIndex"`
	Transcript    string         `bson:"transcript" json:"transcript"`
	Language      string         `bson:"language" json:"language"`
	Metrics       speech.Metrics `bson:",inline" json:"metrics"`
	Assessment    *Assessment    `bson:"assessment,omitempty" json:"assessment,omitempty"`
	Timestamp     time.Time      `bson:"timestamp" json:"timestamp"`
}

// EmotionSnapshot is one timestamped facial-emotion distribution sample,
// label -> percentage.
type EmotionSnapshot struct {
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
	Distribution map[string]float64 `bson:"distribution" json:"distribution"`
}

// InterviewSession is the central entity: one interview attempt by one
// candidate. len(Questions) == TechnicalCount + len(SoftSkillSections);
// question TechnicalCount+i belongs to SoftSkillSections[i].
type InterviewSession struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email             string             `bson:"email" json:"email"`
	Questions         []string           `bson:"questions" json:"questions"`
	TechnicalCount    int                `bson:"technicalCount" json:"technicalCount"`
	SoftSkillSections []string           `bson:"softSkillSections" json:"softSkillSections"`
	Answers           []AnswerRecord     `bson:"answers" json:"answers"`
	EmotionTimeline   []EmotionSnapshot  `bson:"emotionTimeline" json:"emotionTimeline"`
	Status            string             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	CompletedAt       *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
