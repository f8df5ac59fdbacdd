package quiz

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/darasa-lms/darasa/core"
)

// Question types
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTrueFalse      = "true_false"
)

type Question struct {
	ID            string   `json:"id"`
	QuizID        string   `json:"quiz_id"`
	Text          string   `json:"question"`
	Type          string   `json:"type"` // multiple_choice | true_false
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"` // index into Options
	Points        int      `json:"points"`
}

type Quiz struct {
	ID          string     `json:"id"`
	CourseID    string     `json:"course_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	TimeLimit   null.Int   `json:"time_limit,omitempty"` // minutes
	MaxAttempts int        `json:"max_attempts"`
	CreatedAt   time.Time  `json:"created_at"` // UTC
}

// MaxScore is the sum of all question points.
func (q Quiz) MaxScore() int {
	var max int
	for _, qn := range q.Questions {
		max += qn.Points
	}
	return max
}

// Attempt is one scored pass at a quiz. Score and MaxScore are frozen at
// submission time and never recomputed, even if the quiz changes later.
type Attempt struct {
	ID          string         `json:"id"`
	QuizID      string         `json:"quiz_id"`
	UserID      string         `json:"user_id"`
	Answers     map[string]int `json:"answers"` // question id -> selected option index
	Score       int            `json:"score"`
	MaxScore    int            `json:"max_score"`
	StartedAt   time.Time      `json:"started_at"` // UTC
	CompletedAt null.Time      `json:"completed_at,omitempty"`
}

// Summary is the derived per-quiz attempt state for one user.
type Summary struct {
	Attempts          []Attempt    `json:"attempts"`
	BestScorePct      null.Float64 `json:"best_score_pct,omitempty"`
	AttemptsRemaining int          `json:"attempts_remaining"`
}

// View is a quiz enriched with the user's attempt summary.
type View struct {
	Quiz
	Summary
}

type NewQuestion struct {
	Text          string   `json:"question" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=multiple_choice true_false"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer" validate:"min=0"`
	Points        int      `json:"points" validate:"required,min=1"`
}

// NewQuiz contains information needed to create a new Quiz.
type NewQuiz struct {
	CourseID    string        `json:"course_id" validate:"required"`
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	Questions   []NewQuestion `json:"questions" validate:"required,min=1,dive"`
	TimeLimit   int           `json:"time_limit" validate:"min=0"` // minutes, 0 = unlimited
	MaxAttempts int           `json:"max_attempts" validate:"required,min=1"`
}

func (nq *NewQuiz) Validate() error {
	nq.Title = core.CleanString(nq.Title)
	if err := core.Validate.Struct(nq); err != nil {
		return err
	}
	for _, qn := range nq.Questions {
		if qn.CorrectAnswer >= len(qn.Options) {
			return core.NewValidationError(
				nil,
				core.FieldError{Field: "correct_answer", Error: "correct_answer is not an option index"},
			)
		}
	}
	return nil
}
