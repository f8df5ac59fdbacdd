package assignment

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/darasa-lms/darasa/core"
)

// Derived assignment statuses. Status is never stored; it is recomputed
// against the clock on every call.
const (
	StatusNotSubmitted = "not_submitted"
	StatusSubmitted    = "submitted"
	StatusGraded       = "graded"
	StatusOverdue      = "overdue"
)

type Assignment struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"` // UTC
	MaxPoints   int       `json:"max_points"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

type Submission struct {
	ID           string      `json:"id"`
	AssignmentID string      `json:"assignment_id"`
	UserID       string      `json:"user_id"`
	Content      string      `json:"content"`
	FileURL      null.String `json:"file_url,omitempty"`
	SubmittedAt  time.Time   `json:"submitted_at"` // UTC
	Grade        null.Int    `json:"grade,omitempty"`
	Feedback     null.String `json:"feedback,omitempty"`
	GradedAt     null.Time   `json:"graded_at,omitempty"`
	GradedBy     null.String `json:"graded_by,omitempty"`
}

// View is an assignment enriched with the user's submission and derived status.
type View struct {
	Assignment
	Submission *Submission `json:"submission,omitempty"`
	Status     string      `json:"status"`
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	CourseID    string    `json:"course_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	MaxPoints   int       `json:"max_points" validate:"required,min=1"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	return core.Validate.Struct(na)
}

// NewSubmission is a student's answer to an assignment.
type NewSubmission struct {
	Content string `json:"content" validate:"required"`
	FileURL string `json:"file_url" validate:"omitempty,url"`
}

func (ns *NewSubmission) Validate() error {
	ns.Content = core.CleanString(ns.Content)
	return core.Validate.Struct(ns)
}

// GradeSubmission carries a grader's verdict.
type GradeSubmission struct {
	Grade    int    `json:"grade" validate:"min=0"`
	Feedback string `json:"feedback"`
}

func (gs *GradeSubmission) Validate() error {
	return core.Validate.Struct(gs)
}
