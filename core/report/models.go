package report

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Activity types
const (
	ActivitySubmission  = "submission"
	ActivityQuizAttempt = "quiz_attempt"
)

// Stats is the student dashboard summary. Everything here is derived from
// stored rows on every call; nothing is cached.
type Stats struct {
	EnrolledCourses    int          `json:"enrolled_courses"`
	CompletedCourses   int          `json:"completed_courses"`
	PendingAssignments int          `json:"pending_assignments"`
	AverageQuizScore   null.Float64 `json:"average_quiz_score,omitempty"`
	CertificatesEarned int          `json:"certificates_earned"`
}

// Activity is one entry in a user's recent activity feed.
type Activity struct {
	Type        string    `json:"type"` // submission | quiz_attempt
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        time.Time `json:"time"` // UTC
}
