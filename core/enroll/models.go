package enroll

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/darasa-lms/darasa/core/course"
)

type Enrollment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CourseID    string    `json:"course_id"`
	EnrolledAt  time.Time `json:"enrolled_at"` // UTC
	CompletedAt null.Time `json:"completed_at,omitempty"`
}

// LessonProgress marks one (user, lesson) pair as completed. Its presence is
// the completion test; there is no stored boolean.
type LessonProgress struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	LessonID    string    `json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"` // UTC
}

// Progress is the derived per-course completion state for one user.
type Progress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// CompletedCourse is a completed enrollment joined to its course.
type CompletedCourse struct {
	course.Course
	CompletedAt  time.Time `json:"completed_at"`
	TotalLessons int       `json:"total_lessons"`
}
