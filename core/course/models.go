package course

import (
	"time"

	"github.com/darasa-lms/darasa/core"
)

// Lesson content types
const (
	ContentText  = "text"
	ContentVideo = "video"
)

type Lesson struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"` // text | video
	OrderIndex  int    `json:"order_index"`
}

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC

	// Lessons are ordered by OrderIndex, contiguous 0..n-1.
	Lessons []Lesson `json:"lessons"`
}

type NewLesson struct {
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content"`
	ContentType string `json:"content_type" validate:"required,oneof=text video"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	Lessons     []NewLesson `json:"lessons" validate:"omitempty,dive"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	return core.Validate.Struct(nc)
}

// UpdateCourse defines what may be provided to modify an existing Course.
// A non-nil Lessons slice replaces the course's lesson list wholesale.
type UpdateCourse struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Lessons     []NewLesson `json:"lessons" validate:"omitempty,dive"`
}

func (uc *UpdateCourse) Validate(orig Course) error {
	title := core.CleanString(uc.Title)
	if title != "" {
		uc.Title = title
	} else {
		uc.Title = orig.Title
	}
	if uc.Description == "" {
		uc.Description = orig.Description
	}
	return core.Validate.Struct(uc)
}
