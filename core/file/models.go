package file

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/darasa-lms/darasa/core"
)

// File types
const (
	TypePDF   = "pdf"
	TypeVideo = "video"
	TypeLink  = "link"
)

// File is a resource attached to a course or a lesson.
type File struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       string      `json:"type"` // pdf | video | link
	URL        string      `json:"url"`
	CourseID   null.String `json:"course_id,omitempty"`
	LessonID   null.String `json:"lesson_id,omitempty"`
	UploadedBy string      `json:"uploaded_by"`
	UploadedAt time.Time   `json:"uploaded_at"` // UTC
}

// NewFile contains information needed to attach a new File.
type NewFile struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=pdf video link"`
	URL      string `json:"url" validate:"required,url"`
	CourseID string `json:"course_id"`
	LessonID string `json:"lesson_id"`
}

func (nf *NewFile) Validate() error {
	nf.Name = core.CleanString(nf.Name)
	if err := core.Validate.Struct(nf); err != nil {
		return err
	}
	if nf.CourseID == "" && nf.LessonID == "" {
		return core.NewValidationError(
			nil,
			core.FieldError{Field: "course_id", Error: "a file must attach to a course or a lesson"},
		)
	}
	return nil
}
