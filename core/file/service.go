package file

import (
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/course"
)

var ErrNotFound = errors.New("file not found")

type (
	Repository interface {
		CreateFile(f File) (File, error)
		GetFileByID(id string) (File, error)
		QueryCourseFiles(courseID string) ([]File, error)
		QueryLessonFiles(lessonID string) ([]File, error)
		DeleteFile(id string) error
	}

	// CourseRepository is the read-only view of course storage this service needs.
	CourseRepository interface {
		GetCourseByID(id string) (course.Course, error)
		GetLessonByID(id string) (course.Lesson, error)
	}

	Service struct {
		repo    Repository
		courses CourseRepository
		clock   core.Clock
	}
)

func NewService(repo Repository, courses CourseRepository, clock core.Clock) *Service {
	return &Service{repo: repo, courses: courses, clock: clock}
}

// Add attaches a file to a course or lesson. Admin-only.
func (svc *Service) Add(actor core.Actor, nf NewFile) (File, error) {
	if !actor.IsAdmin() {
		return File{}, core.ErrPermissionDenied
	}
	if err := nf.Validate(); err != nil {
		return File{}, err
	}
	if nf.CourseID != "" {
		if _, err := svc.courses.GetCourseByID(nf.CourseID); err != nil {
			return File{}, err
		}
	}
	if nf.LessonID != "" {
		if _, err := svc.courses.GetLessonByID(nf.LessonID); err != nil {
			return File{}, err
		}
	}

	f := File{
		ID:         uuid.New().String(),
		Name:       nf.Name,
		Type:       nf.Type,
		URL:        nf.URL,
		CourseID:   null.NewString(nf.CourseID, nf.CourseID != ""),
		LessonID:   null.NewString(nf.LessonID, nf.LessonID != ""),
		UploadedBy: actor.ID,
		UploadedAt: svc.clock.Now(),
	}
	return svc.repo.CreateFile(f)
}

func (svc *Service) ForCourse(courseID string) ([]File, error) {
	return svc.repo.QueryCourseFiles(courseID)
}

func (svc *Service) ForLesson(lessonID string) ([]File, error) {
	return svc.repo.QueryLessonFiles(lessonID)
}

// Delete removes a file record. Admin-only.
func (svc *Service) Delete(actor core.Actor, id string) error {
	if !actor.IsAdmin() {
		return core.ErrPermissionDenied
	}
	if _, err := svc.repo.GetFileByID(id); err != nil {
		return err
	}
	return svc.repo.DeleteFile(id)
}
