package course

import (
	"errors"

	"github.com/google/uuid"

	"github.com/darasa-lms/darasa/core"
)

var (
	ErrNotFound       = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

type (
	Repository interface {
		CreateCourse(crs Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		GetLessonByID(id string) (Lesson, error)
		// UpdateCourse saves the course and, when lessons is non-nil,
		// replaces the course's lesson list wholesale.
		UpdateCourse(crs Course, lessons []Lesson) (Course, error)
		// DeleteCourse removes the course and cascades to its lessons and all
		// records referencing them (enrollments, progress, assignments,
		// submissions, quizzes, attempts, files).
		DeleteCourse(id string) error
	}

	Service struct {
		repo  Repository
		clock core.Clock
	}
)

func NewService(repo Repository, clock core.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (svc *Service) Create(actor core.Actor, nc NewCourse) (Course, error) {
	if !actor.IsAdmin() {
		return Course{}, core.ErrPermissionDenied
	}
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}

	now := svc.clock.Now()
	crs := Course{
		ID:          uuid.New().String(),
		Title:       nc.Title,
		Description: nc.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	crs.Lessons = buildLessons(crs.ID, nc.Lessons)
	return svc.repo.CreateCourse(crs)
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) GetLessonByID(id string) (Lesson, error) {
	return svc.repo.GetLessonByID(id)
}

func (svc *Service) Update(actor core.Actor, id string, uc UpdateCourse) (Course, error) {
	if !actor.IsAdmin() {
		return Course{}, core.ErrPermissionDenied
	}

	orig, err := svc.repo.GetCourseByID(id)
	if err != nil {
		return Course{}, err
	}
	if err := uc.Validate(orig); err != nil {
		return Course{}, err
	}

	crs := Course{
		ID:          id,
		Title:       uc.Title,
		Description: uc.Description,
		CreatedAt:   orig.CreatedAt,
		UpdatedAt:   svc.clock.Now(),
	}

	var lessons []Lesson
	if uc.Lessons != nil {
		lessons = buildLessons(id, uc.Lessons)
	}
	return svc.repo.UpdateCourse(crs, lessons)
}

func (svc *Service) Delete(actor core.Actor, id string) error {
	if !actor.IsAdmin() {
		return core.ErrPermissionDenied
	}
	return svc.repo.DeleteCourse(id)
}

// buildLessons assigns fresh ids and a contiguous 0..n-1 order to the lessons.
func buildLessons(courseID string, nls []NewLesson) []Lesson {
	if nls == nil {
		return nil
	}
	lessons := make([]Lesson, 0, len(nls))
	for i, nl := range nls {
		lessons = append(lessons, Lesson{
			ID:          uuid.New().String(),
			CourseID:    courseID,
			Title:       nl.Title,
			Content:     nl.Content,
			ContentType: nl.ContentType,
			OrderIndex:  i,
		})
	}
	return lessons
}
