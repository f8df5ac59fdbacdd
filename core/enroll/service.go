package enroll

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/certificate"
	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/notification"
)

var (
	ErrNotFound         = errors.New("enrollment not found")
	ErrAlreadyEnrolled  = errors.New("user is already enrolled in this course")
	ErrAlreadyCompleted = errors.New("lesson is already completed")
)

type (
	Repository interface {
		// CreateEnrollment inserts the row, or returns ErrAlreadyEnrolled when
		// one already exists for the (user, course) pair. The check and the
		// insert must happen atomically.
		CreateEnrollment(enr Enrollment) (Enrollment, error)
		GetEnrollment(userID, courseID string) (Enrollment, error)
		QueryUserEnrollments(userID string) ([]Enrollment, error)
		SetEnrollmentCompleted(id string, at time.Time) (Enrollment, error)
		// CreateLessonProgress inserts the row, or returns ErrAlreadyCompleted
		// when one already exists for the (user, lesson) pair. The check and
		// the insert must happen atomically.
		CreateLessonProgress(lp LessonProgress) (LessonProgress, error)
		QueryUserProgress(userID string) ([]LessonProgress, error)
		HasLessonProgress(userID, lessonID string) (bool, error)
	}

	// CourseRepository is the read-only view of course storage this service needs.
	CourseRepository interface {
		GetCourseByID(id string) (course.Course, error)
		GetLessonByID(id string) (course.Lesson, error)
	}

	// CertificateIssuer issues course completion certificates; satisfied by
	// certificate.Service. Issue must be idempotent.
	CertificateIssuer interface {
		Issue(userID, courseID string) (certificate.Certificate, error)
	}

	// Notifier records user notifications; satisfied by notification.Service.
	Notifier interface {
		Notify(userID, title, message, kind string) (notification.Notification, error)
	}

	Service struct {
		repo     Repository
		courses  CourseRepository
		certs    CertificateIssuer // optional
		notifier Notifier          // optional
		clock    core.Clock
	}
)

func NewService(repo Repository, courses CourseRepository, certs CertificateIssuer, notifier Notifier, clock core.Clock) *Service {
	return &Service{
		repo:     repo,
		courses:  courses,
		certs:    certs,
		notifier: notifier,
		clock:    clock,
	}
}

// Enroll adds the user to the course. At most one enrollment may exist per
// (user, course) pair; the repository enforces the pair's uniqueness
// atomically, so concurrent calls cannot both insert.
func (svc *Service) Enroll(userID, courseID string) (Enrollment, error) {
	if _, err := svc.courses.GetCourseByID(courseID); err != nil {
		return Enrollment{}, err
	}

	enr := Enrollment{
		ID:         uuid.New().String(),
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: svc.clock.Now(),
	}
	return svc.repo.CreateEnrollment(enr)
}

// CompleteLesson records the lesson as completed for the user. A repeated call
// is rejected rather than inserting a duplicate row. Completing the last
// lesson of an enrolled course stamps the enrollment and issues a certificate.
func (svc *Service) CompleteLesson(userID, lessonID string) (LessonProgress, error) {
	lesson, err := svc.courses.GetLessonByID(lessonID)
	if err != nil {
		return LessonProgress{}, err
	}

	lp := LessonProgress{
		ID:          uuid.New().String(),
		UserID:      userID,
		LessonID:    lessonID,
		CompletedAt: svc.clock.Now(),
	}
	lp, err = svc.repo.CreateLessonProgress(lp)
	if err != nil {
		return LessonProgress{}, err
	}

	svc.checkCourseCompletion(userID, lesson.CourseID)
	return lp, nil
}

// checkCourseCompletion stamps the enrollment, issues a certificate and
// notifies the user once every lesson of the course is completed.
func (svc *Service) checkCourseCompletion(userID, courseID string) {
	progress := svc.CourseProgress(userID, courseID)
	if progress.Total == 0 || progress.Completed < progress.Total {
		return
	}

	enr, err := svc.repo.GetEnrollment(userID, courseID)
	if err != nil || enr.CompletedAt.Valid {
		return
	}
	if _, err := svc.repo.SetEnrollmentCompleted(enr.ID, svc.clock.Now()); err != nil {
		return
	}

	if svc.certs != nil {
		_, _ = svc.certs.Issue(userID, courseID)
	}
	if svc.notifier != nil {
		crs, err := svc.courses.GetCourseByID(courseID)
		if err == nil {
			msg := fmt.Sprintf("Congratulations! You completed %q. Your certificate is ready.", crs.Title)
			_, _ = svc.notifier.Notify(userID, "Course Completed", msg, notification.TypeSuccess)
		}
	}
}

// CourseProgress derives the user's completion state for the course.
// An unknown course yields {0, 0, 0}.
func (svc *Service) CourseProgress(userID, courseID string) Progress {
	crs, err := svc.courses.GetCourseByID(courseID)
	if err != nil {
		return Progress{}
	}

	lessonIDs := make(map[string]struct{}, len(crs.Lessons))
	for _, l := range crs.Lessons {
		lessonIDs[l.ID] = struct{}{}
	}

	var completed int
	if rows, err := svc.repo.QueryUserProgress(userID); err == nil {
		for _, lp := range rows {
			if _, ok := lessonIDs[lp.LessonID]; ok {
				completed++
			}
		}
	}

	total := len(crs.Lessons)
	return Progress{
		Completed:  completed,
		Total:      total,
		Percentage: core.RoundPercent(float64(completed), float64(total)),
	}
}

// IsLessonCompleted reports whether a LessonProgress row exists for the pair.
func (svc *Service) IsLessonCompleted(userID, lessonID string) bool {
	done, err := svc.repo.HasLessonProgress(userID, lessonID)
	return err == nil && done
}

func (svc *Service) UserEnrollments(userID string) ([]Enrollment, error) {
	return svc.repo.QueryUserEnrollments(userID)
}

// CompletedCourses returns the user's completed enrollments joined to their
// courses. Enrollments whose course no longer exists are dropped silently.
func (svc *Service) CompletedCourses(userID string) ([]CompletedCourse, error) {
	enrs, err := svc.repo.QueryUserEnrollments(userID)
	if err != nil {
		return nil, err
	}

	completed := make([]CompletedCourse, 0, len(enrs))
	for _, enr := range enrs {
		if !enr.CompletedAt.Valid {
			continue
		}
		crs, err := svc.courses.GetCourseByID(enr.CourseID)
		if err != nil {
			continue
		}
		completed = append(completed, CompletedCourse{
			Course:       crs,
			CompletedAt:  enr.CompletedAt.Time,
			TotalLessons: len(crs.Lessons),
		})
	}
	return completed, nil
}
