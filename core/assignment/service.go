package assignment

import (
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/enroll"
)

var (
	ErrNotFound           = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

type (
	Repository interface {
		CreateAssignment(a Assignment) (Assignment, error)
		GetAssignmentByID(id string) (Assignment, error)
		QueryCourseAssignments(courseID string) ([]Assignment, error)
		CreateSubmission(sub Submission) (Submission, error)
		GetSubmissionByID(id string) (Submission, error)
		// GetUserSubmission returns the user's latest submission for the assignment.
		GetUserSubmission(assignmentID, userID string) (Submission, error)
		QueryUserSubmissions(userID string) ([]Submission, error)
		UpdateSubmission(sub Submission) (Submission, error)
	}

	// EnrollmentRepository is the read-only view of enrollment storage this
	// service needs.
	EnrollmentRepository interface {
		QueryUserEnrollments(userID string) ([]enroll.Enrollment, error)
	}

	Service struct {
		repo        Repository
		enrollments EnrollmentRepository
		clock       core.Clock
	}
)

func NewService(repo Repository, enrollments EnrollmentRepository, clock core.Clock) *Service {
	return &Service{repo: repo, enrollments: enrollments, clock: clock}
}

func (svc *Service) Create(actor core.Actor, na NewAssignment) (Assignment, error) {
	if !actor.IsAdmin() {
		return Assignment{}, core.ErrPermissionDenied
	}
	if err := na.Validate(); err != nil {
		return Assignment{}, err
	}

	a := Assignment{
		ID:          uuid.New().String(),
		CourseID:    na.CourseID,
		Title:       na.Title,
		Description: na.Description,
		DueDate:     na.DueDate,
		MaxPoints:   na.MaxPoints,
		CreatedAt:   svc.clock.Now(),
	}
	return svc.repo.CreateAssignment(a)
}

func (svc *Service) GetByID(id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

// ForUser returns the assignments of every course the user is enrolled in.
func (svc *Service) ForUser(userID string) ([]Assignment, error) {
	enrs, err := svc.enrollments.QueryUserEnrollments(userID)
	if err != nil {
		return nil, err
	}

	assignments := make([]Assignment, 0)
	for _, enr := range enrs {
		as, err := svc.repo.QueryCourseAssignments(enr.CourseID)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, as...)
	}
	return assignments, nil
}

// Status derives the assignment's state for a submission (nil when the user
// has none), evaluated against the clock at call time.
func (svc *Service) Status(a Assignment, sub *Submission) string {
	if sub != nil {
		if sub.Grade.Valid {
			return StatusGraded
		}
		return StatusSubmitted
	}
	if svc.clock.Now().After(a.DueDate) {
		return StatusOverdue
	}
	return StatusNotSubmitted
}

// WithStatus returns the user's assignments enriched with their submission
// and derived status.
func (svc *Service) WithStatus(userID string) ([]View, error) {
	assignments, err := svc.ForUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(assignments))
	for _, a := range assignments {
		var sub *Submission
		if s, err := svc.repo.GetUserSubmission(a.ID, userID); err == nil {
			sub = &s
		} else if err != ErrSubmissionNotFound {
			return nil, err
		}
		views = append(views, View{Assignment: a, Submission: sub, Status: svc.Status(a, sub)})
	}
	return views, nil
}

// Submit records the user's answer to an assignment.
func (svc *Service) Submit(userID, assignmentID string, ns NewSubmission) (Submission, error) {
	if err := ns.Validate(); err != nil {
		return Submission{}, err
	}
	if _, err := svc.repo.GetAssignmentByID(assignmentID); err != nil {
		return Submission{}, err
	}

	sub := Submission{
		ID:           uuid.New().String(),
		AssignmentID: assignmentID,
		UserID:       userID,
		Content:      ns.Content,
		FileURL:      null.NewString(ns.FileURL, ns.FileURL != ""),
		SubmittedAt:  svc.clock.Now(),
	}
	return svc.repo.CreateSubmission(sub)
}

// Grade records a grade and feedback on a submission. Admin-only.
func (svc *Service) Grade(actor core.Actor, submissionID string, gs GradeSubmission) (Submission, error) {
	if !actor.IsAdmin() {
		return Submission{}, core.ErrPermissionDenied
	}
	if err := gs.Validate(); err != nil {
		return Submission{}, err
	}

	sub, err := svc.repo.GetSubmissionByID(submissionID)
	if err != nil {
		return Submission{}, err
	}
	a, err := svc.repo.GetAssignmentByID(sub.AssignmentID)
	if err != nil {
		return Submission{}, err
	}
	if gs.Grade > a.MaxPoints {
		return Submission{}, core.NewValidationError(
			errors.New("grade exceeds max points"),
			core.FieldError{Field: "grade", Error: "grade exceeds max points"},
		)
	}

	sub.Grade = null.IntFrom(gs.Grade)
	sub.Feedback = null.NewString(gs.Feedback, gs.Feedback != "")
	sub.GradedAt = null.TimeFrom(svc.clock.Now())
	sub.GradedBy = null.StringFrom(actor.ID)
	return svc.repo.UpdateSubmission(sub)
}
