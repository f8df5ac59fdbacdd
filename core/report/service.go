package report

import (
	"fmt"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/darasa-lms/darasa/core/assignment"
	"github.com/darasa-lms/darasa/core/certificate"
	"github.com/darasa-lms/darasa/core/enroll"
	"github.com/darasa-lms/darasa/core/quiz"
)

// DefaultActivityLimit caps the recent activity feed when the caller does not
// ask for a specific size.
const DefaultActivityLimit = 5

type (
	// EnrollmentRepository is the read-only view of enrollment storage this
	// service needs.
	EnrollmentRepository interface {
		QueryUserEnrollments(userID string) ([]enroll.Enrollment, error)
	}

	// AssignmentLister yields per-user assignment views with derived status;
	// satisfied by assignment.Service.
	AssignmentLister interface {
		WithStatus(userID string) ([]assignment.View, error)
	}

	AssignmentRepository interface {
		GetAssignmentByID(id string) (assignment.Assignment, error)
		QueryUserSubmissions(userID string) ([]assignment.Submission, error)
	}

	QuizRepository interface {
		GetQuizByID(id string) (quiz.Quiz, error)
		QueryUserAttempts(userID string) ([]quiz.Attempt, error)
	}

	CertificateRepository interface {
		QueryUserCertificates(userID string) ([]certificate.Certificate, error)
	}

	Service struct {
		enrollments EnrollmentRepository
		assignments AssignmentLister
		submissions AssignmentRepository
		quizzes     QuizRepository
		certs       CertificateRepository
	}
)

func NewService(
	enrollments EnrollmentRepository,
	assignments AssignmentLister,
	submissions AssignmentRepository,
	quizzes QuizRepository,
	certs CertificateRepository,
) *Service {
	return &Service{
		enrollments: enrollments,
		assignments: assignments,
		submissions: submissions,
		quizzes:     quizzes,
		certs:       certs,
	}
}

// DashboardStats derives the user's dashboard counters. Reading stats never
// mutates anything; two consecutive calls yield the same result.
func (svc *Service) DashboardStats(userID string) (Stats, error) {
	var stats Stats

	enrs, err := svc.enrollments.QueryUserEnrollments(userID)
	if err != nil {
		return Stats{}, err
	}
	stats.EnrolledCourses = len(enrs)
	for _, enr := range enrs {
		if enr.CompletedAt.Valid {
			stats.CompletedCourses++
		}
	}

	views, err := svc.assignments.WithStatus(userID)
	if err != nil {
		return Stats{}, err
	}
	for _, v := range views {
		if v.Status == assignment.StatusNotSubmitted || v.Status == assignment.StatusOverdue {
			stats.PendingAssignments++
		}
	}

	attempts, err := svc.quizzes.QueryUserAttempts(userID)
	if err != nil {
		return Stats{}, err
	}
	var sum float64
	var scored int
	for _, att := range attempts {
		if att.MaxScore == 0 {
			continue
		}
		sum += float64(att.Score) / float64(att.MaxScore) * 100
		scored++
	}
	if scored > 0 {
		stats.AverageQuizScore = null.Float64From(sum / float64(scored))
	}

	certs, err := svc.certs.QueryUserCertificates(userID)
	if err != nil {
		return Stats{}, err
	}
	stats.CertificatesEarned = len(certs)

	return stats, nil
}

// RecentActivity returns the user's latest submissions and quiz attempts,
// newest first. Submissions rank before quiz attempts on equal timestamps.
// A limit of 0 or less falls back to DefaultActivityLimit.
func (svc *Service) RecentActivity(userID string, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	activities := make([]Activity, 0)

	subs, err := svc.submissions.QueryUserSubmissions(userID)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		title := "Assignment submitted"
		if a, err := svc.submissions.GetAssignmentByID(sub.AssignmentID); err == nil {
			title = a.Title
		}
		activities = append(activities, Activity{
			Type:        ActivitySubmission,
			Title:       title,
			Description: fmt.Sprintf("Submitted %q", title),
			Time:        sub.SubmittedAt,
		})
	}

	attempts, err := svc.quizzes.QueryUserAttempts(userID)
	if err != nil {
		return nil, err
	}
	for _, att := range attempts {
		title := "Quiz attempted"
		if q, err := svc.quizzes.GetQuizByID(att.QuizID); err == nil {
			title = q.Title
		}
		at := att.StartedAt
		if att.CompletedAt.Valid {
			at = att.CompletedAt.Time
		}
		activities = append(activities, Activity{
			Type:        ActivityQuizAttempt,
			Title:       title,
			Description: fmt.Sprintf("Scored %d/%d on %q", att.Score, att.MaxScore, title),
			Time:        at,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Time.After(activities[j].Time)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}
