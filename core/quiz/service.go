package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/enroll"
)

var (
	ErrNotFound          = errors.New("quiz not found")
	ErrAttemptsExhausted = errors.New("no quiz attempts remaining")
)

type (
	Repository interface {
		CreateQuiz(q Quiz) (Quiz, error)
		GetQuizByID(id string) (Quiz, error)
		QueryCourseQuizzes(courseID string) ([]Quiz, error)
		// CreateAttempt inserts the row, or returns ErrAttemptsExhausted once
		// the user already holds MaxAttempts attempts for the quiz. The count
		// and the insert must happen atomically.
		CreateAttempt(att Attempt) (Attempt, error)
		QueryQuizAttempts(quizID, userID string) ([]Attempt, error)
		QueryUserAttempts(userID string) ([]Attempt, error)
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

func (svc *Service) Create(actor core.Actor, nq NewQuiz) (Quiz, error) {
	if !actor.IsAdmin() {
		return Quiz{}, core.ErrPermissionDenied
	}
	if err := nq.Validate(); err != nil {
		return Quiz{}, err
	}

	q := Quiz{
		ID:          uuid.New().String(),
		CourseID:    nq.CourseID,
		Title:       nq.Title,
		Description: nq.Description,
		TimeLimit:   null.NewInt(nq.TimeLimit, nq.TimeLimit > 0),
		MaxAttempts: nq.MaxAttempts,
		CreatedAt:   svc.clock.Now(),
	}
	q.Questions = make([]Question, 0, len(nq.Questions))
	for _, nqn := range nq.Questions {
		q.Questions = append(q.Questions, Question{
			ID:            uuid.New().String(),
			QuizID:        q.ID,
			Text:          nqn.Text,
			Type:          nqn.Type,
			Options:       nqn.Options,
			CorrectAnswer: nqn.CorrectAnswer,
			Points:        nqn.Points,
		})
	}
	return svc.repo.CreateQuiz(q)
}

func (svc *Service) GetByID(id string) (Quiz, error) {
	return svc.repo.GetQuizByID(id)
}

// ForUser returns the quizzes of every enrolled course, each enriched with
// the user's attempt summary.
func (svc *Service) ForUser(userID string) ([]View, error) {
	enrs, err := svc.enrollments.QueryUserEnrollments(userID)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0)
	for _, enr := range enrs {
		quizzes, err := svc.repo.QueryCourseQuizzes(enr.CourseID)
		if err != nil {
			return nil, err
		}
		for _, q := range quizzes {
			summary, err := svc.AttemptSummary(userID, q.ID)
			if err != nil {
				return nil, err
			}
			views = append(views, View{Quiz: q, Summary: summary})
		}
	}
	return views, nil
}

// SubmitAttempt scores the answers and appends a new attempt. It fails with
// ErrAttemptsExhausted once the user has no attempts remaining; the cap is
// enforced atomically by the repository, so concurrent submissions cannot
// overshoot it.
func (svc *Service) SubmitAttempt(userID, quizID string, answers map[string]int) (Attempt, error) {
	q, err := svc.repo.GetQuizByID(quizID)
	if err != nil {
		return Attempt{}, err
	}

	var score int
	for _, qn := range q.Questions {
		if selected, ok := answers[qn.ID]; ok && selected == qn.CorrectAnswer {
			score += qn.Points
		}
	}

	now := svc.clock.Now()
	startedAt := now
	if q.TimeLimit.Valid {
		startedAt = now.Add(-time.Duration(q.TimeLimit.Int) * time.Minute)
	}
	if answers == nil {
		answers = map[string]int{}
	}

	att := Attempt{
		ID:          uuid.New().String(),
		QuizID:      quizID,
		UserID:      userID,
		Answers:     answers,
		Score:       score,
		MaxScore:    q.MaxScore(),
		StartedAt:   startedAt,
		CompletedAt: null.TimeFrom(now),
	}
	return svc.repo.CreateAttempt(att)
}

// AttemptSummary derives the user's attempt state for the quiz. BestScorePct
// is unset when there are no attempts; AttemptsRemaining never goes below 0.
func (svc *Service) AttemptSummary(userID, quizID string) (Summary, error) {
	q, err := svc.repo.GetQuizByID(quizID)
	if err != nil {
		return Summary{}, err
	}
	attempts, err := svc.repo.QueryQuizAttempts(quizID, userID)
	if err != nil {
		return Summary{}, err
	}

	var best null.Float64
	for _, att := range attempts {
		if att.MaxScore == 0 {
			continue
		}
		pct := float64(att.Score) / float64(att.MaxScore) * 100
		if !best.Valid || pct > best.Float64 {
			best = null.Float64From(pct)
		}
	}

	remaining := q.MaxAttempts - len(attempts)
	if remaining < 0 {
		remaining = 0
	}
	return Summary{
		Attempts:          attempts,
		BestScorePct:      best,
		AttemptsRemaining: remaining,
	}, nil
}
