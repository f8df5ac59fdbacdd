package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/assignment"
	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/enroll"
	"github.com/darasa-lms/darasa/core/quiz"
	"github.com/darasa-lms/darasa/core/user"
)

// FakeClock is an injectable clock frozen at a chosen instant.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ core.Clock = (*FakeClock)(nil)

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now.UTC()}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(t *testing.T, repo course.Repository, title string, lessonTitles ...string) course.Course {
	t.Helper()

	now := time.Now().UTC()
	crs := course.Course{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, lt := range lessonTitles {
		crs.Lessons = append(crs.Lessons, course.Lesson{
			ID:          uuid.New().String(),
			CourseID:    crs.ID,
			Title:       lt,
			Content:     "...",
			ContentType: course.ContentText,
			OrderIndex:  i,
		})
	}
	crs, err := repo.CreateCourse(crs)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateEnrollment(t *testing.T, repo enroll.Repository, userID, courseID string, at time.Time) enroll.Enrollment {
	t.Helper()

	enr, err := repo.CreateEnrollment(enroll.Enrollment{
		ID:         uuid.New().String(),
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: at.UTC(),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment() failed: %v", err)
	}
	return enr
}

func CreateAssignment(
	t *testing.T,
	repo assignment.Repository,
	courseID, title string,
	dueDate time.Time,
	maxPoints int,
) assignment.Assignment {
	t.Helper()

	a, err := repo.CreateAssignment(assignment.Assignment{
		ID:        uuid.New().String(),
		CourseID:  courseID,
		Title:     title,
		DueDate:   dueDate.UTC(),
		MaxPoints: maxPoints,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

// CreateQuiz builds a quiz whose questions are all multiple choice with the
// first option correct, worth the given points each.
func CreateQuiz(
	t *testing.T,
	repo quiz.Repository,
	courseID, title string,
	maxAttempts int,
	questionPoints ...int,
) quiz.Quiz {
	t.Helper()

	q := quiz.Quiz{
		ID:          uuid.New().String(),
		CourseID:    courseID,
		Title:       title,
		MaxAttempts: maxAttempts,
		CreatedAt:   time.Now().UTC(),
	}
	for _, pts := range questionPoints {
		q.Questions = append(q.Questions, quiz.Question{
			ID:            uuid.New().String(),
			QuizID:        q.ID,
			Text:          "...",
			Type:          quiz.TypeMultipleChoice,
			Options:       []string{"a", "b", "c"},
			CorrectAnswer: 0,
			Points:        pts,
		})
	}
	q, err := repo.CreateQuiz(q)
	if err != nil {
		t.Fatalf("CreateQuiz() failed: %v", err)
	}
	return q
}
