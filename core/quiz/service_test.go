package quiz_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/enroll"
	"github.com/darasa-lms/darasa/core/quiz"
	"github.com/darasa-lms/darasa/core/user"
	"github.com/darasa-lms/darasa/storage/database/memdb"
	testutil "github.com/darasa-lms/darasa/tests"
)

type quizFixture struct {
	svc     *quiz.Service
	clock   *testutil.FakeClock
	usrRepo user.Repository
	crsRepo course.Repository
	enrRepo enroll.Repository
	repo    quiz.Repository
}

func setup(t *testing.T) *quizFixture {
	t.Helper()

	db, err := memdb.Open()
	if err != nil {
		t.Fatalf("memdb.Open() failed: %v", err)
	}
	clock := testutil.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := memdb.NewQuizRepository(db)
	enrRepo := memdb.NewEnrollmentRepository(db)

	return &quizFixture{
		svc:     quiz.NewService(repo, enrRepo, clock),
		clock:   clock,
		usrRepo: memdb.NewUserRepository(db),
		crsRepo: memdb.NewCourseRepository(db),
		enrRepo: enrRepo,
		repo:    repo,
	}
}

func TestSubmitAttempt(t *testing.T) {
	fix := setup(t)
	usr := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101")
	q := testutil.CreateQuiz(t, fix.repo, crs.ID, "Basics", 3, 10, 10)

	// first option is the correct answer on every question
	answers := map[string]int{
		q.Questions[0].ID: 0,
		q.Questions[1].ID: 0,
	}
	att, err := fix.svc.SubmitAttempt(usr.ID, q.ID, answers)
	if err != nil {
		t.Fatalf("SubmitAttempt() failed: %v", err)
	}
	if att.Score != 20 || att.MaxScore != 20 {
		t.Errorf("SubmitAttempt() score = %d/%d, want 20/20", att.Score, att.MaxScore)
	}
	if !att.CompletedAt.Valid {
		t.Error("SubmitAttempt() CompletedAt not set")
	}

	// wrong and missing answers score 0; unknown question ids are ignored
	att, err = fix.svc.SubmitAttempt(usr.ID, q.ID, map[string]int{
		q.Questions[0].ID: 1,
		"nope":            0,
	})
	if err != nil {
		t.Fatalf("SubmitAttempt() failed: %v", err)
	}
	if att.Score != 0 {
		t.Errorf("SubmitAttempt() score = %d, want 0", att.Score)
	}

	if _, err = fix.svc.SubmitAttempt(usr.ID, "nope", nil); err != quiz.ErrNotFound {
		t.Errorf("SubmitAttempt() unknown quiz error = %v, want %v", err, quiz.ErrNotFound)
	}
}

func TestAttemptSummary(t *testing.T) {
	fix := setup(t)
	usr := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101")
	q := testutil.CreateQuiz(t, fix.repo, crs.ID, "Basics", 3, 10, 10)

	summary, err := fix.svc.AttemptSummary(usr.ID, q.ID)
	if err != nil {
		t.Fatalf("AttemptSummary() failed: %v", err)
	}
	if summary.BestScorePct.Valid {
		t.Error("BestScorePct set with no attempts")
	}
	if summary.AttemptsRemaining != 3 {
		t.Errorf("AttemptsRemaining = %d, want 3", summary.AttemptsRemaining)
	}

	// half right then all right: best score only goes up
	if _, err = fix.svc.SubmitAttempt(usr.ID, q.ID, map[string]int{q.Questions[0].ID: 0}); err != nil {
		t.Fatalf("SubmitAttempt() failed: %v", err)
	}
	fix.clock.Advance(time.Minute)
	if _, err = fix.svc.SubmitAttempt(usr.ID, q.ID, map[string]int{q.Questions[0].ID: 0, q.Questions[1].ID: 0}); err != nil {
		t.Fatalf("SubmitAttempt() failed: %v", err)
	}

	summary, err = fix.svc.AttemptSummary(usr.ID, q.ID)
	if err != nil {
		t.Fatalf("AttemptSummary() failed: %v", err)
	}
	if len(summary.Attempts) != 2 {
		t.Fatalf("got %d attempts, want 2", len(summary.Attempts))
	}
	if !summary.BestScorePct.Valid || summary.BestScorePct.Float64 != 100 {
		t.Errorf("BestScorePct = %+v, want 100", summary.BestScorePct)
	}
	if summary.AttemptsRemaining != 1 {
		t.Errorf("AttemptsRemaining = %d, want 1", summary.AttemptsRemaining)
	}
}

func TestAttemptsExhausted(t *testing.T) {
	fix := setup(t)
	usr := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101")
	q := testutil.CreateQuiz(t, fix.repo, crs.ID, "Basics", 2, 10)

	for i := 0; i < 2; i++ {
		if _, err := fix.svc.SubmitAttempt(usr.ID, q.ID, nil); err != nil {
			t.Fatalf("SubmitAttempt() #%d failed: %v", i+1, err)
		}
		fix.clock.Advance(time.Minute)
	}

	if _, err := fix.svc.SubmitAttempt(usr.ID, q.ID, nil); err != quiz.ErrAttemptsExhausted {
		t.Errorf("SubmitAttempt() error = %v, want %v", err, quiz.ErrAttemptsExhausted)
	}

	summary, err := fix.svc.AttemptSummary(usr.ID, q.ID)
	if err != nil {
		t.Fatalf("AttemptSummary() failed: %v", err)
	}
	if summary.AttemptsRemaining != 0 {
		t.Errorf("AttemptsRemaining = %d, want 0", summary.AttemptsRemaining)
	}
}

// Concurrent submissions must not overshoot the cap: with MaxAttempts 2,
// exactly two calls insert and the rest are rejected.
func TestAttemptsCapConcurrent(t *testing.T) {
	fix := setup(t)
	usr := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101")
	q := testutil.CreateQuiz(t, fix.repo, crs.ID, "Basics", 2, 10)

	const workers = 32
	var wg sync.WaitGroup
	var successes int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := fix.svc.SubmitAttempt(usr.ID, q.ID, nil); err == nil {
				atomic.AddInt32(&successes, 1)
			} else if err != quiz.ErrAttemptsExhausted {
				t.Errorf("SubmitAttempt() error = %v, want %v", err, quiz.ErrAttemptsExhausted)
			}
		}()
	}
	wg.Wait()

	if successes != 2 {
		t.Errorf("%d concurrent SubmitAttempt() calls succeeded, want 2", successes)
	}
	attempts, err := fix.repo.QueryQuizAttempts(q.ID, usr.ID)
	if err != nil {
		t.Fatalf("QueryQuizAttempts() failed: %v", err)
	}
	if len(attempts) != 2 {
		t.Errorf("%d attempts stored, want 2", len(attempts))
	}
}

func TestScoresFrozen(t *testing.T) {
	fix := setup(t)
	usr := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101")
	q := testutil.CreateQuiz(t, fix.repo, crs.ID, "Basics", 5, 10)

	att, err := fix.svc.SubmitAttempt(usr.ID, q.ID, map[string]int{q.Questions[0].ID: 0})
	if err != nil {
		t.Fatalf("SubmitAttempt() failed: %v", err)
	}
	if att.Score != 10 || att.MaxScore != 10 {
		t.Fatalf("SubmitAttempt() score = %d/%d, want 10/10", att.Score, att.MaxScore)
	}

	// stored attempts keep their scores even if the quiz changes later
	q.Questions[0].CorrectAnswer = 1
	attempts, err := fix.repo.QueryQuizAttempts(q.ID, usr.ID)
	if err != nil {
		t.Fatalf("QueryQuizAttempts() failed: %v", err)
	}
	if attempts[0].Score != 10 || attempts[0].MaxScore != 10 {
		t.Errorf("stored attempt score = %d/%d, want 10/10", attempts[0].Score, attempts[0].MaxScore)
	}
}

func TestForUser(t *testing.T) {
	fix := setup(t)
	usr := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	enrolled := testutil.CreateCourse(t, fix.crsRepo, "Go 101")
	other := testutil.CreateCourse(t, fix.crsRepo, "Rust 101")
	testutil.CreateEnrollment(t, fix.enrRepo, usr.ID, enrolled.ID, fix.clock.Now())

	testutil.CreateQuiz(t, fix.repo, enrolled.ID, "Basics", 3, 10)
	testutil.CreateQuiz(t, fix.repo, other.ID, "Hidden", 3, 10)

	views, err := fix.svc.ForUser(usr.ID)
	if err != nil {
		t.Fatalf("ForUser() failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d quizzes, want 1", len(views))
	}
	if views[0].Title != "Basics" {
		t.Errorf("ForUser() quiz = %s, want Basics", views[0].Title)
	}
	if views[0].AttemptsRemaining != 3 {
		t.Errorf("AttemptsRemaining = %d, want 3", views[0].AttemptsRemaining)
	}
}
