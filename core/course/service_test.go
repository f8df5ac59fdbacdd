package course_test

import (
	"testing"
	"time"

	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/assignment"
	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/enroll"
	"github.com/darasa-lms/darasa/core/quiz"
	"github.com/darasa-lms/darasa/storage/database/memdb"
	testutil "github.com/darasa-lms/darasa/tests"
)

var (
	admin   = core.Actor{ID: "admin", Role: core.RoleAdmin}
	student = core.Actor{ID: "student", Role: core.RoleStudent}
)

func setup(t *testing.T) (*course.Service, *memdb.DB, *testutil.FakeClock) {
	t.Helper()

	db, err := memdb.Open()
	if err != nil {
		t.Fatalf("memdb.Open() failed: %v", err)
	}
	clock := testutil.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return course.NewService(memdb.NewCourseRepository(db), clock), db, clock
}

func TestCreate(t *testing.T) {
	svc, _, _ := setup(t)

	nc := course.NewCourse{
		Title: "Go 101",
		Lessons: []course.NewLesson{
			{Title: "Intro", Content: "...", ContentType: course.ContentText},
			{Title: "Setup", Content: "...", ContentType: course.ContentVideo},
		},
	}

	if _, err := svc.Create(student, nc); err != core.ErrPermissionDenied {
		t.Errorf("Create() as student error = %v, want %v", err, core.ErrPermissionDenied)
	}

	crs, err := svc.Create(admin, nc)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if len(crs.Lessons) != 2 {
		t.Fatalf("got %d lessons, want 2", len(crs.Lessons))
	}
	for i, l := range crs.Lessons {
		if l.OrderIndex != i {
			t.Errorf("lesson %d OrderIndex = %d, want %d", i, l.OrderIndex, i)
		}
		if l.CourseID != crs.ID {
			t.Errorf("lesson %d CourseID = %s, want %s", i, l.CourseID, crs.ID)
		}
	}

	if _, err := svc.Create(admin, course.NewCourse{}); err == nil {
		t.Error("Create() accepted a course without a title")
	}
}

func TestUpdateReplacesLessons(t *testing.T) {
	svc, _, _ := setup(t)

	crs, err := svc.Create(admin, course.NewCourse{
		Title: "Go 101",
		Lessons: []course.NewLesson{
			{Title: "One", Content: "...", ContentType: course.ContentText},
			{Title: "Two", Content: "...", ContentType: course.ContentText},
			{Title: "Three", Content: "...", ContentType: course.ContentText},
		},
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// title-only update leaves lessons alone
	got, err := svc.Update(admin, crs.ID, course.UpdateCourse{Title: "Go 102"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got.Title != "Go 102" {
		t.Errorf("Title = %s, want Go 102", got.Title)
	}
	if len(got.Lessons) != 3 {
		t.Errorf("got %d lessons after title update, want 3", len(got.Lessons))
	}

	// non-nil lessons replace the list wholesale and reindex from 0
	got, err = svc.Update(admin, crs.ID, course.UpdateCourse{
		Title: "Go 102",
		Lessons: []course.NewLesson{
			{Title: "New One", Content: "...", ContentType: course.ContentText},
			{Title: "New Two", Content: "...", ContentType: course.ContentText},
		},
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if len(got.Lessons) != 2 {
		t.Fatalf("got %d lessons, want 2", len(got.Lessons))
	}
	for i, l := range got.Lessons {
		if l.OrderIndex != i {
			t.Errorf("lesson %d OrderIndex = %d, want %d", i, l.OrderIndex, i)
		}
	}
	if got.Lessons[0].Title != "New One" {
		t.Errorf("first lesson = %s, want New One", got.Lessons[0].Title)
	}
}

func TestDeleteCascades(t *testing.T) {
	svc, db, clock := setup(t)

	usrRepo := memdb.NewUserRepository(db)
	enrRepo := memdb.NewEnrollmentRepository(db)
	asgRepo := memdb.NewAssignmentRepository(db)
	quizRepo := memdb.NewQuizRepository(db)

	usr := testutil.CreateUser(t, usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs, err := svc.Create(admin, course.NewCourse{
		Title:   "Go 101",
		Lessons: []course.NewLesson{{Title: "One", Content: "...", ContentType: course.ContentText}},
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	enrSvc := enroll.NewService(enrRepo, memdb.NewCourseRepository(db), nil, nil, clock)
	if _, err = enrSvc.Enroll(usr.ID, crs.ID); err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
	a := testutil.CreateAssignment(t, asgRepo, crs.ID, "Essay", clock.Now().Add(time.Hour), 10)
	q := testutil.CreateQuiz(t, quizRepo, crs.ID, "Quiz", 3, 10)

	if err := svc.Delete(student, crs.ID); err != core.ErrPermissionDenied {
		t.Errorf("Delete() as student error = %v, want %v", err, core.ErrPermissionDenied)
	}
	if err := svc.Delete(admin, crs.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, err := svc.GetByID(crs.ID); err != course.ErrNotFound {
		t.Errorf("GetByID() after delete error = %v, want %v", err, course.ErrNotFound)
	}
	if _, err := svc.GetLessonByID(crs.Lessons[0].ID); err != course.ErrLessonNotFound {
		t.Errorf("GetLessonByID() after delete error = %v, want %v", err, course.ErrLessonNotFound)
	}
	if _, err := enrRepo.GetEnrollment(usr.ID, crs.ID); err != enroll.ErrNotFound {
		t.Errorf("GetEnrollment() after delete error = %v, want %v", err, enroll.ErrNotFound)
	}
	if _, err := asgRepo.GetAssignmentByID(a.ID); err != assignment.ErrNotFound {
		t.Errorf("GetAssignmentByID() after delete error = %v, want %v", err, assignment.ErrNotFound)
	}
	if _, err := quizRepo.GetQuizByID(q.ID); err != quiz.ErrNotFound {
		t.Errorf("GetQuizByID() after delete error = %v, want %v", err, quiz.ErrNotFound)
	}

	// derived progress collapses to zero
	got := enrSvc.CourseProgress(usr.ID, crs.ID)
	if got != (enroll.Progress{}) {
		t.Errorf("CourseProgress() after delete = %+v, want zero", got)
	}
}
