package memdb

import (
	"sync"

	"github.com/darasa-lms/darasa/core/assignment"
	"github.com/darasa-lms/darasa/core/certificate"
	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/enroll"
	"github.com/darasa-lms/darasa/core/file"
	"github.com/darasa-lms/darasa/core/notification"
	"github.com/darasa-lms/darasa/core/quiz"
	"github.com/darasa-lms/darasa/core/user"
)

// DB holds every table behind its own lock. Cross-table writes (the course
// delete cascade) always lock in declaration order: course, enroll,
// assignment, quiz, certificate, notification, file.
type (
	DB struct {
		user       *userTable
		course     *courseTable
		enroll     *enrollTable
		assignment *assignmentTable
		quiz       *quizTable
		cert       *certTable
		notif      *notifTable
		file       *fileTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	courseTable struct {
		sync.RWMutex
		table   map[string]*course.Course
		lessons map[string]*course.Lesson
	}

	enrollTable struct {
		sync.RWMutex
		table    map[string]*enroll.Enrollment
		progress map[string]*enroll.LessonProgress
	}

	assignmentTable struct {
		sync.RWMutex
		table       map[string]*assignment.Assignment
		submissions map[string]*assignment.Submission
	}

	quizTable struct {
		sync.RWMutex
		table    map[string]*quiz.Quiz
		attempts map[string]*quiz.Attempt
	}

	certTable struct {
		sync.RWMutex
		table map[string]*certificate.Certificate
	}

	notifTable struct {
		sync.RWMutex
		table map[string]*notification.Notification
	}

	fileTable struct {
		sync.RWMutex
		table map[string]*file.File
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		course:     &courseTable{table: make(map[string]*course.Course), lessons: make(map[string]*course.Lesson)},
		enroll:     &enrollTable{table: make(map[string]*enroll.Enrollment), progress: make(map[string]*enroll.LessonProgress)},
		assignment: &assignmentTable{table: make(map[string]*assignment.Assignment), submissions: make(map[string]*assignment.Submission)},
		quiz:       &quizTable{table: make(map[string]*quiz.Quiz), attempts: make(map[string]*quiz.Attempt)},
		cert:       &certTable{table: make(map[string]*certificate.Certificate)},
		notif:      &notifTable{table: make(map[string]*notification.Notification)},
		file:       &fileTable{table: make(map[string]*file.File)},
	}
	return db, nil
}
