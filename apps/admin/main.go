package main

import (
	"log"
	"os"

	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/assignment"
	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/enroll"
	"github.com/darasa-lms/darasa/core/quiz"
	"github.com/darasa-lms/darasa/core/user"
	"github.com/darasa-lms/darasa/storage/database/memdb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	db, err := memdb.Open()
	errAndDie(err)

	clock := core.NewClock()
	usrRepo := memdb.NewUserRepository(db)
	crsRepo := memdb.NewCourseRepository(db)
	enrRepo := memdb.NewEnrollmentRepository(db)

	// start CLI
	cli := commandLine{
		usrSvc:  user.NewService(usrRepo, clock),
		crsSvc:  course.NewService(crsRepo, clock),
		enrSvc:  enroll.NewService(enrRepo, crsRepo, nil, nil, clock),
		asgSvc:  assignment.NewService(memdb.NewAssignmentRepository(db), enrRepo, clock),
		quizSvc: quiz.NewService(memdb.NewQuizRepository(db), enrRepo, clock),
		clock:   clock,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
