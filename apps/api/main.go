package main

import (
	"log"
	"os"

	echoapi "github.com/darasa-lms/darasa/apps/api/echo"
	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/assignment"
	"github.com/darasa-lms/darasa/core/certificate"
	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/enroll"
	"github.com/darasa-lms/darasa/core/file"
	"github.com/darasa-lms/darasa/core/notification"
	"github.com/darasa-lms/darasa/core/quiz"
	"github.com/darasa-lms/darasa/core/report"
	"github.com/darasa-lms/darasa/core/user"
	emailsvc "github.com/darasa-lms/darasa/services/email"
	logsvc "github.com/darasa-lms/darasa/services/logger"
	"github.com/darasa-lms/darasa/storage/database/memdb"
)

func main() {
	conf := core.NewConfig()
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if conf.Debug || conf.RollbarToken == "" {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := memdb.Open()
	if err != nil {
		std.Fatal(err)
	}

	// set up repos
	usrRepo := memdb.NewUserRepository(db)
	crsRepo := memdb.NewCourseRepository(db)
	enrRepo := memdb.NewEnrollmentRepository(db)
	asgRepo := memdb.NewAssignmentRepository(db)
	quizRepo := memdb.NewQuizRepository(db)
	certRepo := memdb.NewCertificateRepository(db)
	notifRepo := memdb.NewNotificationRepository(db)
	fileRepo := memdb.NewFileRepository(db)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	clock := core.NewClock()
	usrSvc := user.NewService(usrRepo, clock)
	crsSvc := course.NewService(crsRepo, clock)
	certSvc := certificate.NewService(certRepo, crsRepo, conf.FrontendBaseURL, clock)
	notifSvc := notification.NewService(notifRepo, usrRepo, mailSvc, clock)
	enrSvc := enroll.NewService(enrRepo, crsRepo, certSvc, notifSvc, clock)
	asgSvc := assignment.NewService(asgRepo, enrRepo, clock)
	quizSvc := quiz.NewService(quizRepo, enrRepo, clock)
	fileSvc := file.NewService(fileRepo, crsRepo, clock)
	reportSvc := report.NewService(enrRepo, asgSvc, asgRepo, quizRepo, certRepo)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Addr:            conf.Server.Addr(),
		Conf:            conf,
		Logger:          logger,
		Clock:           clock,
		UserSvc:         usrSvc,
		CourseSvc:       crsSvc,
		EnrollSvc:       enrSvc,
		AssignmentSvc:   asgSvc,
		QuizSvc:         quizSvc,
		CertificateSvc:  certSvc,
		NotificationSvc: notifSvc,
		FileSvc:         fileSvc,
		ReportSvc:       reportSvc,
	})
	app.Start()
}
