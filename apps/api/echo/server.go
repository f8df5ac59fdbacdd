package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

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
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf   *core.Config
		Logger core.Logger
		Clock  core.Clock

		UserSvc         *user.Service
		CourseSvc       *course.Service
		EnrollSvc       *enroll.Service
		AssignmentSvc   *assignment.Service
		QuizSvc         *quiz.Service
		CertificateSvc  *certificate.Service
		NotificationSvc *notification.Service
		FileSvc         *file.Service
		ReportSvc       *report.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))

	registerUserAPI(v1, jwt, conf, s.opts.UserSvc, s.opts.Clock)
	registerCourseAPI(v1, jwt, s.opts.CourseSvc, s.opts.EnrollSvc, s.opts.FileSvc)
	registerEnrollAPI(v1, jwt, s.opts.EnrollSvc)
	registerAssignmentAPI(v1, jwt, s.opts.AssignmentSvc)
	registerQuizAPI(v1, jwt, s.opts.QuizSvc)
	registerCertificateAPI(v1, jwt, s.opts.CertificateSvc)
	registerNotificationAPI(v1, jwt, s.opts.NotificationSvc)
	registerFileAPI(v1, jwt, s.opts.FileSvc)
	registerReportAPI(v1, jwt, s.opts.ReportSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Darasa API!")
}
