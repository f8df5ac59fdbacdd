package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/darasa-lms/darasa/apps/api/echo"
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
	"github.com/darasa-lms/darasa/storage/database/memdb"
	testutil "github.com/darasa-lms/darasa/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type fixture struct {
	app   Server
	conf  *core.Config
	clock *testutil.FakeClock

	usrRepo  user.Repository
	crsRepo  course.Repository
	enrRepo  enroll.Repository
	asgRepo  assignment.Repository
	quizRepo quiz.Repository
}

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(msg string, args ...interface{})            { l.t.Log(msg, args) }
func (l testLogger) Info(msg string, args ...interface{})             { l.t.Log(msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})             { l.t.Log(msg, args) }
func (l testLogger) Error(msg string, err error, args ...interface{}) { l.t.Log(msg, err, args) }

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := memdb.Open()
	if err != nil {
		t.Fatalf("memdb.Open() failed: %v", err)
	}

	conf := &core.Config{
		TestMode:  true,
		Env:       "TEST",
		AppName:   "Darasa",
		SecretKey: "secret",
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
	}
	// token exp is validated against wall-clock time, so the fake clock
	// starts at the real instant
	clock := testutil.NewFakeClock(time.Now().UTC())
	logger := testLogger{t: t}

	usrRepo := memdb.NewUserRepository(db)
	crsRepo := memdb.NewCourseRepository(db)
	enrRepo := memdb.NewEnrollmentRepository(db)
	asgRepo := memdb.NewAssignmentRepository(db)
	quizRepo := memdb.NewQuizRepository(db)
	certRepo := memdb.NewCertificateRepository(db)
	notifRepo := memdb.NewNotificationRepository(db)
	fileRepo := memdb.NewFileRepository(db)

	usrSvc := user.NewService(usrRepo, clock)
	crsSvc := course.NewService(crsRepo, clock)
	certSvc := certificate.NewService(certRepo, crsRepo, "http://localhost:3000", clock)
	notifSvc := notification.NewService(notifRepo, usrRepo, nil, clock)
	enrSvc := enroll.NewService(enrRepo, crsRepo, certSvc, notifSvc, clock)
	asgSvc := assignment.NewService(asgRepo, enrRepo, clock)
	quizSvc := quiz.NewService(quizRepo, enrRepo, clock)
	fileSvc := file.NewService(fileRepo, crsRepo, clock)
	reportSvc := report.NewService(enrRepo, asgSvc, asgRepo, quizRepo, certRepo)

	app := NewServer(&Options{
		DisableReqLogs:  true,
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

	return &fixture{
		app:      app,
		conf:     conf,
		clock:    clock,
		usrRepo:  usrRepo,
		crsRepo:  crsRepo,
		enrRepo:  enrRepo,
		asgRepo:  asgRepo,
		quizRepo: quizRepo,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func (fix *fixture) getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(fix.conf, GetUserClaims(fix.conf, usr, fix.clock))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
