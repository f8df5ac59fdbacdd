package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/darasa-lms/darasa/core/report"
	testutil "github.com/darasa-lms/darasa/tests"
)

func Test_reportApi(t *testing.T) {
	fix := setup(t)
	student := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101", "a")
	testutil.CreateEnrollment(t, fix.enrRepo, student.ID, crs.ID, fix.clock.Now())
	testutil.CreateAssignment(t, fix.asgRepo, crs.ID, "Essay", fix.clock.Now().Add(time.Hour), 10)
	token := fix.getToken(t, student)

	req, rec := newAuthRequest(http.MethodGet, "/v1/reports/stats", token)
	fix.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats = %d: %s", rec.Code, rec.Body.String())
	}
	var stats report.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshalling Stats: %v", err)
	}
	if stats.EnrolledCourses != 1 || stats.PendingAssignments != 1 {
		t.Errorf("stats = %+v, want 1 enrolled course and 1 pending assignment", stats)
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/reports/activity?limit=3", token)
	fix.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("activity = %d: %s", rec.Code, rec.Body.String())
	}
	var activities []report.Activity
	if err := json.Unmarshal(rec.Body.Bytes(), &activities); err != nil {
		t.Fatalf("unmarshalling activity feed: %v", err)
	}
	if len(activities) != 0 {
		t.Errorf("got %d activities with nothing submitted, want 0", len(activities))
	}
}
