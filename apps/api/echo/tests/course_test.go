package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/enroll"
	testutil "github.com/darasa-lms/darasa/tests"
)

func Test_courseApi_crud(t *testing.T) {
	fix := setup(t)
	student := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	admin := testutil.CreateUser(t, fix.usrRepo, "Admin", "admin@test.test", "", "admin", true)

	newCrs := []byte(`{
		"title": "Go 101",
		"description": "An introduction.",
		"lessons": [
			{"title": "Intro", "content": "...", "content_type": "text"},
			{"title": "Setup", "content": "...", "content_type": "video"}
		]
	}`)

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodGet, path: "/v1/courses",
			wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken),
		},
		{
			name: "create requires admin", method: http.MethodPost, path: "/v1/courses",
			body: newCrs, token: fix.getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marshallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "admin creates", method: http.MethodPost, path: "/v1/courses",
			body: newCrs, token: fix.getToken(t, admin),
			wantCode: http.StatusCreated,
		},
		{
			name: "missing title", method: http.MethodPost, path: "/v1/courses",
			body: []byte(`{"description":"x"}`), token: fix.getToken(t, admin),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "students can browse", method: http.MethodGet, path: "/v1/courses",
			token:    fix.getToken(t, student),
			wantCode: http.StatusOK,
		},
		{
			name: "unknown course", method: http.MethodGet, path: "/v1/courses/nope",
			token:    fix.getToken(t, student),
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "course not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			fix.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// A student enrolls, works through every lesson and ends up with a completed
// course, a certificate and full progress.
func Test_courseApi_enrollToCompletion(t *testing.T) {
	fix := setup(t)
	student := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101", "a", "b", "c", "d", "e")
	token := fix.getToken(t, student)

	do := func(method, path string, wantCode int) {
		t.Helper()
		req, rec := newAuthRequest(method, path, token)
		fix.app.ServeHTTP(rec, req)
		if rec.Code != wantCode {
			t.Fatalf("%s %s = %d, want %d: %s", method, path, rec.Code, wantCode, rec.Body.String())
		}
	}

	getProgress := func() enroll.Progress {
		t.Helper()
		req, rec := newAuthRequest(http.MethodGet, "/v1/courses/"+crs.ID+"/progress", token)
		fix.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("progress = %d: %s", rec.Code, rec.Body.String())
		}
		var p enroll.Progress
		if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
			t.Fatalf("unmarshalling Progress: %v", err)
		}
		return p
	}

	do(http.MethodPost, "/v1/courses/"+crs.ID+"/enroll", http.StatusCreated)
	// enrolling twice conflicts
	do(http.MethodPost, "/v1/courses/"+crs.ID+"/enroll", http.StatusConflict)

	if p := getProgress(); p.Percentage != 0 {
		t.Errorf("initial progress = %d%%, want 0%%", p.Percentage)
	}

	for _, l := range crs.Lessons[:3] {
		do(http.MethodPost, "/v1/lessons/"+l.ID+"/complete", http.StatusCreated)
	}
	// completing a lesson twice conflicts
	do(http.MethodPost, "/v1/lessons/"+crs.Lessons[0].ID+"/complete", http.StatusConflict)

	if p := getProgress(); p != (enroll.Progress{Completed: 3, Total: 5, Percentage: 60}) {
		t.Errorf("progress = %+v, want 3/5 60%%", p)
	}

	for _, l := range crs.Lessons[3:] {
		do(http.MethodPost, "/v1/lessons/"+l.ID+"/complete", http.StatusCreated)
	}
	if p := getProgress(); p.Percentage != 100 {
		t.Errorf("final progress = %d%%, want 100%%", p.Percentage)
	}

	// the completed course shows up with a certificate
	req, rec := newAuthRequest(http.MethodGet, "/v1/enrollments/completed", token)
	fix.app.ServeHTTP(rec, req)
	var completed []enroll.CompletedCourse
	if err := json.Unmarshal(rec.Body.Bytes(), &completed); err != nil {
		t.Fatalf("unmarshalling completed courses: %v", err)
	}
	if len(completed) != 1 || completed[0].Title != "Go 101" {
		t.Fatalf("completed courses = %+v, want Go 101", completed)
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/certificates", token)
	fix.app.ServeHTTP(rec, req)
	var certs []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &certs); err != nil {
		t.Fatalf("unmarshalling certificates: %v", err)
	}
	if len(certs) != 1 {
		t.Errorf("got %d certificates, want 1", len(certs))
	}
}

func Test_courseApi_deleteCascades(t *testing.T) {
	fix := setup(t)
	student := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	admin := testutil.CreateUser(t, fix.usrRepo, "Admin", "admin@test.test", "", "admin", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101", "a")
	testutil.CreateEnrollment(t, fix.enrRepo, student.ID, crs.ID, fix.clock.Now())

	req, rec := newAuthRequest(http.MethodDelete, "/v1/courses/"+crs.ID, fix.getToken(t, admin))
	fix.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d: %s", rec.Code, rec.Body.String())
	}

	if _, err := fix.crsRepo.GetCourseByID(crs.ID); err != course.ErrNotFound {
		t.Errorf("GetCourseByID() after delete error = %v, want %v", err, course.ErrNotFound)
	}
	if _, err := fix.enrRepo.GetEnrollment(student.ID, crs.ID); err != enroll.ErrNotFound {
		t.Errorf("GetEnrollment() after delete error = %v, want %v", err, enroll.ErrNotFound)
	}
}
