package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/darasa-lms/darasa/core/quiz"
	testutil "github.com/darasa-lms/darasa/tests"
)

func Test_quizApi_attempts(t *testing.T) {
	fix := setup(t)
	student := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101", "a")
	testutil.CreateEnrollment(t, fix.enrRepo, student.ID, crs.ID, fix.clock.Now())
	q := testutil.CreateQuiz(t, fix.quizRepo, crs.ID, "Quiz", 2, 10, 10)
	token := fix.getToken(t, student)

	attempt := func(answers string, wantCode int) quiz.Attempt {
		t.Helper()
		req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes/"+q.ID+"/attempts", token,
			[]byte(fmt.Sprintf(`{"answers":%s}`, answers)))
		fix.app.ServeHTTP(rec, req)
		if rec.Code != wantCode {
			t.Fatalf("attempt = %d, want %d: %s", rec.Code, wantCode, rec.Body.String())
		}
		var att quiz.Attempt
		if rec.Code == http.StatusCreated {
			if err := json.Unmarshal(rec.Body.Bytes(), &att); err != nil {
				t.Fatalf("unmarshalling Attempt: %v", err)
			}
		}
		return att
	}

	getSummary := func() quiz.Summary {
		t.Helper()
		req, rec := newAuthRequest(http.MethodGet, "/v1/quizzes/"+q.ID+"/summary", token)
		fix.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("summary = %d: %s", rec.Code, rec.Body.String())
		}
		var s quiz.Summary
		if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
			t.Fatalf("unmarshalling Summary: %v", err)
		}
		return s
	}

	if s := getSummary(); s.AttemptsRemaining != 2 {
		t.Errorf("AttemptsRemaining = %d, want 2", s.AttemptsRemaining)
	}

	// one question right out of two
	att := attempt(fmt.Sprintf(`{%q:0,%q:1}`, q.Questions[0].ID, q.Questions[1].ID), http.StatusCreated)
	if att.Score != 10 || att.MaxScore != 20 {
		t.Errorf("attempt scored %d/%d, want 10/20", att.Score, att.MaxScore)
	}

	fix.clock.Advance(time.Minute)
	att = attempt(fmt.Sprintf(`{%q:0,%q:0}`, q.Questions[0].ID, q.Questions[1].ID), http.StatusCreated)
	if att.Score != 20 {
		t.Errorf("attempt scored %d, want 20", att.Score)
	}

	s := getSummary()
	if s.AttemptsRemaining != 0 {
		t.Errorf("AttemptsRemaining = %d, want 0", s.AttemptsRemaining)
	}
	if !s.BestScorePct.Valid || s.BestScorePct.Float64 != 100 {
		t.Errorf("BestScorePct = %+v, want 100", s.BestScorePct)
	}
	if len(s.Attempts) != 2 {
		t.Errorf("got %d attempts, want 2", len(s.Attempts))
	}

	// a third attempt conflicts
	req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes/"+q.ID+"/attempts", token, []byte(`{"answers":{}}`))
	fix.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("exhausted attempt = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func Test_quizApi_query(t *testing.T) {
	fix := setup(t)
	student := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	enrolled := testutil.CreateCourse(t, fix.crsRepo, "Enrolled", "a")
	other := testutil.CreateCourse(t, fix.crsRepo, "Other", "a")
	testutil.CreateEnrollment(t, fix.enrRepo, student.ID, enrolled.ID, fix.clock.Now())
	mine := testutil.CreateQuiz(t, fix.quizRepo, enrolled.ID, "Mine", 3, 10)
	testutil.CreateQuiz(t, fix.quizRepo, other.ID, "Not mine", 3, 10)

	req, rec := newAuthRequest(http.MethodGet, "/v1/quizzes", fix.getToken(t, student))
	fix.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/quizzes = %d: %s", rec.Code, rec.Body.String())
	}

	var views []quiz.View
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("unmarshalling quiz views: %v", err)
	}
	if len(views) != 1 || views[0].ID != mine.ID {
		t.Errorf("views = %+v, want only the enrolled course's quiz", views)
	}
}
