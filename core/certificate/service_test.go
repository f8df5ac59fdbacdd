package certificate_test

import (
	"sync"
	"testing"
	"time"

	"github.com/darasa-lms/darasa/core/certificate"
	"github.com/darasa-lms/darasa/core/course"
	"github.com/darasa-lms/darasa/core/user"
	"github.com/darasa-lms/darasa/storage/database/memdb"
	testutil "github.com/darasa-lms/darasa/tests"
)

type certFixture struct {
	svc     *certificate.Service
	repo    certificate.Repository
	usrRepo user.Repository
	crsRepo course.Repository
}

func setup(t *testing.T) *certFixture {
	t.Helper()

	db, err := memdb.Open()
	if err != nil {
		t.Fatalf("memdb.Open() failed: %v", err)
	}
	clock := testutil.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := memdb.NewCertificateRepository(db)
	crsRepo := memdb.NewCourseRepository(db)

	return &certFixture{
		svc:     certificate.NewService(repo, crsRepo, "http://localhost:3000", clock),
		repo:    repo,
		usrRepo: memdb.NewUserRepository(db),
		crsRepo: crsRepo,
	}
}

func TestIssueIdempotent(t *testing.T) {
	fix := setup(t)
	usr := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101")

	first, err := fix.svc.Issue(usr.ID, crs.ID)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	if first.URL == "" {
		t.Error("Issue() URL not set")
	}

	again, err := fix.svc.Issue(usr.ID, crs.ID)
	if err != nil {
		t.Fatalf("Issue() twice failed: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("Issue() twice ID = %s, want %s", again.ID, first.ID)
	}
}

// Concurrent issuance for the same pair must resolve to a single stored
// certificate; every call returns it.
func TestIssueConcurrent(t *testing.T) {
	fix := setup(t)
	usr := testutil.CreateUser(t, fix.usrRepo, "Jane Doe", "jane@test.test", "", "student", true)
	crs := testutil.CreateCourse(t, fix.crsRepo, "Go 101")

	const workers = 32
	var wg sync.WaitGroup
	ids := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cert, err := fix.svc.Issue(usr.ID, crs.ID)
			if err != nil {
				t.Errorf("Issue() failed: %v", err)
				return
			}
			ids <- cert.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{})
	for id := range ids {
		seen[id] = struct{}{}
	}
	if len(seen) != 1 {
		t.Errorf("concurrent Issue() returned %d distinct certificates, want 1", len(seen))
	}
	certs, err := fix.repo.QueryUserCertificates(usr.ID)
	if err != nil {
		t.Fatalf("QueryUserCertificates() failed: %v", err)
	}
	if len(certs) != 1 {
		t.Errorf("%d certificates stored, want 1", len(certs))
	}
}
