package certificate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/course"
)

var ErrNotFound = errors.New("certificate not found")

type (
	Repository interface {
		// CreateCertificate inserts the row, or returns the stored one when
		// the (user, course) pair already holds a certificate. The check and
		// the insert must happen atomically.
		CreateCertificate(cert Certificate) (Certificate, error)
		// GetCertificate looks up the certificate for the (user, course) pair.
		GetCertificate(userID, courseID string) (Certificate, error)
		QueryUserCertificates(userID string) ([]Certificate, error)
	}

	// CourseRepository is the read-only view of course storage this service needs.
	CourseRepository interface {
		GetCourseByID(id string) (course.Course, error)
	}

	Service struct {
		repo    Repository
		courses CourseRepository
		baseURL string
		clock   core.Clock
	}
)

func NewService(repo Repository, courses CourseRepository, baseURL string, clock core.Clock) *Service {
	return &Service{repo: repo, courses: courses, baseURL: baseURL, clock: clock}
}

// Issue creates the certificate for the (user, course) pair, or returns the
// existing one. Safe to call more than once, concurrently included: the
// repository resolves a duplicate insert to the stored row.
func (svc *Service) Issue(userID, courseID string) (Certificate, error) {
	cert := Certificate{
		ID:       uuid.New().String(),
		UserID:   userID,
		CourseID: courseID,
		IssuedAt: svc.clock.Now(),
	}
	cert.URL = fmt.Sprintf("%s/certificates/%s", svc.baseURL, cert.ID)
	return svc.repo.CreateCertificate(cert)
}

// ForUser returns the user's certificates joined to their course titles.
// Certificates whose course no longer exists are dropped silently.
func (svc *Service) ForUser(userID string) ([]View, error) {
	certs, err := svc.repo.QueryUserCertificates(userID)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(certs))
	for _, cert := range certs {
		crs, err := svc.courses.GetCourseByID(cert.CourseID)
		if err != nil {
			continue
		}
		views = append(views, View{Certificate: cert, CourseTitle: crs.Title})
	}
	return views, nil
}
