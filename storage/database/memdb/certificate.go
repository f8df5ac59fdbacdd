package memdb

import (
	"sort"

	"github.com/darasa-lms/darasa/core/certificate"
)

type certificateRepository struct {
	db *certTable
}

var _ certificate.Repository = (*certificateRepository)(nil) // interface compliance check

func NewCertificateRepository(db *DB) certificate.Repository {
	return &certificateRepository{db: db.cert}
}

// CreateCertificate inserts the row, or returns the stored one when the
// (user, course) pair already holds a certificate. The pair is checked under
// the same lock that guards the insert, keeping issuance idempotent.
func (repo *certificateRepository) CreateCertificate(cert certificate.Certificate) (certificate.Certificate, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, row := range repo.db.table {
		if row.UserID == cert.UserID && row.CourseID == cert.CourseID {
			return *row, nil
		}
	}
	repo.db.table[cert.ID] = &cert
	return cert, nil
}

func (repo *certificateRepository) GetCertificate(userID, courseID string) (certificate.Certificate, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, cert := range repo.db.table {
		if cert.UserID == userID && cert.CourseID == courseID {
			return *cert, nil
		}
	}
	return certificate.Certificate{}, certificate.ErrNotFound
}

func (repo *certificateRepository) QueryUserCertificates(userID string) ([]certificate.Certificate, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	certs := make([]certificate.Certificate, 0)
	for _, cert := range repo.db.table {
		if cert.UserID == userID {
			certs = append(certs, *cert)
		}
	}
	sort.Slice(certs, func(i, j int) bool { return certs[i].IssuedAt.Before(certs[j].IssuedAt) })
	return certs, nil
}
