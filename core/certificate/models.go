package certificate

import "time"

// Certificate proves a user completed a course. Issuance is idempotent per
// (user, course) pair.
type Certificate struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	CourseID string    `json:"course_id"`
	IssuedAt time.Time `json:"issued_at"` // UTC
	URL      string    `json:"certificate_url"`
}

// View is a certificate joined to its course title.
type View struct {
	Certificate
	CourseTitle string `json:"course_title"`
}
