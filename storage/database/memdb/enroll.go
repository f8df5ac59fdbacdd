package memdb

import (
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/darasa-lms/darasa/core/enroll"
)

type enrollRepository struct {
	db *enrollTable
}

var _ enroll.Repository = (*enrollRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) enroll.Repository {
	return &enrollRepository{db: db.enroll}
}

// CreateEnrollment inserts the row. The (user, course) pair's uniqueness is
// checked here, under the same lock that guards the insert.
func (repo *enrollRepository) CreateEnrollment(enr enroll.Enrollment) (enroll.Enrollment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, row := range repo.db.table {
		if row.UserID == enr.UserID && row.CourseID == enr.CourseID {
			return enroll.Enrollment{}, enroll.ErrAlreadyEnrolled
		}
	}
	repo.db.table[enr.ID] = &enr
	return enr, nil
}

func (repo *enrollRepository) GetEnrollment(userID, courseID string) (enroll.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, enr := range repo.db.table {
		if enr.UserID == userID && enr.CourseID == courseID {
			return *enr, nil
		}
	}
	return enroll.Enrollment{}, enroll.ErrNotFound
}

func (repo *enrollRepository) QueryUserEnrollments(userID string) ([]enroll.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	enrs := make([]enroll.Enrollment, 0)
	for _, enr := range repo.db.table {
		if enr.UserID == userID {
			enrs = append(enrs, *enr)
		}
	}
	sort.Slice(enrs, func(i, j int) bool { return enrs[i].EnrolledAt.Before(enrs[j].EnrolledAt) })
	return enrs, nil
}

func (repo *enrollRepository) SetEnrollmentCompleted(id string, at time.Time) (enroll.Enrollment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	enr, ok := repo.db.table[id]
	if !ok {
		return enroll.Enrollment{}, enroll.ErrNotFound
	}
	enr.CompletedAt = null.TimeFrom(at)
	return *enr, nil
}

// CreateLessonProgress inserts the row. The (user, lesson) pair's uniqueness
// is checked here, under the same lock that guards the insert.
func (repo *enrollRepository) CreateLessonProgress(lp enroll.LessonProgress) (enroll.LessonProgress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, row := range repo.db.progress {
		if row.UserID == lp.UserID && row.LessonID == lp.LessonID {
			return enroll.LessonProgress{}, enroll.ErrAlreadyCompleted
		}
	}
	repo.db.progress[lp.ID] = &lp
	return lp, nil
}

func (repo *enrollRepository) QueryUserProgress(userID string) ([]enroll.LessonProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rows := make([]enroll.LessonProgress, 0)
	for _, lp := range repo.db.progress {
		if lp.UserID == userID {
			rows = append(rows, *lp)
		}
	}
	return rows, nil
}

func (repo *enrollRepository) HasLessonProgress(userID, lessonID string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, lp := range repo.db.progress {
		if lp.UserID == userID && lp.LessonID == lessonID {
			return true, nil
		}
	}
	return false, nil
}
