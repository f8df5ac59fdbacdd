package memdb

import (
	"sort"

	"github.com/darasa-lms/darasa/core/course"
)

// courseRepository holds the whole DB: deleting a course cascades across
// every table that references it.
type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

// withLessons returns a copy of the course with its lessons attached,
// ordered by OrderIndex. Callers must hold at least a read lock.
func (repo *courseRepository) withLessons(crs course.Course) course.Course {
	lessons := make([]course.Lesson, 0)
	for _, l := range repo.db.course.lessons {
		if l.CourseID == crs.ID {
			lessons = append(lessons, *l)
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].OrderIndex < lessons[j].OrderIndex })
	crs.Lessons = lessons
	return crs
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	lessons := crs.Lessons
	crs.Lessons = nil
	repo.db.course.table[crs.ID] = &crs
	for i := range lessons {
		l := lessons[i]
		repo.db.course.lessons[l.ID] = &l
	}
	return repo.withLessons(crs), nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.course.table))
	for _, crs := range repo.db.course.table {
		courses = append(courses, repo.withLessons(*crs))
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	if crs, ok := repo.db.course.table[id]; ok {
		return repo.withLessons(*crs), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) GetLessonByID(id string) (course.Lesson, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	if l, ok := repo.db.course.lessons[id]; ok {
		return *l, nil
	}
	return course.Lesson{}, course.ErrLessonNotFound
}

func (repo *courseRepository) UpdateCourse(crs course.Course, lessons []course.Lesson) (course.Course, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	orig, ok := repo.db.course.table[crs.ID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	orig.Title = crs.Title
	orig.Description = crs.Description
	orig.UpdatedAt = crs.UpdatedAt

	// non-nil lessons replace the course's lesson list wholesale
	if lessons != nil {
		for id, l := range repo.db.course.lessons {
			if l.CourseID == crs.ID {
				delete(repo.db.course.lessons, id)
			}
		}
		for i := range lessons {
			l := lessons[i]
			repo.db.course.lessons[l.ID] = &l
		}
	}
	return repo.withLessons(*orig), nil
}

// DeleteCourse removes the course and everything hanging off it. Tables are
// locked in the order declared on DB.
func (repo *courseRepository) DeleteCourse(id string) error {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	if _, ok := repo.db.course.table[id]; !ok {
		return course.ErrNotFound
	}
	delete(repo.db.course.table, id)

	lessonIDs := make(map[string]struct{})
	for lid, l := range repo.db.course.lessons {
		if l.CourseID == id {
			lessonIDs[lid] = struct{}{}
			delete(repo.db.course.lessons, lid)
		}
	}

	repo.db.enroll.Lock()
	for eid, enr := range repo.db.enroll.table {
		if enr.CourseID == id {
			delete(repo.db.enroll.table, eid)
		}
	}
	for pid, lp := range repo.db.enroll.progress {
		if _, ok := lessonIDs[lp.LessonID]; ok {
			delete(repo.db.enroll.progress, pid)
		}
	}
	repo.db.enroll.Unlock()

	repo.db.assignment.Lock()
	assignmentIDs := make(map[string]struct{})
	for aid, a := range repo.db.assignment.table {
		if a.CourseID == id {
			assignmentIDs[aid] = struct{}{}
			delete(repo.db.assignment.table, aid)
		}
	}
	for sid, sub := range repo.db.assignment.submissions {
		if _, ok := assignmentIDs[sub.AssignmentID]; ok {
			delete(repo.db.assignment.submissions, sid)
		}
	}
	repo.db.assignment.Unlock()

	repo.db.quiz.Lock()
	quizIDs := make(map[string]struct{})
	for qid, q := range repo.db.quiz.table {
		if q.CourseID == id {
			quizIDs[qid] = struct{}{}
			delete(repo.db.quiz.table, qid)
		}
	}
	for aid, att := range repo.db.quiz.attempts {
		if _, ok := quizIDs[att.QuizID]; ok {
			delete(repo.db.quiz.attempts, aid)
		}
	}
	repo.db.quiz.Unlock()

	repo.db.cert.Lock()
	for cid, cert := range repo.db.cert.table {
		if cert.CourseID == id {
			delete(repo.db.cert.table, cid)
		}
	}
	repo.db.cert.Unlock()

	repo.db.file.Lock()
	for fid, f := range repo.db.file.table {
		if f.CourseID.String == id && f.CourseID.Valid {
			delete(repo.db.file.table, fid)
			continue
		}
		if f.LessonID.Valid {
			if _, ok := lessonIDs[f.LessonID.String]; ok {
				delete(repo.db.file.table, fid)
			}
		}
	}
	repo.db.file.Unlock()

	return nil
}
