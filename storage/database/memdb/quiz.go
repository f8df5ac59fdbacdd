package memdb

import (
	"sort"

	"github.com/darasa-lms/darasa/core/quiz"
)

type quizRepository struct {
	db *quizTable
}

var _ quiz.Repository = (*quizRepository)(nil) // interface compliance check

func NewQuizRepository(db *DB) quiz.Repository {
	return &quizRepository{db: db.quiz}
}

func copyQuiz(q quiz.Quiz) quiz.Quiz {
	questions := make([]quiz.Question, len(q.Questions))
	copy(questions, q.Questions)
	q.Questions = questions
	return q
}

func copyAttempt(att quiz.Attempt) quiz.Attempt {
	answers := make(map[string]int, len(att.Answers))
	for k, v := range att.Answers {
		answers[k] = v
	}
	att.Answers = answers
	return att
}

func (repo *quizRepository) CreateQuiz(q quiz.Quiz) (quiz.Quiz, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	q = copyQuiz(q)
	repo.db.table[q.ID] = &q
	return copyQuiz(q), nil
}

func (repo *quizRepository) GetQuizByID(id string) (quiz.Quiz, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if q, ok := repo.db.table[id]; ok {
		return copyQuiz(*q), nil
	}
	return quiz.Quiz{}, quiz.ErrNotFound
}

func (repo *quizRepository) QueryCourseQuizzes(courseID string) ([]quiz.Quiz, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	quizzes := make([]quiz.Quiz, 0)
	for _, q := range repo.db.table {
		if q.CourseID == courseID {
			quizzes = append(quizzes, copyQuiz(*q))
		}
	}
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].CreatedAt.Before(quizzes[j].CreatedAt) })
	return quizzes, nil
}

// CreateAttempt inserts the row. The attempts cap is checked here, under the
// same lock that guards the insert; the quiz and attempt tables share it.
func (repo *quizRepository) CreateAttempt(att quiz.Attempt) (quiz.Attempt, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	q, ok := repo.db.table[att.QuizID]
	if !ok {
		return quiz.Attempt{}, quiz.ErrNotFound
	}
	var prior int
	for _, row := range repo.db.attempts {
		if row.QuizID == att.QuizID && row.UserID == att.UserID {
			prior++
		}
	}
	if prior >= q.MaxAttempts {
		return quiz.Attempt{}, quiz.ErrAttemptsExhausted
	}

	att = copyAttempt(att)
	repo.db.attempts[att.ID] = &att
	return copyAttempt(att), nil
}

func (repo *quizRepository) QueryQuizAttempts(quizID, userID string) ([]quiz.Attempt, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	attempts := make([]quiz.Attempt, 0)
	for _, att := range repo.db.attempts {
		if att.QuizID == quizID && att.UserID == userID {
			attempts = append(attempts, copyAttempt(*att))
		}
	}
	sort.Slice(attempts, func(i, j int) bool { return attempts[i].StartedAt.Before(attempts[j].StartedAt) })
	return attempts, nil
}

func (repo *quizRepository) QueryUserAttempts(userID string) ([]quiz.Attempt, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	attempts := make([]quiz.Attempt, 0)
	for _, att := range repo.db.attempts {
		if att.UserID == userID {
			attempts = append(attempts, copyAttempt(*att))
		}
	}
	sort.Slice(attempts, func(i, j int) bool { return attempts[i].StartedAt.Before(attempts[j].StartedAt) })
	return attempts, nil
}
