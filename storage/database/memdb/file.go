package memdb

import (
	"sort"

	"github.com/darasa-lms/darasa/core/file"
)

type fileRepository struct {
	db *fileTable
}

var _ file.Repository = (*fileRepository)(nil) // interface compliance check

func NewFileRepository(db *DB) file.Repository {
	return &fileRepository{db: db.file}
}

func (repo *fileRepository) CreateFile(f file.File) (file.File, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[f.ID] = &f
	return f, nil
}

func (repo *fileRepository) GetFileByID(id string) (file.File, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if f, ok := repo.db.table[id]; ok {
		return *f, nil
	}
	return file.File{}, file.ErrNotFound
}

func (repo *fileRepository) QueryCourseFiles(courseID string) ([]file.File, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	files := make([]file.File, 0)
	for _, f := range repo.db.table {
		if f.CourseID.Valid && f.CourseID.String == courseID {
			files = append(files, *f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].UploadedAt.Before(files[j].UploadedAt) })
	return files, nil
}

func (repo *fileRepository) QueryLessonFiles(lessonID string) ([]file.File, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	files := make([]file.File, 0)
	for _, f := range repo.db.table {
		if f.LessonID.Valid && f.LessonID.String == lessonID {
			files = append(files, *f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].UploadedAt.Before(files[j].UploadedAt) })
	return files, nil
}

func (repo *fileRepository) DeleteFile(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return file.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
