package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/Reema362/learn-spark-lms-sub001/core/course"
)

type courseRepository struct {
	mutex   sync.RWMutex
	courses []course.Course
}

func NewCourseRepository() course.Repository {
	return &courseRepository{}
}

func (repo *courseRepository) CreateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	c.ID = newID()
	repo.courses = append(repo.courses, c)
	return c, nil
}

func (repo *courseRepository) QueryAllCourses(_ context.Context) ([]course.Course, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]course.Course, len(repo.courses))
	copy(out, repo.courses)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (course.Course, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, c := range repo.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) UpdateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for i := range repo.courses {
		if repo.courses[i].ID == c.ID {
			repo.courses[i] = c
			return c, nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) DeleteCourseByID(_ context.Context, id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	out := repo.courses[:0]
	for _, c := range repo.courses {
		if c.ID != id {
			out = append(out, c)
		}
	}
	repo.courses = out
	return nil
}

type categoryRepository struct {
	mutex sync.RWMutex
	cats  []course.Category
}

func NewCategoryRepository() course.CategoryRepository {
	return &categoryRepository{}
}

func (repo *categoryRepository) CreateCategory(_ context.Context, cat course.Category) (course.Category, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	cat.ID = newID()
	repo.cats = append(repo.cats, cat)
	return cat, nil
}

func (repo *categoryRepository) QueryAllCategories(_ context.Context) ([]course.Category, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]course.Category, len(repo.cats))
	copy(out, repo.cats)
	return course.DedupeCategories(out), nil
}

func (repo *categoryRepository) DeleteCategoryByID(_ context.Context, id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	out := repo.cats[:0]
	for _, cat := range repo.cats {
		if cat.ID != id {
			out = append(out, cat)
		}
	}
	repo.cats = out
	return nil
}

type lessonRepository struct {
	mutex   sync.RWMutex
	lessons []course.Lesson
}

func NewLessonRepository() course.LessonRepository {
	return &lessonRepository{}
}

func (repo *lessonRepository) CreateLesson(_ context.Context, l course.Lesson) (course.Lesson, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	l.ID = newID()
	repo.lessons = append(repo.lessons, l)
	return l, nil
}

func (repo *lessonRepository) QueryLessonsByCourse(_ context.Context, courseID string) ([]course.Lesson, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]course.Lesson, 0, len(repo.lessons))
	for _, l := range repo.lessons {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (repo *lessonRepository) GetLessonByID(_ context.Context, id string) (course.Lesson, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, l := range repo.lessons {
		if l.ID == id {
			return l, nil
		}
	}
	return course.Lesson{}, course.ErrLessonNotFound
}

func (repo *lessonRepository) UpdateLesson(_ context.Context, l course.Lesson) (course.Lesson, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for i := range repo.lessons {
		if repo.lessons[i].ID == l.ID {
			repo.lessons[i] = l
			return l, nil
		}
	}
	return course.Lesson{}, course.ErrLessonNotFound
}

func (repo *lessonRepository) DeleteLessonByID(_ context.Context, id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	out := repo.lessons[:0]
	for _, l := range repo.lessons {
		if l.ID != id {
			out = append(out, l)
		}
	}
	repo.lessons = out
	return nil
}

type progressRepository struct {
	mutex sync.RWMutex
	items []course.LessonProgress
}

func NewProgressRepository() course.ProgressRepository {
	return &progressRepository{}
}

func (repo *progressRepository) UpsertProgress(_ context.Context, p course.LessonProgress) (course.LessonProgress, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for i := range repo.items {
		if repo.items[i].LessonID == p.LessonID && repo.items[i].UserID == p.UserID {
			p.ID = repo.items[i].ID
			repo.items[i] = p
			return p, nil
		}
	}
	p.ID = newID()
	repo.items = append(repo.items, p)
	return p, nil
}

func (repo *progressRepository) QueryProgressByUser(_ context.Context, userID string) ([]course.LessonProgress, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]course.LessonProgress, 0, len(repo.items))
	for _, p := range repo.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
