package demodb

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Reema362/learn-spark-lms-sub001/core/course"
	"github.com/Reema362/learn-spark-lms-sub001/storage/kvstore"
)

type lessonRepository struct {
	mutex sync.Mutex
	kv    kvstore.Store
}

func NewLessonRepository(kv kvstore.Store) course.LessonRepository {
	return &lessonRepository{kv: kv}
}

func (repo *lessonRepository) CreateLesson(_ context.Context, l course.Lesson) (course.Lesson, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	lessons, err := load[course.Lesson](repo.kv, lessonsKey)
	if err != nil {
		return course.Lesson{}, err
	}
	l.ID = uuid.New().String()
	lessons = append(lessons, l)
	if err = save(repo.kv, lessonsKey, lessons); err != nil {
		return course.Lesson{}, err
	}
	return l, nil
}

func (repo *lessonRepository) QueryLessonsByCourse(_ context.Context, courseID string) ([]course.Lesson, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	lessons, err := load[course.Lesson](repo.kv, lessonsKey)
	if err != nil {
		return nil, err
	}
	out := make([]course.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (repo *lessonRepository) GetLessonByID(_ context.Context, id string) (course.Lesson, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	lessons, err := load[course.Lesson](repo.kv, lessonsKey)
	if err != nil {
		return course.Lesson{}, err
	}
	for _, l := range lessons {
		if l.ID == id {
			return l, nil
		}
	}
	return course.Lesson{}, course.ErrLessonNotFound
}

func (repo *lessonRepository) UpdateLesson(_ context.Context, l course.Lesson) (course.Lesson, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	lessons, err := load[course.Lesson](repo.kv, lessonsKey)
	if err != nil {
		return course.Lesson{}, err
	}
	for i := range lessons {
		if lessons[i].ID == l.ID {
			lessons[i] = l
			if err = save(repo.kv, lessonsKey, lessons); err != nil {
				return course.Lesson{}, err
			}
			return l, nil
		}
	}
	return course.Lesson{}, course.ErrLessonNotFound
}

func (repo *lessonRepository) DeleteLessonByID(_ context.Context, id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	lessons, err := load[course.Lesson](repo.kv, lessonsKey)
	if err != nil {
		return err
	}
	out := lessons[:0]
	for _, l := range lessons {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return save(repo.kv, lessonsKey, out)
}

type progressRepository struct {
	mutex sync.Mutex
	kv    kvstore.Store
}

func NewProgressRepository(kv kvstore.Store) course.ProgressRepository {
	return &progressRepository{kv: kv}
}

// UpsertProgress matches on (lesson, user) and replaces the existing entry.
func (repo *progressRepository) UpsertProgress(_ context.Context, p course.LessonProgress) (course.LessonProgress, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	items, err := load[course.LessonProgress](repo.kv, progressKey)
	if err != nil {
		return course.LessonProgress{}, err
	}
	for i := range items {
		if items[i].LessonID == p.LessonID && items[i].UserID == p.UserID {
			p.ID = items[i].ID
			items[i] = p
			if err = save(repo.kv, progressKey, items); err != nil {
				return course.LessonProgress{}, err
			}
			return p, nil
		}
	}
	p.ID = uuid.New().String()
	items = append(items, p)
	if err = save(repo.kv, progressKey, items); err != nil {
		return course.LessonProgress{}, err
	}
	return p, nil
}

func (repo *progressRepository) QueryProgressByUser(_ context.Context, userID string) ([]course.LessonProgress, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	items, err := load[course.LessonProgress](repo.kv, progressKey)
	if err != nil {
		return nil, err
	}
	out := make([]course.LessonProgress, 0, len(items))
	for _, p := range items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
