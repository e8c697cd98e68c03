package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Reema362/learn-spark-lms-sub001/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	q := `
INSERT INTO course (id, title, description, category_id, status, duration_minutes, thumbnail_url, created_by, created_at, updated_at)
VALUES (:id, :title, :description, :category_id, :status, :duration_minutes, :thumbnail_url, :created_by, :created_at, :updated_at)`
	c.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, c); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	courses := []course.Course{}
	err := repo.db.SelectContext(ctx, &courses, `SELECT * FROM course ORDER BY created_at DESC`)
	return courses, err
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	var c course.Course
	err := repo.db.GetContext(ctx, &c, `SELECT * FROM course WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return course.Course{}, course.ErrNotFound
	}
	return c, err
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	q := `
UPDATE course
SET title = :title, description = :description, category_id = :category_id, status = :status,
    duration_minutes = :duration_minutes, thumbnail_url = :thumbnail_url, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, c)
	if err != nil {
		return course.Course{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return c, nil
}

func (repo *courseRepository) DeleteCourseByID(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM course WHERE id = $1`, id)
	return err
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) course.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) CreateCategory(ctx context.Context, cat course.Category) (course.Category, error) {
	q := `
INSERT INTO category (id, name, description, color, created_at)
VALUES (:id, :name, :description, :color, :created_at)`
	cat.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, cat); err != nil {
		return course.Category{}, err
	}
	return cat, nil
}

func (repo *categoryRepository) QueryAllCategories(ctx context.Context) ([]course.Category, error) {
	cats := []course.Category{}
	if err := repo.db.SelectContext(ctx, &cats, `SELECT * FROM category ORDER BY name ASC`); err != nil {
		return nil, err
	}
	return course.DedupeCategories(cats), nil
}

func (repo *categoryRepository) DeleteCategoryByID(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM category WHERE id = $1`, id)
	return err
}

type lessonRepository struct {
	db *sqlx.DB
}

func NewLessonRepository(db *sqlx.DB) course.LessonRepository {
	return &lessonRepository{db: db}
}

func (repo *lessonRepository) CreateLesson(ctx context.Context, l course.Lesson) (course.Lesson, error) {
	q := `
INSERT INTO lesson (id, course_id, title, content, video_url, order_index, duration_minutes, created_at, updated_at)
VALUES (:id, :course_id, :title, :content, :video_url, :order_index, :duration_minutes, :created_at, :updated_at)`
	l.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, l); err != nil {
		return course.Lesson{}, err
	}
	return l, nil
}

func (repo *lessonRepository) QueryLessonsByCourse(ctx context.Context, courseID string) ([]course.Lesson, error) {
	lessons := []course.Lesson{}
	err := repo.db.SelectContext(ctx, &lessons, `SELECT * FROM lesson WHERE course_id = $1 ORDER BY order_index ASC`, courseID)
	return lessons, err
}

func (repo *lessonRepository) GetLessonByID(ctx context.Context, id string) (course.Lesson, error) {
	var l course.Lesson
	err := repo.db.GetContext(ctx, &l, `SELECT * FROM lesson WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return course.Lesson{}, course.ErrLessonNotFound
	}
	return l, err
}

func (repo *lessonRepository) UpdateLesson(ctx context.Context, l course.Lesson) (course.Lesson, error) {
	q := `
UPDATE lesson
SET course_id = :course_id, title = :title, content = :content, video_url = :video_url,
    order_index = :order_index, duration_minutes = :duration_minutes, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, l)
	if err != nil {
		return course.Lesson{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.Lesson{}, course.ErrLessonNotFound
	}
	return l, nil
}

func (repo *lessonRepository) DeleteLessonByID(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM lesson WHERE id = $1`, id)
	return err
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) course.ProgressRepository {
	return &progressRepository{db: db}
}

// UpsertProgress relies on the (lesson_id, user_id) unique constraint.
func (repo *progressRepository) UpsertProgress(ctx context.Context, p course.LessonProgress) (course.LessonProgress, error) {
	q := `
INSERT INTO lesson_progress (id, lesson_id, course_id, user_id, status, percent, completed_at, updated_at)
VALUES (:id, :lesson_id, :course_id, :user_id, :status, :percent, :completed_at, :updated_at)
ON CONFLICT (lesson_id, user_id) DO UPDATE
SET status = EXCLUDED.status, percent = EXCLUDED.percent,
    completed_at = EXCLUDED.completed_at, updated_at = EXCLUDED.updated_at`
	p.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, p); err != nil {
		return course.LessonProgress{}, err
	}
	return p, nil
}

func (repo *progressRepository) QueryProgressByUser(ctx context.Context, userID string) ([]course.LessonProgress, error) {
	items := []course.LessonProgress{}
	err := repo.db.SelectContext(ctx, &items, `SELECT * FROM lesson_progress WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	return items, err
}
