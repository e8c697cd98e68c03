package course

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

var (
	ErrNotFound         = errors.New("course not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, c Course) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		UpdateCourse(ctx context.Context, c Course) (Course, error)
		DeleteCourseByID(ctx context.Context, id string) error
	}

	CategoryRepository interface {
		CreateCategory(ctx context.Context, cat Category) (Category, error)
		// QueryAllCategories deduplicates by id, keeping first occurrence.
		QueryAllCategories(ctx context.Context) ([]Category, error)
		DeleteCategoryByID(ctx context.Context, id string) error
	}

	LessonRepository interface {
		CreateLesson(ctx context.Context, l Lesson) (Lesson, error)
		// QueryLessonsByCourse returns lessons ordered by order_index ascending.
		QueryLessonsByCourse(ctx context.Context, courseID string) ([]Lesson, error)
		GetLessonByID(ctx context.Context, id string) (Lesson, error)
		UpdateLesson(ctx context.Context, l Lesson) (Lesson, error)
		DeleteLessonByID(ctx context.Context, id string) error
	}

	ProgressRepository interface {
		UpsertProgress(ctx context.Context, p LessonProgress) (LessonProgress, error)
		QueryProgressByUser(ctx context.Context, userID string) ([]LessonProgress, error)
	}

	// Stores bundles the per-entity repositories of one persistence mode.
	Stores struct {
		Courses    Repository
		Categories CategoryRepository
		Lessons    LessonRepository
		Progress   ProgressRepository
	}

	// Service exposes course authoring and learner progress over the remote
	// store, with a local demo fallback for lessons and lesson progress only:
	// demo identities read and write the local arrays, everything else is
	// empty/unsupported in demo mode.
	Service struct {
		remote Stores
		demo   Stores // Lessons and Progress only; other repos may be nil
		idp    auth.IdentityProvider
		cache  core.Invalidator
		logger core.Logger
	}
)

func NewService(remote, demo Stores, idp auth.IdentityProvider, cache core.Invalidator, logger core.Logger) *Service {
	return &Service{remote: remote, demo: demo, idp: idp, cache: cache, logger: logger}
}

// lessonRepo resolves the lesson store for the current identity:
// local demo arrays for demo identities, the remote store otherwise.
func (svc *Service) lessonRepo(ident auth.Identity) LessonRepository {
	if ident.IsDemo && svc.demo.Lessons != nil {
		return svc.demo.Lessons
	}
	return svc.remote.Lessons
}

func (svc *Service) progressRepo(ident auth.Identity) ProgressRepository {
	if ident.IsDemo && svc.demo.Progress != nil {
		return svc.demo.Progress
	}
	return svc.remote.Progress
}

// Courses

func (svc *Service) QueryCourses(ctx context.Context) ([]Course, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return []Course{}, nil
	}
	return svc.remote.Courses.QueryAllCourses(ctx)
}

func (svc *Service) GetCourseByID(ctx context.Context, id string) (Course, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return Course{}, ErrNotFound
	}
	return svc.remote.Courses.GetCourseByID(ctx, id)
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	ident, err := auth.RequireAdmin(ctx, svc.idp)
	if err != nil {
		return Course{}, err
	}

	now := time.Now().UTC()
	c := Course{
		Title:       nc.Title,
		Description: nc.Description,
		CategoryID:  nc.CategoryID,
		Status:      StatusDraft,
		Duration:    nc.Duration,
		CreatedBy:   ident.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c, err = svc.remote.Courses.CreateCourse(ctx, c)
	if err != nil {
		return Course{}, core.NewRemoteStoreError("create", "course", err)
	}
	svc.cache.Invalidate(core.CacheCourses)
	return c, nil
}

func (svc *Service) UpdateCourse(ctx context.Context, id string, uc UpdateCourse) (Course, error) {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return Course{}, err
	}

	c, err := svc.remote.Courses.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, core.NewRemoteStoreError("update", "course", err)
	}
	c = uc.apply(c)
	c.UpdatedAt = time.Now().UTC()

	c, err = svc.remote.Courses.UpdateCourse(ctx, c)
	if err != nil {
		return Course{}, core.NewRemoteStoreError("update", "course", err)
	}
	svc.cache.Invalidate(core.CacheCourses)
	return c, nil
}

// SetCourseThumbnail points a course at an uploaded thumbnail asset.
func (svc *Service) SetCourseThumbnail(ctx context.Context, id, url string) (Course, error) {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return Course{}, err
	}

	c, err := svc.remote.Courses.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, core.NewRemoteStoreError("update", "course", err)
	}
	c.ThumbnailURL = url
	c.UpdatedAt = time.Now().UTC()

	c, err = svc.remote.Courses.UpdateCourse(ctx, c)
	if err != nil {
		return Course{}, core.NewRemoteStoreError("update", "course", err)
	}
	svc.cache.Invalidate(core.CacheCourses)
	return c, nil
}

func (svc *Service) DeleteCourse(ctx context.Context, id string) error {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return err
	}
	if err := svc.remote.Courses.DeleteCourseByID(ctx, id); err != nil {
		return core.NewRemoteStoreError("delete", "course", err)
	}
	svc.cache.Invalidate(core.CacheCourses)
	return nil
}

// Categories

// QueryCategories lists categories deduplicated by id, keeping first
// occurrence. The repository already deduplicates; doing it again here guards
// against duplicate inserts slipping through concurrent seeding.
func (svc *Service) QueryCategories(ctx context.Context) ([]Category, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return []Category{}, nil
	}
	cats, err := svc.remote.Categories.QueryAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	return DedupeCategories(cats), nil
}

// DedupeCategories drops entries sharing an id, keeping first occurrence.
func DedupeCategories(cats []Category) []Category {
	seen := make(map[string]struct{}, len(cats))
	out := make([]Category, 0, len(cats))
	for _, cat := range cats {
		if _, ok := seen[cat.ID]; ok {
			continue
		}
		seen[cat.ID] = struct{}{}
		out = append(out, cat)
	}
	return out
}

func (svc *Service) CreateCategory(ctx context.Context, nc NewCategory) (Category, error) {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return Category{}, err
	}
	cat, err := svc.remote.Categories.CreateCategory(ctx, Category{
		Name:        nc.Name,
		Description: nc.Description,
		Color:       nc.Color,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return Category{}, core.NewRemoteStoreError("create", "category", err)
	}
	svc.cache.Invalidate(core.CacheCategories)
	return cat, nil
}

func (svc *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return err
	}
	if err := svc.remote.Categories.DeleteCategoryByID(ctx, id); err != nil {
		return core.NewRemoteStoreError("delete", "category", err)
	}
	svc.cache.Invalidate(core.CacheCategories)
	return nil
}

var sampleCategories = []Category{
	{Name: "Security Awareness", Description: "Phishing, social engineering and safe browsing", Color: "#e74c3c"},
	{Name: "Compliance", Description: "Regulatory and policy training", Color: "#2980b9"},
	{Name: "Data Protection", Description: "Handling and classifying sensitive data", Color: "#27ae60"},
	{Name: "Incident Response", Description: "Recognizing and reporting incidents", Color: "#f39c12"},
	{Name: "Onboarding", Description: "New joiner essentials", Color: "#8e44ad"},
}

// SampleCategories returns a copy of the seed category list.
func SampleCategories() []Category {
	out := make([]Category, len(sampleCategories))
	copy(out, sampleCategories)
	return out
}

// CreateSampleCategories seeds the fixed category list, skipping names that
// already exist (case-insensitive, trimmed). Existence is re-checked right
// before each individual insert to narrow the race against concurrent seed
// runs; this is best-effort, not transactional, and individual insert
// failures do not abort the batch.
func (svc *Service) CreateSampleCategories(ctx context.Context) error {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return err
	}

	existing, err := svc.remote.Categories.QueryAllCategories(ctx)
	if err != nil {
		return core.NewRemoteStoreError("create", "sample categories", err)
	}
	names := categoryNameSet(existing)

	var created bool
	for _, cat := range sampleCategories {
		key := strings.ToLower(strings.TrimSpace(cat.Name))
		if _, ok := names[key]; ok {
			continue
		}

		// re-check immediately before the insert
		current, err := svc.remote.Categories.QueryAllCategories(ctx)
		if err != nil {
			svc.logger.Warn("re-checking categories before seed insert", err)
			continue
		}
		if _, ok := categoryNameSet(current)[key]; ok {
			continue
		}

		cat.CreatedAt = time.Now().UTC()
		if _, err := svc.remote.Categories.CreateCategory(ctx, cat); err != nil {
			svc.logger.Warn("seeding category "+cat.Name, err)
			continue
		}
		names[key] = struct{}{}
		created = true
	}

	if created {
		svc.cache.Invalidate(core.CacheCategories)
	}
	return nil
}

func categoryNameSet(cats []Category) map[string]struct{} {
	names := make(map[string]struct{}, len(cats))
	for _, cat := range cats {
		names[strings.ToLower(strings.TrimSpace(cat.Name))] = struct{}{}
	}
	return names
}

// Lessons

// QueryLessons lists a course's lessons ordered by order_index ascending,
// from the local demo array for demo identities.
func (svc *Service) QueryLessons(ctx context.Context, courseID string) ([]Lesson, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil {
		return []Lesson{}, nil
	}
	return svc.lessonRepo(ident).QueryLessonsByCourse(ctx, courseID)
}

func (svc *Service) CreateLesson(ctx context.Context, nl NewLesson) (Lesson, error) {
	ident, err := auth.RequireAdmin(ctx, svc.idp)
	if err != nil {
		return Lesson{}, err
	}

	now := time.Now().UTC()
	l := Lesson{
		CourseID:   nl.CourseID,
		Title:      nl.Title,
		Content:    nl.Content,
		VideoURL:   nl.VideoURL,
		OrderIndex: nl.OrderIndex,
		Duration:   nl.Duration,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	l, err = svc.lessonRepo(ident).CreateLesson(ctx, l)
	if err != nil {
		return Lesson{}, core.NewRemoteStoreError("create", "lesson", err)
	}
	svc.cache.Invalidate(core.CacheLessons)
	return l, nil
}

func (svc *Service) DeleteLesson(ctx context.Context, id string) error {
	ident, err := auth.RequireAdmin(ctx, svc.idp)
	if err != nil {
		return err
	}
	if err := svc.lessonRepo(ident).DeleteLessonByID(ctx, id); err != nil {
		return core.NewRemoteStoreError("delete", "lesson", err)
	}
	svc.cache.Invalidate(core.CacheLessons)
	return nil
}

// Progress

func (svc *Service) QueryProgress(ctx context.Context) ([]LessonProgress, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil {
		return []LessonProgress{}, nil
	}
	return svc.progressRepo(ident).QueryProgressByUser(ctx, ident.ID)
}

// RecordProgress upserts the caller's progress for a lesson. Reaching 100%
// marks the lesson completed.
func (svc *Service) RecordProgress(ctx context.Context, pu ProgressUpdate) (LessonProgress, error) {
	ident, err := auth.RequireIdentity(ctx, svc.idp)
	if err != nil {
		return LessonProgress{}, err
	}

	now := time.Now().UTC()
	p := LessonProgress{
		LessonID:  pu.LessonID,
		CourseID:  pu.CourseID,
		UserID:    ident.ID,
		Percent:   pu.Percent,
		Status:    ProgressInProgress,
		UpdatedAt: now,
	}
	if pu.Percent == 0 {
		p.Status = ProgressNotStarted
	}
	if pu.Percent >= 100 {
		p.Status = ProgressCompleted
		p.CompletedAt = now
	}

	p, err = svc.progressRepo(ident).UpsertProgress(ctx, p)
	if err != nil {
		return LessonProgress{}, core.NewRemoteStoreError("update", "lesson progress", err)
	}
	svc.cache.Invalidate(core.CacheLessonProgress)
	return p, nil
}
