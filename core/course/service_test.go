package course_test

import (
	"context"
	"testing"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/course"
	cachesvc "github.com/Reema362/learn-spark-lms-sub001/services/cache"
	demodb "github.com/Reema362/learn-spark-lms-sub001/storage/demo"
	inmemdb "github.com/Reema362/learn-spark-lms-sub001/storage/inmem"
	"github.com/Reema362/learn-spark-lms-sub001/storage/kvstore"
	testutil "github.com/Reema362/learn-spark-lms-sub001/tests"
)

func newSvc() (*course.Service, *cachesvc.MemoryInvalidator) {
	cache := cachesvc.NewMemoryInvalidator()
	remote := course.Stores{
		Courses:    inmemdb.NewCourseRepository(),
		Categories: inmemdb.NewCategoryRepository(),
		Lessons:    inmemdb.NewLessonRepository(),
		Progress:   inmemdb.NewProgressRepository(),
	}
	kv := kvstore.NewMemStore()
	demo := course.Stores{
		Lessons:  demodb.NewLessonRepository(kv),
		Progress: demodb.NewProgressRepository(kv),
	}
	svc := course.NewService(remote, demo, testutil.Provider{}, cache, testutil.Logger{})
	return svc, cache
}

func TestService_CreateSampleCategories(t *testing.T) {
	svc, cache := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)

	if err := svc.CreateSampleCategories(testutil.CtxWith(testutil.Learner)); !core.IsPermissionDenied(err) {
		t.Errorf("CreateSampleCategories() error = %v, want permission denied", err)
	}

	if err := svc.CreateSampleCategories(adminCtx); err != nil {
		t.Fatalf("CreateSampleCategories() failed: %v", err)
	}
	cats, err := svc.QueryCategories(adminCtx)
	if err != nil {
		t.Fatalf("QueryCategories() failed: %v", err)
	}
	want := len(course.SampleCategories())
	if len(cats) != want {
		t.Errorf("len(cats) = %d; want %d", len(cats), want)
	}
	if keys := cache.Invalidated(); len(keys) != 1 || keys[0] != core.CacheCategories {
		t.Errorf("invalidated keys = %v; want [%s]", keys, core.CacheCategories)
	}

	// a second run creates nothing and leaves the cache alone
	cache.Reset()
	if err := svc.CreateSampleCategories(adminCtx); err != nil {
		t.Fatalf("CreateSampleCategories() failed on rerun: %v", err)
	}
	cats, err = svc.QueryCategories(adminCtx)
	if err != nil {
		t.Fatalf("QueryCategories() failed: %v", err)
	}
	if len(cats) != want {
		t.Errorf("len(cats) = %d after rerun; want %d", len(cats), want)
	}
	if keys := cache.Invalidated(); len(keys) != 0 {
		t.Errorf("invalidated keys = %v; want none on a no-op rerun", keys)
	}

	// an existing name is skipped even with different casing
	if _, err := svc.CreateCategory(adminCtx, course.NewCategory{Name: "  security awareness "}); err != nil {
		t.Fatalf("CreateCategory() failed: %v", err)
	}
	if err := svc.CreateSampleCategories(adminCtx); err != nil {
		t.Fatalf("CreateSampleCategories() failed: %v", err)
	}
	cats, err = svc.QueryCategories(adminCtx)
	if err != nil {
		t.Fatalf("QueryCategories() failed: %v", err)
	}
	if len(cats) != want+1 {
		t.Errorf("len(cats) = %d; want %d", len(cats), want+1)
	}
}

func TestDedupeCategories(t *testing.T) {
	cats := []course.Category{{ID: "a", Name: "One"}, {ID: "b", Name: "Two"}, {ID: "a", Name: "One dupe"}}
	out := course.DedupeCategories(cats)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d; want 2", len(out))
	}
	if out[0].Name != "One" || out[1].Name != "Two" {
		t.Errorf("out = %v; want first occurrences kept", out)
	}
}

func TestService_Courses(t *testing.T) {
	svc, cache := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)

	c, err := svc.CreateCourse(adminCtx, course.NewCourse{Title: "Phishing 101", Duration: 30})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	if c.Status != course.StatusDraft {
		t.Errorf("Status = %s; want draft", c.Status)
	}

	cache.Reset()
	c, err = svc.SetCourseThumbnail(adminCtx, c.ID, "/uploads/thumb.png")
	if err != nil {
		t.Fatalf("SetCourseThumbnail() failed: %v", err)
	}
	if c.ThumbnailURL != "/uploads/thumb.png" {
		t.Errorf("ThumbnailURL = %s", c.ThumbnailURL)
	}
	if keys := cache.Invalidated(); len(keys) != 1 || keys[0] != core.CacheCourses {
		t.Errorf("invalidated keys = %v; want [%s]", keys, core.CacheCourses)
	}

	// demo identities see no remote courses
	courses, err := svc.QueryCourses(testutil.CtxWith(testutil.DemoAdmin))
	if err != nil {
		t.Fatalf("QueryCourses() failed: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("len(courses) = %d; want 0 for demo", len(courses))
	}
}

func TestService_Lessons_demoIsolation(t *testing.T) {
	svc, _ := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)
	demoCtx := testutil.CtxWith(testutil.DemoAdmin)

	remoteLesson, err := svc.CreateLesson(adminCtx, course.NewLesson{CourseID: "c1", Title: "Remote", OrderIndex: 1})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	demoLesson, err := svc.CreateLesson(demoCtx, course.NewLesson{CourseID: "c1", Title: "Demo", OrderIndex: 1})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}

	remote, err := svc.QueryLessons(adminCtx, "c1")
	if err != nil {
		t.Fatalf("QueryLessons() failed: %v", err)
	}
	if len(remote) != 1 || remote[0].ID != remoteLesson.ID {
		t.Errorf("remote lessons = %v; want only %v", remote, remoteLesson)
	}

	demo, err := svc.QueryLessons(demoCtx, "c1")
	if err != nil {
		t.Fatalf("QueryLessons() failed: %v", err)
	}
	if len(demo) != 1 || demo[0].ID != demoLesson.ID {
		t.Errorf("demo lessons = %v; want only %v", demo, demoLesson)
	}
}

func TestService_Lessons_ordering(t *testing.T) {
	svc, _ := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)

	for i, title := range []string{"Third", "First", "Second"} {
		order := []int{3, 1, 2}[i]
		if _, err := svc.CreateLesson(adminCtx, course.NewLesson{CourseID: "c1", Title: title, OrderIndex: order}); err != nil {
			t.Fatalf("CreateLesson() failed: %v", err)
		}
	}

	lessons, err := svc.QueryLessons(adminCtx, "c1")
	if err != nil {
		t.Fatalf("QueryLessons() failed: %v", err)
	}
	if len(lessons) != 3 {
		t.Fatalf("len(lessons) = %d; want 3", len(lessons))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if lessons[i].Title != want {
			t.Errorf("lessons[%d].Title = %s; want %s", i, lessons[i].Title, want)
		}
	}
}

func TestService_RecordProgress(t *testing.T) {
	svc, _ := newSvc()
	learnerCtx := testutil.CtxWith(testutil.Learner)

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.RecordProgress(context.Background(), course.ProgressUpdate{LessonID: "l1", CourseID: "c1", Percent: 10})
		if !core.IsPermissionDenied(err) {
			t.Errorf("RecordProgress() error = %v, want permission denied", err)
		}
	})

	p, err := svc.RecordProgress(learnerCtx, course.ProgressUpdate{LessonID: "l1", CourseID: "c1", Percent: 40})
	if err != nil {
		t.Fatalf("RecordProgress() failed: %v", err)
	}
	if p.Status != course.ProgressInProgress {
		t.Errorf("Status = %s; want in progress", p.Status)
	}

	// same lesson upserts rather than duplicating
	done, err := svc.RecordProgress(learnerCtx, course.ProgressUpdate{LessonID: "l1", CourseID: "c1", Percent: 100})
	if err != nil {
		t.Fatalf("RecordProgress() failed: %v", err)
	}
	if done.ID != p.ID {
		t.Errorf("ID = %s; want %s kept", done.ID, p.ID)
	}
	if done.Status != course.ProgressCompleted {
		t.Errorf("Status = %s; want completed", done.Status)
	}
	if done.CompletedAt.IsZero() {
		t.Error("expected CompletedAt to be set")
	}

	all, err := svc.QueryProgress(learnerCtx)
	if err != nil {
		t.Fatalf("QueryProgress() failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len(all) = %d; want 1", len(all))
	}
}
