package template_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/template"
	cachesvc "github.com/Reema362/learn-spark-lms-sub001/services/cache"
	inmemdb "github.com/Reema362/learn-spark-lms-sub001/storage/inmem"
	testutil "github.com/Reema362/learn-spark-lms-sub001/tests"
)

func newSvc() (*template.Service, *cachesvc.MemoryInvalidator) {
	cache := cachesvc.NewMemoryInvalidator()
	svc := template.NewService(inmemdb.NewTemplateRepository(), testutil.Provider{}, cache)
	return svc, cache
}

func TestService_Create(t *testing.T) {
	svc, cache := newSvc()
	nt := template.NewTemplate{Name: "Phishing Alert", Type: "alert", Content: "Heads up!"}

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.Create(context.Background(), nt)
		if !core.IsPermissionDenied(err) {
			t.Errorf("Create() error = %v, want permission denied", err)
		}
	})

	t.Run("learner", func(t *testing.T) {
		_, err := svc.Create(testutil.CtxWith(testutil.Learner), nt)
		if !core.IsPermissionDenied(err) {
			t.Errorf("Create() error = %v, want permission denied", err)
		}
	})

	t.Run("admin", func(t *testing.T) {
		tpl, err := svc.Create(testutil.CtxWith(testutil.Admin), nt)
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		if tpl.ID == "" {
			t.Error("expected an id")
		}
		if tpl.CreatedBy != testutil.Admin.ID {
			t.Errorf("CreatedBy = %s; want %s", tpl.CreatedBy, testutil.Admin.ID)
		}
		if !tpl.IsActive {
			t.Error("expected the template to be active")
		}
		if tpl.Category != template.CategoryCustom {
			t.Errorf("Category = %s; want %s", tpl.Category, template.CategoryCustom)
		}
		if got := cache.Invalidated(); !reflect.DeepEqual(got, []string{core.CacheTemplates}) {
			t.Errorf("invalidated keys = %v; want [%s]", got, core.CacheTemplates)
		}
	})
}

func TestService_Query(t *testing.T) {
	svc, _ := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)

	tpl, err := svc.Create(adminCtx, template.NewTemplate{Name: "Welcome", Type: "email", Content: "Hi"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	t.Run("admin sees all", func(t *testing.T) {
		tpls, err := svc.Query(adminCtx)
		if err != nil {
			t.Fatalf("Query() failed: %v", err)
		}
		if len(tpls) != 1 || tpls[0].ID != tpl.ID {
			t.Errorf("Query() = %v; want [%v]", tpls, tpl)
		}
	})

	t.Run("anonymous sees nothing", func(t *testing.T) {
		tpls, err := svc.Query(context.Background())
		if err != nil {
			t.Fatalf("Query() failed: %v", err)
		}
		if len(tpls) != 0 {
			t.Errorf("Query() = %v; want empty", tpls)
		}
	})

	t.Run("demo sees nothing", func(t *testing.T) {
		tpls, err := svc.Query(testutil.CtxWith(testutil.DemoAdmin))
		if err != nil {
			t.Fatalf("Query() failed: %v", err)
		}
		if len(tpls) != 0 {
			t.Errorf("Query() = %v; want empty", tpls)
		}
	})
}

func TestService_Update(t *testing.T) {
	svc, cache := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)

	tpl, err := svc.Create(adminCtx, template.NewTemplate{Name: "Welcome", Type: "email", Content: "Hi"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	cache.Reset()

	updated, err := svc.Update(adminCtx, tpl.ID, template.UpdateTemplate{Subject: "Hello there"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Subject != "Hello there" {
		t.Errorf("Subject = %s; want Hello there", updated.Subject)
	}
	if updated.Name != tpl.Name {
		t.Errorf("Name = %s; want %s unchanged", updated.Name, tpl.Name)
	}
	if got := cache.Invalidated(); !reflect.DeepEqual(got, []string{core.CacheTemplates}) {
		t.Errorf("invalidated keys = %v; want [%s]", got, core.CacheTemplates)
	}

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(adminCtx, "lol", template.UpdateTemplate{Subject: "x"})
		if !core.IsRemoteStoreError(err) {
			t.Errorf("Update() error = %v, want a remote store error", err)
		}
	})
}

func TestService_Delete(t *testing.T) {
	svc, cache := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)

	tpl, err := svc.Create(adminCtx, template.NewTemplate{Name: "Welcome", Type: "email", Content: "Hi"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := svc.Delete(testutil.CtxWith(testutil.Learner), tpl.ID); !core.IsPermissionDenied(err) {
		t.Errorf("Delete() error = %v, want permission denied", err)
	}

	cache.Reset()
	if err := svc.Delete(adminCtx, tpl.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.GetByID(adminCtx, tpl.ID); err == nil {
		t.Error("expected the template to be gone")
	}
	if got := cache.Invalidated(); !reflect.DeepEqual(got, []string{core.CacheTemplates}) {
		t.Errorf("invalidated keys = %v; want [%s]", got, core.CacheTemplates)
	}
}
