package user_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
	"github.com/Reema362/learn-spark-lms-sub001/core/user"
	cachesvc "github.com/Reema362/learn-spark-lms-sub001/services/cache"
	inmemdb "github.com/Reema362/learn-spark-lms-sub001/storage/inmem"
	testutil "github.com/Reema362/learn-spark-lms-sub001/tests"
)

func newSvc() (*user.Service, user.Repository, *cachesvc.MemoryInvalidator) {
	cache := cachesvc.NewMemoryInvalidator()
	repo := inmemdb.NewUserRepository()
	svc := user.NewService(repo, inmemdb.NewRoleRepository(), testutil.Provider{}, cache)
	return svc, repo, cache
}

func TestService_Create(t *testing.T) {
	svc, _, cache := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)
	nu := user.NewUser{Email: "jane@test.cd", Name: "Jane", Role: auth.RoleLearner, Password: "Mdr12345"}

	if _, err := svc.Create(testutil.CtxWith(testutil.Learner), nu); !core.IsPermissionDenied(err) {
		t.Errorf("Create() error = %v, want permission denied", err)
	}

	usr, err := svc.Create(adminCtx, nu)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if !usr.IsActive {
		t.Error("expected an active account")
	}
	if err = usr.CheckPassword("Mdr12345"); err != nil {
		t.Error("password not set")
	}
	if got := cache.Invalidated(); !reflect.DeepEqual(got, []string{core.CacheUsers, core.CacheAnalytics}) {
		t.Errorf("invalidated keys = %v; want [%s %s]", got, core.CacheUsers, core.CacheAnalytics)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(adminCtx, nu)
		var vErr *core.ValidationError
		if ok := errors.As(err, &vErr); !ok {
			t.Fatalf("Create() error = %v, want a validation error", err)
		}
		if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
			t.Errorf("Fields = %v; want an email field error", vErr.Fields)
		}
	})
}

func TestService_Update(t *testing.T) {
	svc, repo, _ := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)

	usr := testutil.CreateUser(t, repo, "Awe", "awe@test.cd", "Mdr12345", auth.RoleLearner, true)
	other := testutil.CreateUser(t, repo, "Other", "other@test.cd", "Mdr12345", auth.RoleLearner, true)

	t.Run("promote", func(t *testing.T) {
		updated, err := svc.Update(adminCtx, usr.ID, user.UpdateUser{Role: auth.RoleAdmin})
		if err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		if updated.Role != auth.RoleAdmin {
			t.Errorf("Role = %s; want admin", updated.Role)
		}
		if updated.Email != usr.Email {
			t.Errorf("Email = %s; want %s unchanged", updated.Email, usr.Email)
		}
	})

	t.Run("taken email", func(t *testing.T) {
		if _, err := svc.Update(adminCtx, usr.ID, user.UpdateUser{Email: other.Email}); err == nil {
			t.Error("expected a uniqueness error")
		}
	})

	t.Run("deactivate", func(t *testing.T) {
		inactive := false
		updated, err := svc.Update(adminCtx, usr.ID, user.UpdateUser{IsActive: &inactive})
		if err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		if updated.IsActive {
			t.Error("expected an inactive account")
		}
	})
}

func TestService_Delete(t *testing.T) {
	svc, repo, cache := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)

	usr := testutil.CreateUser(t, repo, "Awe", "awe@test.cd", "Mdr12345", auth.RoleLearner, true)

	t.Run("cannot delete own account", func(t *testing.T) {
		err := svc.Delete(adminCtx, usr.ID, testutil.Admin.ID)
		if !core.IsPermissionDenied(err) {
			t.Fatalf("Delete() error = %v, want permission denied", err)
		}
		// nothing was deleted
		if _, err := repo.GetUserByID(context.Background(), usr.ID); err != nil {
			t.Errorf("GetUserByID() failed, %v", err)
		}
	})

	cache.Reset()
	if err := svc.Delete(adminCtx, usr.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := repo.GetUserByID(context.Background(), usr.ID); err != user.ErrNotFound {
		t.Errorf("GetUserByID() error = %v, want %v", err, user.ErrNotFound)
	}
	if got := cache.Invalidated(); !reflect.DeepEqual(got, []string{core.CacheUsers, core.CacheAnalytics}) {
		t.Errorf("invalidated keys = %v; want [%s %s]", got, core.CacheUsers, core.CacheAnalytics)
	}
}

func TestService_Roles(t *testing.T) {
	svc, _, _ := newSvc()
	adminCtx := testutil.CtxWith(testutil.Admin)

	role, err := svc.CreateRole(adminCtx, user.NewRole{Name: "auditor", Description: "read-only reviewer"})
	if err != nil {
		t.Fatalf("CreateRole() failed: %v", err)
	}

	roles, err := svc.QueryRoles(adminCtx)
	if err != nil {
		t.Fatalf("QueryRoles() failed: %v", err)
	}
	if len(roles) != 1 || roles[0].ID != role.ID {
		t.Errorf("QueryRoles() = %v; want [%v]", roles, role)
	}

	// demo identities see no roles
	roles, err = svc.QueryRoles(testutil.CtxWith(testutil.DemoAdmin))
	if err != nil {
		t.Fatalf("QueryRoles() failed: %v", err)
	}
	if len(roles) != 0 {
		t.Errorf("QueryRoles() = %v; want empty", roles)
	}
}
