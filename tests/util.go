// Package testutil provides helpers shared by the service and app tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
	"github.com/Reema362/learn-spark-lms-sub001/core/user"
)

// Admin and Learner are ready-made request identities.
var (
	Admin = auth.Identity{
		ID:    "11111111-1111-1111-1111-111111111111",
		Email: "root@test.cd",
		Role:  auth.RoleAdmin,
		Name:  "Root",
	}
	Learner = auth.Identity{
		ID:    "22222222-2222-2222-2222-222222222222",
		Email: "jane@test.cd",
		Role:  auth.RoleLearner,
		Name:  "Jane",
	}
	DemoAdmin = auth.Identity{
		ID:     "demo-admin-0001",
		Email:  "admin@demo.avocop.io",
		Role:   auth.RoleAdmin,
		Name:   "Demo Admin",
		IsDemo: true,
	}
)

// CtxWith returns a context carrying the given identity.
func CtxWith(ident auth.Identity) context.Context {
	return auth.ContextWithIdentity(context.Background(), ident)
}

// Provider is an auth.IdentityProvider that only reads the context.
type Provider struct{}

func (Provider) Current(ctx context.Context) (auth.Identity, error) {
	if ident, ok := auth.IdentityFromContext(ctx); ok {
		return ident, nil
	}
	return auth.Identity{}, core.ErrNotLoggedIn
}

// Logger is a no-op core.Logger.
type Logger struct{}

func (Logger) Debug(string, ...interface{}) {}
func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}
func (Logger) Fatal(string, ...interface{}) {}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
