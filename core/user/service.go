package user

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrEmailExists  = errors.New("a user with this email already exists")
	ErrRoleNotFound = errors.New("role not found")
)

const entityName = "user"

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excluded ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUsersByID(ctx context.Context, ids ...string) error
	}

	RoleRepository interface {
		CreateRole(ctx context.Context, role Role) (Role, error)
		// QueryAllRoles returns roles ordered by name ascending.
		QueryAllRoles(ctx context.Context) ([]Role, error)
		GetRoleByID(ctx context.Context, id string) (Role, error)
		DeleteRoleByID(ctx context.Context, id string) error
		AssignRole(ctx context.Context, asgn RoleAssignment) (RoleAssignment, error)
		QueryRoleAssignments(ctx context.Context, userID string) ([]RoleAssignment, error)
	}

	// Service exposes user and role management over the remote store. IAM has
	// no demo persistence; writes are admin-only. User mutations invalidate
	// both the "users" and "analytics" cache keys.
	Service struct {
		repo  Repository
		roles RoleRepository
		idp   auth.IdentityProvider
		cache core.Invalidator
	}
)

func NewService(repo Repository, roles RoleRepository, idp auth.IdentityProvider, cache core.Invalidator) *Service {
	return &Service{repo: repo, roles: roles, idp: idp, cache: cache}
}

func (svc *Service) Query(ctx context.Context) ([]User, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return []User{}, nil
	}
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return User{}, ErrNotFound
	}
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return User{}, err
	}
	if err := svc.checkUniqueness(ctx, nu.Email); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		Email:     nu.Email,
		Name:      nu.Name,
		Role:      nu.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, core.NewRemoteStoreError("create", entityName, err)
	}
	svc.cache.Invalidate(core.CacheUsers, core.CacheAnalytics)
	return usr, nil
}

func (svc *Service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return User{}, err
	}

	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, core.NewRemoteStoreError("update", entityName, err)
	}

	if uu.Email != "" && uu.Email != usr.Email {
		if err := svc.checkUniqueness(ctx, uu.Email, usr); err != nil {
			return User{}, err
		}
		usr.Email = uu.Email
	}
	if uu.Name != "" {
		usr.Name = uu.Name
	}
	if uu.Role != "" {
		usr.Role = uu.Role
	}
	if uu.IsActive != nil {
		usr.IsActive = *uu.IsActive
	}
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	usr.UpdatedAt = time.Now().UTC()

	usr, err = svc.repo.UpdateUser(ctx, usr)
	if err != nil {
		return User{}, core.NewRemoteStoreError("update", entityName, err)
	}
	svc.cache.Invalidate(core.CacheUsers, core.CacheAnalytics)
	return usr, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	ident, err := auth.RequireAdmin(ctx, svc.idp)
	if err != nil {
		return err
	}
	// Say No to Suicide! callers cannot delete themselves
	for _, id := range ids {
		if id == ident.ID {
			return &core.PermissionDeniedError{Reason: "cannot delete own account"}
		}
	}
	if err := svc.repo.DeleteUsersByID(ctx, ids...); err != nil {
		return core.NewRemoteStoreError("delete", entityName, err)
	}
	svc.cache.Invalidate(core.CacheUsers, core.CacheAnalytics)
	return nil
}

func (svc *Service) checkUniqueness(ctx context.Context, email string, excluded ...User) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, excluded...); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Roles

func (svc *Service) QueryRoles(ctx context.Context) ([]Role, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return []Role{}, nil
	}
	return svc.roles.QueryAllRoles(ctx)
}

func (svc *Service) CreateRole(ctx context.Context, nr NewRole) (Role, error) {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return Role{}, err
	}
	role, err := svc.roles.CreateRole(ctx, Role{
		Name:        nr.Name,
		Description: nr.Description,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return Role{}, core.NewRemoteStoreError("create", "role", err)
	}
	svc.cache.Invalidate(core.CacheRoles)
	return role, nil
}

func (svc *Service) DeleteRole(ctx context.Context, id string) error {
	if _, err := auth.RequireAdmin(ctx, svc.idp); err != nil {
		return err
	}
	if err := svc.roles.DeleteRoleByID(ctx, id); err != nil {
		return core.NewRemoteStoreError("delete", "role", err)
	}
	svc.cache.Invalidate(core.CacheRoles)
	return nil
}

func (svc *Service) AssignRole(ctx context.Context, na NewRoleAssignment) (RoleAssignment, error) {
	ident, err := auth.RequireAdmin(ctx, svc.idp)
	if err != nil {
		return RoleAssignment{}, err
	}
	if _, err := svc.roles.GetRoleByID(ctx, na.RoleID); err != nil {
		return RoleAssignment{}, ErrRoleNotFound
	}
	asgn, err := svc.roles.AssignRole(ctx, RoleAssignment{
		UserID:     na.UserID,
		RoleID:     na.RoleID,
		AssignedBy: ident.ID,
		AssignedAt: time.Now().UTC(),
	})
	if err != nil {
		return RoleAssignment{}, core.NewRemoteStoreError("create", "role assignment", err)
	}
	svc.cache.Invalidate(core.CacheRoles, core.CacheUsers)
	return asgn, nil
}

func (svc *Service) QueryRoleAssignments(ctx context.Context, userID string) ([]RoleAssignment, error) {
	ident, err := svc.idp.Current(ctx)
	if err != nil || ident.IsDemo {
		return []RoleAssignment{}, nil
	}
	return svc.roles.QueryRoleAssignments(ctx, userID)
}
