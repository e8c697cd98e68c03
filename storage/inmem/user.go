package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/Reema362/learn-spark-lms-sub001/core/user"
)

type userRepository struct {
	mutex sync.RWMutex
	users []user.User
}

func NewUserRepository() user.Repository {
	return &userRepository{}
}

func (repo *userRepository) CheckEmailUniqueness(_ context.Context, email string, excluded ...user.User) error {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, usr := range repo.users {
		if usr.Email != email {
			continue
		}
		if !isExcluded(usr, excluded) {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	usr.ID = newID()
	repo.users = append(repo.users, usr)
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(_ context.Context) ([]user.User, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]user.User, len(repo.users))
	copy(out, repo.users)
	// newest first
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (repo *userRepository) GetUserByID(_ context.Context, id string) (user.User, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, usr := range repo.users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, usr := range repo.users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for i := range repo.users {
		if repo.users[i].ID == usr.ID {
			repo.users[i] = usr
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) DeleteUsersByID(_ context.Context, ids ...string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := repo.users[:0]
	for _, usr := range repo.users {
		if _, ok := drop[usr.ID]; !ok {
			out = append(out, usr)
		}
	}
	repo.users = out
	return nil
}

func isExcluded(usr user.User, excluded []user.User) bool {
	for _, ex := range excluded {
		if ex.ID == usr.ID {
			return true
		}
	}
	return false
}

type roleRepository struct {
	mutex       sync.RWMutex
	roles       []user.Role
	assignments []user.RoleAssignment
}

func NewRoleRepository() user.RoleRepository {
	return &roleRepository{}
}

func (repo *roleRepository) CreateRole(_ context.Context, role user.Role) (user.Role, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	role.ID = newID()
	repo.roles = append(repo.roles, role)
	return role, nil
}

func (repo *roleRepository) QueryAllRoles(_ context.Context) ([]user.Role, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]user.Role, len(repo.roles))
	copy(out, repo.roles)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (repo *roleRepository) GetRoleByID(_ context.Context, id string) (user.Role, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, role := range repo.roles {
		if role.ID == id {
			return role, nil
		}
	}
	return user.Role{}, user.ErrRoleNotFound
}

func (repo *roleRepository) DeleteRoleByID(_ context.Context, id string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	out := repo.roles[:0]
	for _, role := range repo.roles {
		if role.ID != id {
			out = append(out, role)
		}
	}
	repo.roles = out
	return nil
}

func (repo *roleRepository) AssignRole(_ context.Context, asgn user.RoleAssignment) (user.RoleAssignment, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	asgn.ID = newID()
	repo.assignments = append(repo.assignments, asgn)
	return asgn, nil
}

func (repo *roleRepository) QueryRoleAssignments(_ context.Context, userID string) ([]user.RoleAssignment, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	out := make([]user.RoleAssignment, 0, len(repo.assignments))
	for _, asgn := range repo.assignments {
		if asgn.UserID == userID {
			out = append(out, asgn)
		}
	}
	return out, nil
}
