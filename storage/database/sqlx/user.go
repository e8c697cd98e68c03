package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Reema362/learn-spark-lms-sub001/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...user.User) error {
	q := `SELECT COUNT(*) FROM "user" WHERE email = $1`
	args := []interface{}{email}
	if len(excluded) > 0 {
		ids := make([]string, 0, len(excluded))
		for _, usr := range excluded {
			ids = append(ids, usr.ID)
		}
		var err error
		q, args, err = sqlx.In(`SELECT COUNT(*) FROM "user" WHERE email = ? AND id NOT IN (?)`, email, ids)
		if err != nil {
			return err
		}
		q = repo.db.Rebind(q)
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, q, args...); err != nil {
		return err
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := `
INSERT INTO "user" (id, email, name, role, is_active, password_hash, created_at, updated_at, last_login)
VALUES (:id, :email, :name, :role, :is_active, :password_hash, :created_at, :updated_at, :last_login)`
	usr.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	users := []user.User{}
	err := repo.db.SelectContext(ctx, &users, `SELECT * FROM "user" ORDER BY created_at DESC`)
	return users, err
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT * FROM "user" WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	return usr, err
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT * FROM "user" WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	return usr, err
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := `
UPDATE "user"
SET email = :email, name = :name, role = :role, is_active = :is_active,
    password_hash = :password_hash, updated_at = :updated_at, last_login = :last_login
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, usr)
	if err != nil {
		return user.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	_, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...)
	return err
}

type roleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) user.RoleRepository {
	return &roleRepository{db: db}
}

func (repo *roleRepository) CreateRole(ctx context.Context, role user.Role) (user.Role, error) {
	q := `
INSERT INTO role (id, name, description, created_at)
VALUES (:id, :name, :description, :created_at)`
	role.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, role); err != nil {
		return user.Role{}, err
	}
	return role, nil
}

func (repo *roleRepository) QueryAllRoles(ctx context.Context) ([]user.Role, error) {
	roles := []user.Role{}
	err := repo.db.SelectContext(ctx, &roles, `SELECT * FROM role ORDER BY name ASC`)
	return roles, err
}

func (repo *roleRepository) GetRoleByID(ctx context.Context, id string) (user.Role, error) {
	var role user.Role
	err := repo.db.GetContext(ctx, &role, `SELECT * FROM role WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return user.Role{}, user.ErrRoleNotFound
	}
	return role, err
}

func (repo *roleRepository) DeleteRoleByID(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM role WHERE id = $1`, id)
	return err
}

func (repo *roleRepository) AssignRole(ctx context.Context, asgn user.RoleAssignment) (user.RoleAssignment, error) {
	q := `
INSERT INTO role_assignment (id, user_id, role_id, assigned_by, assigned_at)
VALUES (:id, :user_id, :role_id, :assigned_by, :assigned_at)`
	asgn.ID = newID()
	if _, err := repo.db.NamedExecContext(ctx, q, asgn); err != nil {
		return user.RoleAssignment{}, err
	}
	return asgn, nil
}

func (repo *roleRepository) QueryRoleAssignments(ctx context.Context, userID string) ([]user.RoleAssignment, error) {
	asgns := []user.RoleAssignment{}
	err := repo.db.SelectContext(ctx, &asgns, `SELECT * FROM role_assignment WHERE user_id = $1 ORDER BY assigned_at DESC`, userID)
	return asgns, err
}
