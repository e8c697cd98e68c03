package database

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
	"github.com/Reema362/learn-spark-lms-sub001/core/user"
)

// Authenticator implements remote sign-in against the user table.
type Authenticator struct {
	users user.Repository
}

var _ auth.RemoteAuthenticator = (*Authenticator)(nil)

func NewAuthenticator(users user.Repository) *Authenticator {
	return &Authenticator{users: users}
}

// SignIn returns core.ErrInvalidCredentials for an unknown email, a wrong
// password or a deactivated account; callers cannot tell these apart.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (auth.Identity, error) {
	usr, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return auth.Identity{}, core.ErrInvalidCredentials
		}
		return auth.Identity{}, errors.Wrap(err, "looking up user")
	}
	if err = usr.CheckPassword(password); err != nil {
		return auth.Identity{}, core.ErrInvalidCredentials
	}
	if !usr.IsActive {
		return auth.Identity{}, core.ErrInvalidCredentials
	}

	usr.LastLogin = time.Now().UTC()
	if _, err = a.users.UpdateUser(ctx, usr); err != nil {
		// login still succeeds, the timestamp is advisory
		return usr.Identity(), nil
	}
	return usr.Identity(), nil
}

func (a *Authenticator) SignUp(ctx context.Context, acct auth.NewAccount) (auth.Identity, error) {
	if err := a.users.CheckEmailUniqueness(ctx, acct.Email); err != nil {
		return auth.Identity{}, err
	}

	now := time.Now().UTC()
	usr := user.User{
		Email:     acct.Email,
		Name:      acct.Name,
		Role:      acct.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(acct.Password); err != nil {
		return auth.Identity{}, errors.Wrap(err, "hashing password")
	}

	usr, err := a.users.CreateUser(ctx, usr)
	if err != nil {
		return auth.Identity{}, errors.Wrap(err, "creating account")
	}
	return usr.Identity(), nil
}

// SignOut is a no-op: the remote store keeps no server-side session state,
// clearing the local record is enough.
func (a *Authenticator) SignOut(context.Context) error { return nil }
