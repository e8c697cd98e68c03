package main

import (
	"context"
	"time"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
	"github.com/Reema362/learn-spark-lms-sub001/core/user"
)

// addUser updates or creates an account.
func (cli *commandLine) addUser(email, name, pwd string, isAdmin bool) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	name = core.CleanString(name)
	if name == "" {
		name = email
	}

	now := time.Now().UTC()
	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Email:     email,
			CreatedAt: now,
		}
	}
	usr.Name = name
	usr.Role = auth.RoleLearner
	if isAdmin {
		usr.Role = auth.RoleAdmin
	}
	usr.IsActive = true
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}
