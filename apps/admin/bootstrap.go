package main

import (
	"context"
	"strings"
	"time"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
	"github.com/Reema362/learn-spark-lms-sub001/core/course"
	"github.com/Reema362/learn-spark-lms-sub001/core/user"
)

// bootstrap provisions the allow-listed admin accounts with the configured
// temporary password and seeds the sample course categories. Both steps are
// idempotent: existing accounts and category names are left alone.
func (cli *commandLine) bootstrap() error {
	ctx := context.Background()

	for _, email := range cli.conf.Bootstrap.AdminEmails {
		email = core.CleanString(email, true /* lower */)
		if email == "" {
			continue
		}
		if _, err := cli.usrRepo.GetUserByEmail(ctx, email); err == nil {
			continue
		} else if err != user.ErrNotFound {
			return err
		}

		now := time.Now().UTC()
		usr := user.User{
			Email:     email,
			Name:      email,
			Role:      auth.RoleAdmin,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := usr.SetPassword(cli.conf.Bootstrap.TempPassword); err != nil {
			return err
		}
		if _, err := cli.usrRepo.CreateUser(ctx, usr); err != nil {
			return err
		}
		logger.Printf("provisioned admin %s (temporary password, change on first login)", email)
	}

	return cli.seedCategories(ctx)
}

func (cli *commandLine) seedCategories(ctx context.Context) error {
	existing, err := cli.catRepo.QueryAllCategories(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]struct{}, len(existing))
	for _, cat := range existing {
		names[strings.ToLower(strings.TrimSpace(cat.Name))] = struct{}{}
	}

	for _, cat := range course.SampleCategories() {
		if _, ok := names[strings.ToLower(strings.TrimSpace(cat.Name))]; ok {
			continue
		}
		cat.CreatedAt = time.Now().UTC()
		if _, err := cli.catRepo.CreateCategory(ctx, cat); err != nil {
			return err
		}
		logger.Printf("seeded category %s", cat.Name)
	}
	return nil
}
