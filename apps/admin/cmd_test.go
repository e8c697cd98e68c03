package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/Reema362/learn-spark-lms-sub001/core"
	"github.com/Reema362/learn-spark-lms-sub001/core/auth"
	"github.com/Reema362/learn-spark-lms-sub001/core/user"
	inmemdb "github.com/Reema362/learn-spark-lms-sub001/storage/inmem"
	testutil "github.com/Reema362/learn-spark-lms-sub001/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags)

	usrRepo = inmemdb.NewUserRepository()
	return &commandLine{
		conf: &core.Config{
			Bootstrap: core.BootstrapConfig{
				Enabled:      true,
				AdminEmails:  []string{"boss@test.cd"},
				TempPassword: "TempPass123",
			},
		},
		db:      &sqlx.DB{},
		usrRepo: usrRepo,
		catRepo: inmemdb.NewCategoryRepository(),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "down", "redo", "reset", "status", "version": // pass
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", "Mdr12345", auth.RoleLearner, true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "Lol12345"}, wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", usr.Email}, extra: extra{pwd: "Lmao1234"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUserByID(context.Background(), usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("Sekret123"), nil }

	if err := cli.run([]string{"admin", "adduser", "-email", "New@Test.cd", "-admin"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}

	usr, err := usrRepo.GetUserByEmail(context.Background(), "new@test.cd")
	if err != nil {
		t.Fatalf("GetUserByEmail() failed, %v", err)
	}
	if usr.Role != auth.RoleAdmin {
		t.Errorf("Role = %s, expected admin", usr.Role)
	}
	if !usr.IsActive {
		t.Error("expected account to be active")
	}
	if err = usr.CheckPassword("Sekret123"); err != nil {
		t.Error("password not set")
	}

	// running again updates in place
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("Sekret456"), nil }
	if err = cli.run([]string{"admin", "adduser", "-email", "new@test.cd", "-name", "Newt"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	usr, err = usrRepo.GetUserByEmail(context.Background(), "new@test.cd")
	if err != nil {
		t.Fatalf("GetUserByEmail() failed, %v", err)
	}
	if usr.Name != "Newt" {
		t.Errorf("Name = %s, expected Newt", usr.Name)
	}
	if usr.Role != auth.RoleLearner {
		t.Errorf("Role = %s, expected learner", usr.Role)
	}
}

func Test_commandLine_bootstrap(t *testing.T) {
	cli := setup(t)

	if err := cli.bootstrap(); err != nil {
		t.Fatalf("bootstrap() failed: %v", err)
	}

	usr, err := usrRepo.GetUserByEmail(context.Background(), "boss@test.cd")
	if err != nil {
		t.Fatalf("GetUserByEmail() failed, %v", err)
	}
	if usr.Role != auth.RoleAdmin {
		t.Errorf("Role = %s, expected admin", usr.Role)
	}
	if err = usr.CheckPassword("TempPass123"); err != nil {
		t.Error("temporary password not set")
	}

	cats, err := cli.catRepo.QueryAllCategories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) == 0 {
		t.Error("expected seeded categories")
	}

	// run twice: nothing is duplicated
	if err = cli.bootstrap(); err != nil {
		t.Fatalf("bootstrap() failed on rerun: %v", err)
	}
	catsAfter, err := cli.catRepo.QueryAllCategories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(catsAfter) != len(cats) {
		t.Errorf("expected %d categories after rerun, got %d", len(cats), len(catsAfter))
	}
	users, err := usrRepo.QueryAllUsers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user after rerun, got %d", len(users))
	}
}
