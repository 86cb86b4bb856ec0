package main

import (
	"bytes"
	"testing"

	"github.com/ojtrack/ojtrack/core/user"
	"github.com/ojtrack/ojtrack/tests"
)

var fix *testutil.Fixture

func setup(t *testing.T) *commandLine {
	fix = testutil.NewFixture(t)
	return &commandLine{usrSvc: fix.UserSvc}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_bootstrap(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "bootstrap"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	usr, err := fix.UserSvc.GetByID(user.DefaultAdminID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if usr.Role != user.RoleAdmin {
		t.Errorf("bootstrap admin = %+v", usr)
	}

	// a second run must not duplicate the admin
	if err := cli.run([]string{"admin", "bootstrap"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	users, err := fix.UserSvc.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("got %d users after double bootstrap; want 1", len(users))
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "name but no email", args: []string{"adduser", "-name", "Awe"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-name", "Awe", "-email", "awe@test.cd"}, wantErr: errHelp},
		{
			name:  "bad role",
			args:  []string{"adduser", "-name", "Awe", "-email", "awe@test.cd", "-role", "lol"},
			extra: extra{pwd: "s3cr3t!pwd"}, wantErrStr: "role",
		},
		{
			name:  "defaults to admin",
			args:  []string{"adduser", "-name", "Awe", "-email", "awe@test.cd"},
			extra: extra{pwd: "s3cr3t!pwd"},
		},
		{
			name:  "supervisor",
			args:  []string{"adduser", "-name", "King", "-email", "king@test.cd", "-role", user.RoleSupervisor},
			extra: extra{pwd: "s3cr3t!pwd"},
		},
		{
			name:  "duplicate email",
			args:  []string{"adduser", "-name", "Awe 2", "-email", "awe@test.cd"},
			extra: extra{pwd: "s3cr3t!pwd"}, wantErrStr: "email",
		},
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
				if tt.wantErr != nil || tt.wantErrStr != "" {
					t.Fatalf("cli.run() succeeded; wantErr %v%s", tt.wantErr, tt.wantErrStr)
				}
				return
			}
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			} else if tt.wantErrStr != "" {
				if !bytes.Contains([]byte(err.Error()), []byte(tt.wantErrStr)) {
					t.Errorf("cli.run() error = %v, want mention of %q", err, tt.wantErrStr)
				}
			} else {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}

	usr, err := fix.UserSvc.GetByEmail("awe@test.cd")
	if err != nil {
		t.Fatalf("GetByEmail() failed: %v", err)
	}
	if usr.Role != user.RoleAdmin {
		t.Errorf("adduser role = %q; want %q", usr.Role, user.RoleAdmin)
	}
	if _, err := fix.UserSvc.Authenticate("awe@test.cd", "s3cr3t!pwd"); err != nil {
		t.Errorf("Authenticate() failed: %v", err)
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)
	usr := testutil.CreateUser(t, fix.UserRepo, "Awe", "awe@test.cd", user.RoleAdmin, "mdr-lol-123")

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", usr.Email}, extra: extra{pwd: "lol"}},
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
				refreshed, err := fix.UserSvc.GetByID(usr.ID)
				if err != nil {
					t.Fatalf("GetByID() failed: %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
