package user_test

import (
	"testing"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/user"
	"github.com/ojtrack/ojtrack/tests"
)

func Test_Service_bootstrapsDefaultAdmin(t *testing.T) {
	fix := testutil.NewFixture(t)

	users, err := fix.UserSvc.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("All() on empty store returned %d users; want 1", len(users))
	}
	admin := users[0]
	if admin.ID != user.DefaultAdminID || admin.Email != user.DefaultAdminEmail || admin.Role != user.RoleAdmin {
		t.Errorf("bootstrap admin = %+v; want the default admin", admin)
	}

	// a second pass must not create a second admin
	users, err = fix.UserSvc.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("All() after bootstrap returned %d users; want 1", len(users))
	}
}

func Test_Service_Authenticate(t *testing.T) {
	fix := testutil.NewFixture(t)
	testutil.CreateUser(t, fix.UserRepo, "Awe", "awe@test.cd", user.RoleSupervisor, "s3cr3t!pwd")

	tests := []struct {
		name    string
		email   string
		pwd     string
		wantErr error
	}{
		{name: "ok", email: "awe@test.cd", pwd: "s3cr3t!pwd"},
		{name: "email is case-insensitive", email: "AWE@Test.CD", pwd: "s3cr3t!pwd"},
		{name: "wrong password", email: "awe@test.cd", pwd: "s3cr3t!pw", wantErr: user.ErrInvalidCredentials},
		{name: "password is case-sensitive", email: "awe@test.cd", pwd: "S3CR3T!PWD", wantErr: user.ErrInvalidCredentials},
		{name: "unknown email", email: "lol@test.cd", pwd: "s3cr3t!pwd", wantErr: user.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := fix.UserSvc.Authenticate(tt.email, tt.pwd)
			if err != tt.wantErr {
				t.Fatalf("Authenticate() error = %v; wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && usr.Email != "awe@test.cd" {
				t.Errorf("Authenticate() user = %+v; want awe@test.cd", usr)
			}
		})
	}
}

func Test_Service_Authenticate_bootstrapAdmin(t *testing.T) {
	fix := testutil.NewFixture(t)

	// an empty store must still accept the default admin credentials
	usr, err := fix.UserSvc.Authenticate(user.DefaultAdminEmail, "admin123")
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	if usr.ID != user.DefaultAdminID {
		t.Errorf("Authenticate() user ID = %s; want %s", usr.ID, user.DefaultAdminID)
	}
}

func Test_Service_CreateOrUpdateAccount(t *testing.T) {
	fix := testutil.NewFixture(t)

	acct := user.Account{
		ID:         "p1",
		Name:       "Super Visor",
		Email:      "SV@test.cd",
		Role:       user.RoleSupervisor,
		Identifier: "SV001",
	}

	usr, pwd, err := fix.UserSvc.CreateOrUpdateAccount(acct)
	if err != nil {
		t.Fatalf("CreateOrUpdateAccount() failed: %v", err)
	}
	if usr.Email != "sv@test.cd" {
		t.Errorf("stored email = %q; want canonical lowercase %q", usr.Email, "sv@test.cd")
	}
	if pwd != "supervisorsv001" {
		t.Errorf("generated password = %q; want %q", pwd, "supervisorsv001")
	}
	if usr.ID != "p1" || usr.Role != user.RoleSupervisor {
		t.Errorf("CreateOrUpdateAccount() user = %+v", usr)
	}
	if _, err := fix.UserSvc.Authenticate("sv@test.cd", pwd); err != nil {
		t.Errorf("Authenticate() with generated password failed: %v", err)
	}

	// a different account may not claim the same email, in any casing;
	// emails are normalized to lowercase on intake
	_, _, err = fix.UserSvc.CreateOrUpdateAccount(user.Account{
		ID: "p2", Name: "Other", Email: "SV@test.cd", Role: user.RoleStudent, Identifier: "ST001",
	})
	if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("CreateOrUpdateAccount() with duplicate email error = %v; want *core.ValidationError", err)
	}

	// updating an account to its own email is fine; the password survives
	acct.Name = "Renamed Visor"
	usr, pwd, err = fix.UserSvc.CreateOrUpdateAccount(acct)
	if err != nil {
		t.Fatalf("CreateOrUpdateAccount() update failed: %v", err)
	}
	if pwd != "" {
		t.Errorf("update returned a generated password %q; want none", pwd)
	}
	if usr.Name != "Renamed Visor" {
		t.Errorf("update did not apply; user = %+v", usr)
	}
	if _, err := fix.UserSvc.Authenticate("sv@test.cd", "supervisorsv001"); err != nil {
		t.Errorf("Authenticate() after update failed: %v", err)
	}
}

func Test_Service_ChangePassword(t *testing.T) {
	fix := testutil.NewFixture(t)
	usr := testutil.CreateUser(t, fix.UserRepo, "Awe", "awe@test.cd", user.RoleStudent, "oldpwd123!")

	tests := []struct {
		name    string
		data    user.ChangePassword
		wantErr bool
	}{
		{
			name:    "wrong old password",
			data:    user.ChangePassword{OldPassword: "lol", Password: "n3w-pa55word", PasswordConfirm: "n3w-pa55word"},
			wantErr: true,
		},
		{
			name:    "too short",
			data:    user.ChangePassword{OldPassword: "oldpwd123!", Password: "short", PasswordConfirm: "short"},
			wantErr: true,
		},
		{
			name:    "too common",
			data:    user.ChangePassword{OldPassword: "oldpwd123!", Password: "password", PasswordConfirm: "password"},
			wantErr: true,
		},
		{
			name: "ok",
			data: user.ChangePassword{OldPassword: "oldpwd123!", Password: "n3w-pa55word", PasswordConfirm: "n3w-pa55word"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fix.UserSvc.ChangePassword(usr.ID, tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ChangePassword() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := fix.UserSvc.Authenticate("awe@test.cd", "n3w-pa55word"); err != nil {
		t.Errorf("Authenticate() with new password failed: %v", err)
	}
	if _, err := fix.UserSvc.Authenticate("awe@test.cd", "oldpwd123!"); err != user.ErrInvalidCredentials {
		t.Errorf("Authenticate() with old password error = %v; want ErrInvalidCredentials", err)
	}
}

func Test_Service_ResetPassword(t *testing.T) {
	fix := testutil.NewFixture(t)
	testutil.CreateUser(t, fix.UserRepo, "Awe", "awe@test.cd", user.RoleStudent, "oldpwd123!")

	if err := fix.UserSvc.ResetPassword("lol@test.cd", "whatever"); err != user.ErrNotFound {
		t.Errorf("ResetPassword() unknown email error = %v; want ErrNotFound", err)
	}
	if err := fix.UserSvc.ResetPassword("awe@test.cd", "mdr"); err != nil {
		t.Fatalf("ResetPassword() failed: %v", err)
	}
	if _, err := fix.UserSvc.Authenticate("awe@test.cd", "mdr"); err != nil {
		t.Errorf("Authenticate() after reset failed: %v", err)
	}
}

func Test_Service_Delete(t *testing.T) {
	fix := testutil.NewFixture(t)
	usr1 := testutil.CreateUser(t, fix.UserRepo, "Awe", "awe@test.cd", user.RoleStudent, "")
	usr2 := testutil.CreateUser(t, fix.UserRepo, "King", "king@test.cd", user.RoleStudent, "")
	usr3 := testutil.CreateUser(t, fix.UserRepo, "Hero", "hero@test.cd", user.RoleStudent, "")

	if err := fix.UserSvc.Delete(usr1.ID, usr3.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	users, err := fix.UserSvc.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != usr2.ID {
		t.Errorf("All() after delete = %+v; want only %s", users, usr2.ID)
	}
}
