package services

import (
	"errors"
	"testing"
)

func TestCreateUserDuplicateUsername(t *testing.T) {
	userSvc, _, _ := newTestServices(t)

	first, err := userSvc.CreateUser("alice", "pw1")
	if err != nil {
		t.Fatalf("First signup failed: %v", err)
	}
	if first.ID == "" {
		t.Fatal("Expected a system-assigned ID")
	}
	if first.RewardPoints != 0 {
		t.Fatalf("New user reward points = %d, want 0", first.RewardPoints)
	}
	if first.PasswordHash != "" {
		t.Fatal("CreateUser must not return the password hash")
	}

	_, err = userSvc.CreateUser("alice", "other-pw")
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("Second signup error = %v, want ErrDuplicateUsername", err)
	}
}

func TestAuthenticateUser(t *testing.T) {
	userSvc, _, _ := newTestServices(t)

	created, err := userSvc.CreateUser("alice", "pw1")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"correct credentials", "alice", "pw1", nil},
		{"wrong password", "alice", "pw2", ErrInvalidCredentials},
		{"unknown username", "bob", "pw1", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := userSvc.AuthenticateUser(tt.username, tt.password)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("AuthenticateUser() error = %v", err)
				}
				if user.ID != created.ID {
					t.Fatalf("Authenticated ID = %q, want %q", user.ID, created.ID)
				}
				if user.PasswordHash != "" {
					t.Fatal("AuthenticateUser must not return the password hash")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AuthenticateUser() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// A wrong password and a nonexistent user must be indistinguishable.
func TestAuthenticateUserUniformError(t *testing.T) {
	userSvc, _, _ := newTestServices(t)

	if _, err := userSvc.CreateUser("alice", "pw1"); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	_, wrongPw := userSvc.AuthenticateUser("alice", "nope")
	_, unknown := userSvc.AuthenticateUser("nobody", "nope")
	if wrongPw.Error() != unknown.Error() {
		t.Fatalf("Errors differ: %q vs %q", wrongPw, unknown)
	}
}

func TestListUsers(t *testing.T) {
	userSvc, _, _ := newTestServices(t)

	for _, name := range []string{"alice", "bob"} {
		if _, err := userSvc.CreateUser(name, "pw"); err != nil {
			t.Fatalf("Signup %s failed: %v", name, err)
		}
	}

	users, err := userSvc.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("ListUsers() returned %d users, want 2", len(users))
	}
}
