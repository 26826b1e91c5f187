package entity

import (
	"strings"
	"testing"
)

var testHash = strings.Repeat("h", 60)

func mustNewUser(t *testing.T, username string, role UserRole) *User {
	t.Helper()
	u, err := NewUser(username, username+"@example.com", "Taro", "タロウ", "Yamada", "ヤマダ", testHash, role)
	if err != nil {
		t.Fatalf("NewUser(%q): %v", username, err)
	}
	return u
}

func TestNewUserDefaults(t *testing.T) {
	u := mustNewUser(t, "taro", RoleUser)

	if u.ID() == "" {
		t.Fatal("expected a generated id")
	}
	if u.PasswordInitialized() {
		t.Fatal("new user must start with an uninitialized password")
	}
	if u.Deleted() {
		t.Fatal("new user must not be deleted")
	}
	if u.Role() != RoleUser {
		t.Fatalf("role = %v", u.Role())
	}
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		hash     string
		wantErr  bool
	}{
		{"ok", "taro", testHash, false},
		{"max username", strings.Repeat("u", 50), testHash, false},
		{"empty username", "", testHash, true},
		{"username too long", strings.Repeat("u", 51), testHash, true},
		{"empty hash", "taro", "", true},
		{"short hash", "taro", strings.Repeat("h", 59), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.username, "", "", "", "", "", tt.hash, RoleUser)
			if tt.wantErr {
				if !IsKind(err, KindInvalidArgument) {
					t.Fatalf("expected invalid argument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestInitializePasswordOnce(t *testing.T) {
	u := mustNewUser(t, "taro", RoleUser)
	newHash := strings.Repeat("n", 60)

	if err := u.InitializePassword(newHash); err != nil {
		t.Fatalf("first initialization failed: %v", err)
	}
	if !u.PasswordInitialized() {
		t.Fatal("expected passwordInitialized=true")
	}
	if u.PasswordHash() != newHash {
		t.Fatal("hash was not replaced")
	}
	if err := u.InitializePassword(strings.Repeat("x", 60)); !IsKind(err, KindInvalidState) {
		t.Fatalf("second initialization must fail with invalid state, got %v", err)
	}
}

func TestChangePasswordMarksInitialized(t *testing.T) {
	u := mustNewUser(t, "taro", RoleUser)
	newHash := strings.Repeat("c", 60)

	if err := u.ChangePassword(newHash); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if !u.PasswordInitialized() {
		t.Fatal("expected passwordInitialized=true after change")
	}
	if u.PasswordHash() != newHash {
		t.Fatal("hash was not replaced")
	}
}

func TestUpdateProfile(t *testing.T) {
	u := mustNewUser(t, "taro", RoleUser)

	if err := u.UpdateProfile("Hanako", "ハナコ", "Suzuki", "スズキ"); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if u.FirstName() != "Hanako" || u.LastNameRuby() != "スズキ" {
		t.Fatalf("profile not updated: %s %s", u.FirstName(), u.LastNameRuby())
	}
	if err := u.UpdateProfile(strings.Repeat("n", 51), "", "", ""); !IsKind(err, KindInvalidArgument) {
		t.Fatalf("overlong name must fail, got %v", err)
	}
}

func TestUserDeleteIsTerminal(t *testing.T) {
	u := mustNewUser(t, "taro", RoleUser)
	if err := u.Delete(); err != nil {
		t.Fatalf("delete: %v", err)
	}

	mutations := []struct {
		name string
		call func() error
	}{
		{"UpdateProfile", func() error { return u.UpdateProfile("a", "", "", "") }},
		{"InitializePassword", func() error { return u.InitializePassword(testHash) }},
		{"ChangePassword", func() error { return u.ChangePassword(testHash) }},
		{"ChangeRole", func() error { return u.ChangeRole(RoleManager) }},
		{"Delete", u.Delete},
	}
	for _, m := range mutations {
		if err := m.call(); !IsKind(err, KindInvalidState) {
			t.Fatalf("%s after delete must fail with invalid state, got %v", m.name, err)
		}
	}
}

func TestChangeRole(t *testing.T) {
	u := mustNewUser(t, "taro", RoleUser)

	if err := u.ChangeRole(RoleManager); err != nil {
		t.Fatalf("change role: %v", err)
	}
	if !u.IsManager() {
		t.Fatal("expected manager privilege")
	}
	if u.IsAdmin() {
		t.Fatal("manager must not have admin privilege")
	}
	if err := u.ChangeRole(UserRole(9)); !IsKind(err, KindInvalidArgument) {
		t.Fatalf("unknown role must fail, got %v", err)
	}
}

func TestReconstructUserPreservesState(t *testing.T) {
	u := mustNewUser(t, "taro", RoleAdmin)
	if err := u.InitializePassword(strings.Repeat("p", 60)); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	copy, err := ReconstructUser(u.ID(), u.Username(), u.Email(), u.FirstName(), u.FirstNameRuby(),
		u.LastName(), u.LastNameRuby(), u.PasswordHash(), u.Role(), u.PasswordInitialized(),
		u.CreatedAt(), u.UpdatedAt(), u.Deleted())
	if err != nil {
		t.Fatalf("ReconstructUser: %v", err)
	}
	if copy.ID() != u.ID() {
		t.Fatal("id must be preserved")
	}
	if !copy.PasswordInitialized() {
		t.Fatal("passwordInitialized must be preserved")
	}
	if !copy.IsAdmin() {
		t.Fatal("role must be preserved")
	}
}
