package entity

import "testing"

func TestRoleFromCode(t *testing.T) {
	tests := []struct {
		code    int
		want    UserRole
		wantErr bool
	}{
		{0, RoleAdmin, false},
		{1, RoleManager, false},
		{2, RoleUser, false},
		{-1, 0, true},
		{3, 0, true},
		{42, 0, true},
	}
	for _, tt := range tests {
		got, err := RoleFromCode(tt.code)
		if tt.wantErr {
			if !IsKind(err, KindInvalidArgument) {
				t.Errorf("RoleFromCode(%d): expected invalid argument, got %v", tt.code, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("RoleFromCode(%d): %v", tt.code, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RoleFromCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestRoleCodeRoundTrip(t *testing.T) {
	for _, r := range []UserRole{RoleAdmin, RoleManager, RoleUser} {
		got, err := RoleFromCode(r.Code())
		if err != nil {
			t.Fatalf("RoleFromCode(%d): %v", r.Code(), err)
		}
		if got != r {
			t.Fatalf("round trip %v -> %v", r, got)
		}
	}
}

func TestRoleString(t *testing.T) {
	tests := []struct {
		role UserRole
		want string
	}{
		{RoleAdmin, "admin"},
		{RoleManager, "manager"},
		{RoleUser, "user"},
		{UserRole(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.role.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.role.Code(), got, tt.want)
		}
	}
}

func TestRolePrivileges(t *testing.T) {
	tests := []struct {
		role        UserRole
		wantAdmin   bool
		wantManager bool
	}{
		{RoleAdmin, true, true},
		{RoleManager, false, true},
		{RoleUser, false, false},
	}
	for _, tt := range tests {
		if got := tt.role.HasAdminPrivilege(); got != tt.wantAdmin {
			t.Errorf("%v.HasAdminPrivilege() = %v, want %v", tt.role, got, tt.wantAdmin)
		}
		if got := tt.role.HasManagerPrivilege(); got != tt.wantManager {
			t.Errorf("%v.HasManagerPrivilege() = %v, want %v", tt.role, got, tt.wantManager)
		}
	}
}
