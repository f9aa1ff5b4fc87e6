package models

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{raw: "USER", want: RoleUser},
		{raw: "player", want: RoleUser},
		{raw: " Manager ", want: RoleManager},
		{raw: "admin", want: RoleAdmin},
		{raw: "owner", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseRole(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseRole(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestRolePrivileges(t *testing.T) {
	if RoleUser.CanManage() {
		t.Fatalf("user should not manage")
	}
	if !RoleManager.CanManage() || RoleManager.IsAdmin() {
		t.Fatalf("manager privileges wrong")
	}
	if !RoleAdmin.CanManage() || !RoleAdmin.IsAdmin() {
		t.Fatalf("admin privileges wrong")
	}
}
