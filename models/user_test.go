package models

import "testing"

func TestRoleNameRoundTrip(t *testing.T) {
	for _, id := range []int{RoleSuperadmin, RoleAdmin, RoleUser} {
		if got := RoleIDFromName(RoleName(id)); got != id {
			t.Fatalf("role %d round-tripped to %d", id, got)
		}
	}
}

func TestRoleIDFromNameDefaultsToUser(t *testing.T) {
	if got := RoleIDFromName("Janitor"); got != RoleUser {
		t.Fatalf("unknown role name: got %d", got)
	}
	if got := RoleIDFromName(""); got != RoleUser {
		t.Fatalf("empty role name: got %d", got)
	}
}

func TestIsStaff(t *testing.T) {
	if !IsStaff(RoleSuperadmin) || !IsStaff(RoleAdmin) {
		t.Fatal("superadmin and admin are staff")
	}
	if IsStaff(RoleUser) || IsStaff(0) {
		t.Fatal("regular users are not staff")
	}
}
