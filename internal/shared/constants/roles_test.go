package constants

import "testing"

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{"USER", "ADMIN"} {
		if !IsValidRole(role) {
			t.Errorf("expected %q to be a valid role", role)
		}
	}
	for _, role := range []string{"", "user", "SUPERADMIN"} {
		if IsValidRole(role) {
			t.Errorf("expected %q to be rejected", role)
		}
	}
}
