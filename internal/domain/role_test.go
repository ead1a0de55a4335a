package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"MASTER", RoleMaster},
		{"owner", RoleOwner},
		{" client ", RoleClient},
		{"", RoleClient},
		{"SOMETHING_ELSE", RoleClient},
	}
	for _, tc := range cases {
		if got := ParseRole(tc.in); got != tc.want {
			t.Fatalf("ParseRole(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRoleAtLeast(t *testing.T) {
	if !RoleMaster.AtLeast(RoleOwner) {
		t.Fatalf("MASTER should outrank OWNER")
	}
	if !RoleMaster.AtLeast(RoleMaster) {
		t.Fatalf("AtLeast must be reflexive")
	}
	if RoleClient.AtLeast(RoleOwner) {
		t.Fatalf("CLIENT must not outrank OWNER")
	}
	if Role("UNKNOWN").AtLeast(RoleClient) {
		t.Fatalf("unknown roles carry no privileges")
	}
	if RoleClient.AtLeast(Role("UNKNOWN")) {
		t.Fatalf("comparison against unknown roles must deny")
	}
}

func TestRoleAuthority(t *testing.T) {
	if got := RoleOwner.Authority(); got != "ROLE_OWNER" {
		t.Fatalf("Authority() = %q, want ROLE_OWNER", got)
	}
}
