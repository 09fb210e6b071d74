package gate_test

import (
	"errors"
	"testing"

	"github.com/diewo77/lead-hunter/gate"
)

func subject(role gate.Role, profile gate.Profile) gate.StaticSubject {
	return gate.StaticSubject{ID: "u-1", Role: role, Profile: profile}
}

func TestCan_RoleOverride(t *testing.T) {
	for _, role := range []gate.Role{gate.RoleSuperAdmin, gate.RoleAdmin} {
		// No group at all: the role alone grants everything.
		s := subject(role, nil)
		for _, c := range gate.Capabilities() {
			if !gate.Can(s, c) {
				t.Errorf("%s should hold %s", role, c)
			}
		}
		// An empty bundle does not take the override away.
		s = subject(role, gate.NewStaticProfile("g", "empty"))
		for _, c := range gate.Capabilities() {
			if !gate.Can(s, c) {
				t.Errorf("%s with empty group should hold %s", role, c)
			}
		}
	}
}

func TestCan_NoGroupDeniesEverything(t *testing.T) {
	for _, role := range []gate.Role{gate.RoleSeller, gate.RoleUser} {
		s := subject(role, nil)
		for _, c := range gate.Capabilities() {
			if gate.Can(s, c) {
				t.Errorf("%s without group should not hold %s", role, c)
			}
		}
	}
}

func TestCan_GranularFlags(t *testing.T) {
	p := gate.NewStaticProfile("g-1", "seller", gate.ViewOwnLeads, gate.SearchLeads)
	s := subject(gate.RoleSeller, p)

	if !gate.Can(s, gate.ViewOwnLeads) {
		t.Error("expected canViewOwnLeads")
	}
	if !gate.Can(s, gate.SearchLeads) {
		t.Error("expected canSearchLeads")
	}
	// Flags are independent: seeing own leads implies nothing else.
	if gate.Can(s, gate.ViewAllLeads) {
		t.Error("canViewAllLeads should be false")
	}
	if gate.Can(s, gate.AssignLeads) {
		t.Error("canAssignLeads should be false")
	}
}

func TestCan_NilSubject(t *testing.T) {
	if gate.Can(nil, gate.ViewCRM) {
		t.Error("nil subject must be denied")
	}
}

func TestAuthorize_Errors(t *testing.T) {
	s := subject(gate.RoleUser, gate.NewStaticProfile("g", "viewer", gate.ViewCRM))

	if err := gate.Authorize(s, gate.ViewCRM); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := gate.Authorize(s, gate.ManageUsers); !errors.Is(err, gate.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if err := gate.Authorize(s, gate.Capability("canFly")); !errors.Is(err, gate.ErrUnknownCapability) {
		t.Errorf("expected ErrUnknownCapability, got %v", err)
	}
	// Unknown names are a caller error even for admins.
	admin := subject(gate.RoleAdmin, nil)
	if gate.Can(admin, gate.Capability("canFly")) {
		t.Error("unknown capability must not be granted")
	}
}

func TestCanViewAllLeads(t *testing.T) {
	tests := []struct {
		name    string
		subject gate.Subject
		want    bool
	}{
		{"super admin", subject(gate.RoleSuperAdmin, nil), true},
		{"admin", subject(gate.RoleAdmin, nil), true},
		{"manager group", subject(gate.RoleSeller, gate.NewStaticProfile("g", "manager", gate.ViewAllLeads)), true},
		{"seller group", subject(gate.RoleSeller, gate.NewStaticProfile("g", "seller", gate.ViewOwnLeads)), false},
		{"no group", subject(gate.RoleUser, nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.CanViewAllLeads(tt.subject); got != tt.want {
				t.Errorf("CanViewAllLeads() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range gate.Roles() {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if gate.Role("OWNER").Valid() {
		t.Error("OWNER should not be valid")
	}
}

func TestStaticProfile_Capabilities(t *testing.T) {
	p := gate.NewStaticProfile("g", "x", gate.SearchLeads, gate.ViewAllLeads)
	got := p.Capabilities()
	if len(got) != 2 || got[0] != gate.ViewAllLeads || got[1] != gate.SearchLeads {
		t.Errorf("unexpected capabilities %v", got)
	}
}
