package models

import (
	"testing"

	"github.com/diewo77/lead-hunter/gate"
)

func strPtr(s string) *string { return &s }

func TestPermission_HasAndSet(t *testing.T) {
	p := &Permission{}
	for _, c := range gate.Capabilities() {
		if p.Has(c) {
			t.Errorf("zero bundle should not grant %s", c)
		}
		if !p.Set(c, true) {
			t.Errorf("Set(%s) should report a known flag", c)
		}
		if !p.Has(c) {
			t.Errorf("Has(%s) should be true after Set", c)
		}
	}
	if p.Set("canFly", true) {
		t.Error("Set should reject unknown flags")
	}
	if p.Has("canFly") {
		t.Error("Has should be false for unknown flags")
	}
}

func TestNewPermission_OnlyNamedFlags(t *testing.T) {
	p := NewPermission(gate.ViewOwnLeads, gate.SearchLeads)
	if !p.CanViewOwnLeads || !p.CanSearchLeads {
		t.Fatal("named flags should be set")
	}
	if p.CanViewAllLeads || p.CanAssignLeads {
		t.Error("other flags must stay false")
	}
}

func TestAccessGroup_Profile(t *testing.T) {
	var nilGroup *AccessGroup
	if nilGroup.Profile() != nil {
		t.Error("nil group should have no profile")
	}
	// A group without its permission row grants nothing.
	if (&AccessGroup{Name: "broken"}).Profile() != nil {
		t.Error("group without permission row should have no profile")
	}

	g := &AccessGroup{ID: "g-1", Name: "seller", Permission: NewPermission(gate.ViewOwnLeads)}
	prof := g.Profile()
	if prof == nil {
		t.Fatal("expected profile")
	}
	if prof.ID() != "g-1" || prof.Name() != "seller" {
		t.Errorf("unexpected profile identity %s/%s", prof.ID(), prof.Name())
	}
	if !prof.Allows(gate.ViewOwnLeads) || prof.Allows(gate.ViewAllLeads) {
		t.Error("profile flags do not match the permission row")
	}
	if caps := prof.Capabilities(); len(caps) != 1 || caps[0] != gate.ViewOwnLeads {
		t.Errorf("Capabilities() = %v", caps)
	}
}

func TestUser_Subject(t *testing.T) {
	u := &User{ID: "u-1", Role: gate.RoleSeller}
	if u.SubjectProfile() != nil {
		t.Error("user without group should have nil profile")
	}
	if gate.Can(u, gate.ViewOwnLeads) {
		t.Error("seller without group must be denied")
	}

	u.AccessGroup = &AccessGroup{Name: "seller", Permission: NewPermission(gate.ViewOwnLeads)}
	if !gate.Can(u, gate.ViewOwnLeads) {
		t.Error("seller with group should see own leads")
	}

	var nilUser *User
	if nilUser.SubjectID() != "" || nilUser.SubjectRole() != "" || nilUser.SubjectProfile() != nil {
		t.Error("nil user accessors should return zero values")
	}
}

func TestLead_Ownership(t *testing.T) {
	l := &Lead{}
	if l.IsAssigned() || l.GetResponsibleID() != "" {
		t.Error("new lead should be unassigned")
	}
	if l.IsOwnedBy("") {
		t.Error("empty id never owns a lead")
	}
	l.ResponsibleID = strPtr("u-1")
	if !l.IsOwnedBy("u-1") || l.IsOwnedBy("u-2") {
		t.Error("ownership check mismatch")
	}
	if l.GetResponsibleID() != "u-1" {
		t.Errorf("GetResponsibleID() = %q", l.GetResponsibleID())
	}
}

func TestLeadStatus_Known(t *testing.T) {
	tests := []struct {
		status LeadStatus
		want   bool
	}{
		{LeadStatusActive, true},
		{LeadStatusTriage, true},
		{LeadStatusArchived, true},
		{"Em negociação", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.status.Known(); got != tt.want {
			t.Errorf("%q.Known() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestHistory_IsUnassignment(t *testing.T) {
	if !(&LeadAssignmentHistory{}).IsUnassignment() {
		t.Error("nil NewUserID marks an unassignment")
	}
	if (&LeadAssignmentHistory{NewUserID: strPtr("u-1")}).IsUnassignment() {
		t.Error("row with a user is an assignment")
	}
}
