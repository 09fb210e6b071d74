// Package gate is the single place where capability decisions are made.
// Every check goes through Can: ADMIN and SUPER_ADMIN override all granular
// flags, everyone else gets exactly what their access group grants, and a
// user without a group gets nothing.
package gate

// Can reports whether subject holds capability c.
// It has no side effects and never touches storage; an unknown capability
// is denied (use Authorize to surface it as an error).
func Can(subject Subject, c Capability) bool {
	return Authorize(subject, c) == nil
}

// Authorize is Can returning ErrForbidden or ErrUnknownCapability.
func Authorize(subject Subject, c Capability) error {
	if !c.Known() {
		return ErrUnknownCapability
	}
	if subject == nil {
		return ErrForbidden
	}
	if subject.SubjectRole().Overrides() {
		return nil
	}
	profile := subject.SubjectProfile()
	if profile == nil {
		return ErrForbidden
	}
	if !profile.Allows(c) {
		return ErrForbidden
	}
	return nil
}

// CanViewAllLeads is the derived decision shared by the visibility filter
// and the reassignment checks.
func CanViewAllLeads(subject Subject) bool {
	return Can(subject, ViewAllLeads)
}
