package gate

// Profile is the permission bundle attached to a user's access group.
type Profile interface {
	ID() string
	Name() string
	// Allows returns the value of the named flag; unset flags are false.
	Allows(c Capability) bool
	// Capabilities returns the flags set to true.
	Capabilities() []Capability
}

// Subject is the authenticated user a decision is made for.
// SubjectProfile returns nil when the user has no access group.
type Subject interface {
	SubjectID() string
	SubjectRole() Role
	SubjectProfile() Profile
}

// StaticProfile is an in-memory profile, handy for tests and fixtures.
type StaticProfile struct {
	id    string
	name  string
	flags map[Capability]bool
}

// NewStaticProfile creates a profile with the given flags set to true.
func NewStaticProfile(id, name string, caps ...Capability) *StaticProfile {
	p := &StaticProfile{id: id, name: name, flags: make(map[Capability]bool, len(caps))}
	for _, c := range caps {
		p.flags[c] = true
	}
	return p
}

func (p *StaticProfile) ID() string   { return p.id }
func (p *StaticProfile) Name() string { return p.name }

func (p *StaticProfile) Allows(c Capability) bool {
	return p.flags[c]
}

// Capabilities returns the enabled flags in canonical order.
func (p *StaticProfile) Capabilities() []Capability {
	var out []Capability
	for _, c := range allCapabilities {
		if p.flags[c] {
			out = append(out, c)
		}
	}
	return out
}

// StaticSubject is an in-memory subject.
type StaticSubject struct {
	ID      string
	Role    Role
	Profile Profile
}

func (s StaticSubject) SubjectID() string       { return s.ID }
func (s StaticSubject) SubjectRole() Role       { return s.Role }
func (s StaticSubject) SubjectProfile() Profile { return s.Profile }
