package gate

// Capability names one granular permission flag of an access group.
type Capability string

const (
	ViewAllLeads  Capability = "canViewAllLeads"
	ViewOwnLeads  Capability = "canViewOwnLeads"
	ManageLeads   Capability = "canManageLeads"
	AssignLeads   Capability = "canAssignLeads"
	ManageUsers   Capability = "canManageUsers"
	ManageGroups  Capability = "canManageGroups"
	ManageFolders Capability = "canManageFolders"
	ViewCRM       Capability = "canViewCRM"
	ViewDashboard Capability = "canViewDashboard"
	ViewCosts     Capability = "canViewCosts"
	ViewChat      Capability = "canViewChat"
	SearchLeads   Capability = "canSearchLeads"
)

var allCapabilities = []Capability{
	ViewAllLeads,
	ViewOwnLeads,
	ManageLeads,
	AssignLeads,
	ManageUsers,
	ManageGroups,
	ManageFolders,
	ViewCRM,
	ViewDashboard,
	ViewCosts,
	ViewChat,
	SearchLeads,
}

// Capabilities returns the fixed flag set. The slice is a copy.
func Capabilities() []Capability {
	out := make([]Capability, len(allCapabilities))
	copy(out, allCapabilities)
	return out
}

// Known reports whether c belongs to the fixed flag set.
func (c Capability) Known() bool {
	for _, k := range allCapabilities {
		if k == c {
			return true
		}
	}
	return false
}
