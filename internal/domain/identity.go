package domain

// Capability is an explicit permission asserted by the upstream identity provider
type Capability string

const (
	// CapabilityEarlyAccess allows booking during the early sub-window on the opening day
	CapabilityEarlyAccess Capability = "early_access"
)

// Identity is the opaque caller assertion received from the authentication collaborator
type Identity struct {
	ID           string
	DisplayName  string
	Capabilities map[Capability]struct{}
}

// NewIdentity builds an identity from raw capability names
func NewIdentity(id, displayName string, capabilities ...string) Identity {
	caps := make(map[Capability]struct{}, len(capabilities))
	for _, c := range capabilities {
		if c == "" {
			continue
		}
		caps[Capability(c)] = struct{}{}
	}
	return Identity{ID: id, DisplayName: displayName, Capabilities: caps}
}

// Has reports whether the identity carries the capability
func (i Identity) Has(c Capability) bool {
	_, ok := i.Capabilities[c]
	return ok
}

// IsPrivileged reports whether the identity may book in the early sub-window
func (i Identity) IsPrivileged() bool {
	return i.Has(CapabilityEarlyAccess)
}

// Label returns the text shown to the owner on their own reservations
func (i Identity) Label() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.ID
}
