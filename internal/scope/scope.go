package scope

import "registrar/pkg/domain"

// Sentinel marks a creation-style scope: the caller owns no group or
// organization yet, and is allowed to create one.
const Sentinel = "new"

// Scope is the resolved authorization envelope for one request. It is
// produced once by the Resolver and threaded explicitly through the call
// chain; nothing downstream mutates it.
type Scope struct {
	DIDs         []domain.DID
	GroupID      string
	UserID       string
	Unrestricted bool
}

// Creation reports whether the scope is the new-organization sentinel.
func (s Scope) Creation() bool {
	return s.GroupID == Sentinel
}

// Covers reports whether did falls inside the scope.
func (s Scope) Covers(did domain.DID) bool {
	if s.Unrestricted {
		return true
	}
	for _, d := range s.DIDs {
		if d == did {
			return true
		}
	}
	return false
}

// NewOrganizationScope is the scope handed to callers creating their first
// organization and group.
func NewOrganizationScope() Scope {
	return Scope{DIDs: []domain.DID{domain.DID(Sentinel)}, GroupID: Sentinel}
}
