package models

import (
	"time"

	"registrar/pkg/domain"
)

// Group is a set of organization DIDs administered together. Callers whose
// token carries the group id may act on any member DID; client admins are
// auth0-style user ids registered against the group for read access.
type Group struct {
	GroupID        string       `json:"groupId"`
	DIDs           []domain.DID `json:"dids"`
	ClientAdminIDs []string     `json:"clientAdminIds"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// ContainsDID reports whether did is a member of the group.
func (g *Group) ContainsDID(did domain.DID) bool {
	for _, d := range g.DIDs {
		if d == did {
			return true
		}
	}
	return false
}

// HasClientAdmin reports whether userID is registered as a client admin.
func (g *Group) HasClientAdmin(userID string) bool {
	for _, id := range g.ClientAdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (g *Group) Clone() *Group {
	out := *g
	out.DIDs = append([]domain.DID(nil), g.DIDs...)
	out.ClientAdminIDs = append([]string(nil), g.ClientAdminIDs...)
	return &out
}
