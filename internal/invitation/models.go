package invitation

import (
	"time"

	"registrar/pkg/domain"
)

// Invitation is a one-time code an existing organization hands to a new
// operator. Presenting the code while adding a service links the accepting
// organization back to the inviter.
type Invitation struct {
	InvitationID string     `json:"invitationId"`
	Code         string     `json:"code"`
	InviterDID   domain.DID `json:"inviterDid"`
	ExpiresAt    time.Time  `json:"expiresAt"`
	AcceptedAt   *time.Time `json:"acceptedAt,omitempty"`
	AcceptedBy   domain.DID `json:"acceptedBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Accepted reports whether the invitation has already been consumed.
func (i *Invitation) Accepted() bool {
	return i.AcceptedAt != nil
}

// Expired reports whether the invitation can no longer be accepted.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
