package audit

import (
	"time"

	"registrar/pkg/domain"
)

// Lifecycle actions recorded on the audit trail.
const (
	ActionServiceAdded        = "service_added"
	ActionServiceUpdated      = "service_updated"
	ActionServiceRemoved      = "service_removed"
	ActionServicesActivated   = "services_activated"
	ActionServicesDeactivated = "services_deactivated"
	ActionInvitationAccepted  = "invitation_accepted"
	ActionConsentCreated      = "consent_created"
)

// Event is emitted from lifecycle logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	EventID        string         `json:"eventId"`
	Action         string         `json:"action"`
	OrganizationID domain.DID     `json:"organizationId"`
	ServiceID      string         `json:"serviceId,omitempty"`
	Actor          string         `json:"actor,omitempty"`
	Detail         map[string]any `json:"detail,omitempty"`
	OccurredAt     time.Time      `json:"occurredAt"`
}
