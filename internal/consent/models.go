package consent

import (
	"time"

	"registrar/pkg/domain"
)

// Type distinguishes what the data subject consented to.
type Type string

const (
	// TypeIssuer covers services that issue credentials about a subject.
	TypeIssuer Type = "IssuerConsent"
	// TypeInspector covers services that verify presented credentials.
	TypeInspector Type = "InspectorConsent"
)

// TypeForCategory maps a consent-requiring service category to its consent
// type. Returns false for categories that never require consent.
func TypeForCategory(category domain.ServiceCategory) (Type, bool) {
	switch category {
	case domain.CategoryIssuer:
		return TypeIssuer, true
	case domain.CategoryInspector:
		return TypeInspector, true
	default:
		return "", false
	}
}

// Consent is an append-only record that an organization operator accepted the
// terms for running a consent-requiring service. Records are never updated or
// deleted; a new service version writes a new record with a bumped Version.
type Consent struct {
	ConsentID      string     `json:"consentId"`
	OrganizationID domain.DID `json:"organizationId"`
	ServiceID      string     `json:"serviceId"`
	Type           Type       `json:"type"`
	UserID         string     `json:"userId,omitempty"`
	Version        int        `json:"version"`
	CreatedAt      time.Time  `json:"createdAt"`
}
