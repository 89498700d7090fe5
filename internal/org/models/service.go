package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
)

// Service is one entry on an organization's service list. The registrar
// stores a single service list per organization; the DID-document view and
// the API view are projections (DIDDocEntry, below), so the two can never
// drift apart.
//
// Invariants:
//   - ID is a DID-relative fragment ("#xxx") unique within the organization
//   - Type is a valid ServiceType and immutable after creation
//   - ServiceEndpoint is an https URL or a DID service reference
type Service struct {
	ID              string             `json:"id"`
	Type            domain.ServiceType `json:"type"`
	ServiceEndpoint string             `json:"serviceEndpoint"`
	CredentialTypes []string           `json:"credentialTypes,omitempty"`

	// HolderAppProvider fields.
	LogoURL                    string   `json:"logoUrl,omitempty"`
	PlayStoreURL               string   `json:"playStoreUrl,omitempty"`
	AppleAppStoreURL           string   `json:"appleAppStoreUrl,omitempty"`
	AppleAppID                 string   `json:"appleAppId,omitempty"`
	GooglePlayID               string   `json:"googlePlayId,omitempty"`
	SupportedExchangeProtocols []string `json:"supportedExchangeProtocols,omitempty"`

	// WebWalletProvider fields (LogoURL is shared with HolderAppProvider).
	Name string `json:"name,omitempty"`

	InvitationID string    `json:"invitationId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidateRequiredFields checks the type-specific required field sets. The
// switch is exhaustive over ServiceType so a new type cannot be added
// without deciding its required fields.
func (s *Service) ValidateRequiredFields() error {
	switch s.Type {
	case domain.ServiceTypeHolderAppProvider:
		return requireFields(
			requiredField{"logoUrl", s.LogoURL != ""},
			requiredField{"playStoreUrl", s.PlayStoreURL != ""},
			requiredField{"appleAppStoreUrl", s.AppleAppStoreURL != ""},
			requiredField{"appleAppId", s.AppleAppID != ""},
			requiredField{"googlePlayId", s.GooglePlayID != ""},
			requiredField{"supportedExchangeProtocols", len(s.SupportedExchangeProtocols) > 0},
		)
	case domain.ServiceTypeWebWalletProvider:
		return requireFields(
			requiredField{"name", s.Name != ""},
			requiredField{"logoUrl", s.LogoURL != ""},
		)
	case domain.ServiceTypeCareerIssuer,
		domain.ServiceTypeIDDocumentIssuer,
		domain.ServiceTypeNotaryIssuer,
		domain.ServiceTypeContactIssuer,
		domain.ServiceTypeNotaryContactIssuer,
		domain.ServiceTypeNotaryIDDocumentIssuer,
		domain.ServiceTypeIdentityIssuer,
		domain.ServiceTypeInspector,
		domain.ServiceTypeCredentialAgentOperator,
		domain.ServiceTypeNodeOperator:
		return nil
	default:
		return dErrors.New(dErrors.CodeBadRequest, "unsupported service type: "+s.Type.String())
	}
}

// EndpointRef returns the CAO service reference the endpoint points at, if
// the endpoint is a DID service reference rather than a URL.
func (s *Service) EndpointRef() (domain.ServiceRef, bool) {
	return domain.ParseServiceRef(s.ServiceEndpoint)
}

// ExternallyReachable reports whether the endpoint is a plain URL that an
// uptime monitor can probe (as opposed to a DID service reference).
func (s *Service) ExternallyReachable() bool {
	_, isRef := s.EndpointRef()
	return !isRef
}

// ValidateEndpointURL checks a non-reference endpoint: it must be an
// absolute https URL. http is rejected outright.
func ValidateEndpointURL(endpoint string) error {
	parsed, err := url.Parse(endpoint)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return dErrors.NewWithReason(dErrors.CodeBadRequest, dErrors.ReasonEndpointInvalid,
			"serviceEndpoint must be an absolute URL or a DID service reference")
	}
	if !strings.EqualFold(parsed.Scheme, "https") {
		return dErrors.NewWithReason(dErrors.CodeBadRequest, dErrors.ReasonEndpointInvalid,
			"serviceEndpoint must use https")
	}
	return nil
}

// DIDDocEntry projects the service into its public DID-document shape.
// Internal-only fields (credentialTypes, invitationId, timestamps) are
// deliberately not part of the projection.
func (s *Service) DIDDocEntry() domain.DIDDocService {
	return domain.DIDDocService{
		ID:              s.ID,
		Type:            s.Type.String(),
		ServiceEndpoint: s.ServiceEndpoint,
	}
}

type requiredField struct {
	name    string
	present bool
}

func requireFields(fields ...requiredField) error {
	for _, f := range fields {
		if !f.present {
			return dErrors.NewWithReason(dErrors.CodeBadRequest, dErrors.ReasonMissingRequiredField,
				fmt.Sprintf("missing required field %s", f.name))
		}
	}
	return nil
}
