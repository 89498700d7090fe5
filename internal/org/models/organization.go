package models

import (
	"time"

	"registrar/pkg/domain"
	pstrings "registrar/pkg/platform/strings"
)

// KeyPurposeDLTTransactions marks an organization key usable for signing
// on-chain transactions. Non-custodied organizations must hold one before
// any of their services can be activated.
const KeyPurposeDLTTransactions = "DLT_TRANSACTIONS"

// Organization is the aggregate root keyed by DID.
//
// Invariants:
//   - Service ids are unique within the organization (fragment-normalized)
//   - ActivatedServiceIDs is always a subset of the service id set
//   - Profile.PermittedServiceCategories is derived from the currently
//     active service types; it is recomputed on every mutation, never patched
//
// The service list is the single source of truth. The DID document is a
// projection (DIDDocument method), so there is no parallel array to keep in
// sync.
type Organization struct {
	DID             domain.DID `json:"did"`
	DIDNotCustodied bool       `json:"didNotCustodied,omitempty"`

	Profile             Profile      `json:"profile"`
	Services            []Service    `json:"services"`
	ActivatedServiceIDs []string     `json:"activatedServiceIds"`
	AuthClients         []AuthClient `json:"authClients,omitempty"`
	Keys                []Key        `json:"keys,omitempty"`
	IDs                 Identifiers  `json:"ids"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile carries the public organization profile.
type Profile struct {
	Name                       string                   `json:"name"`
	PermittedServiceCategories []domain.ServiceCategory `json:"permittedVelocityServiceCategory"`
}

// Identifiers groups external identifiers owned by the organization.
type Identifiers struct {
	EthereumAccount string `json:"ethereumAccount,omitempty"`
}

// Key is an organization key entry with its allowed purposes.
type Key struct {
	ID       string   `json:"id"`
	Purposes []string `json:"purposes"`
}

// AuthClient is an OAuth-style machine credential owned by the organization,
// keyed loosely by ServiceID. Org-level clients (e.g. type "REGISTRAR")
// carry no ServiceID and survive service deletion. Only the secret hash is
// persisted; the cleartext is returned once at provisioning time.
type AuthClient struct {
	Type             string   `json:"type"`
	ClientType       string   `json:"clientType"`
	ClientID         string   `json:"clientId"`
	ClientSecretHash string   `json:"-"`
	ServiceID        string   `json:"serviceId,omitempty"`
	ClientGrantIDs   []string `json:"clientGrantIds,omitempty"`
}

// FindService returns the service with the given fragment-normalized id.
func (o *Organization) FindService(serviceID string) (*Service, bool) {
	want := domain.NormalizeServiceID(serviceID)
	for i := range o.Services {
		if o.Services[i].ID == want {
			return &o.Services[i], true
		}
	}
	return nil, false
}

// HasService reports whether a service with the id exists.
func (o *Organization) HasService(serviceID string) bool {
	_, ok := o.FindService(serviceID)
	return ok
}

// IsServiceActive reports whether the id is in the activated set.
func (o *Organization) IsServiceActive(serviceID string) bool {
	return pstrings.Contains(o.ActivatedServiceIDs, domain.NormalizeServiceID(serviceID))
}

// ActiveServiceTypes returns the types of currently active services, in
// service-list order. Deactivated and removed services contribute nothing.
func (o *Organization) ActiveServiceTypes() []domain.ServiceType {
	var types []domain.ServiceType
	for _, svc := range o.Services {
		if pstrings.Contains(o.ActivatedServiceIDs, svc.ID) {
			types = append(types, svc.Type)
		}
	}
	return types
}

// RecomputeCategories rederives the permitted service categories from the
// currently active services. Called after every service mutation.
func (o *Organization) RecomputeCategories() {
	o.Profile.PermittedServiceCategories = domain.DeriveCategories(o.ActiveServiceTypes())
}

// AppendService adds a service to the list. The caller has already validated
// uniqueness and required fields.
func (o *Organization) AppendService(svc Service) {
	o.Services = append(o.Services, svc)
}

// RemoveService deletes the service and drops its id from the activated set.
// Returns false when no such service exists.
func (o *Organization) RemoveService(serviceID string) bool {
	want := domain.NormalizeServiceID(serviceID)
	for i := range o.Services {
		if o.Services[i].ID == want {
			o.Services = append(o.Services[:i], o.Services[i+1:]...)
			o.ActivatedServiceIDs = pstrings.Subtract(o.ActivatedServiceIDs, []string{want})
			return true
		}
	}
	return false
}

// ActivateServiceIDs unions the given ids into the activated set,
// preserving first-seen order.
func (o *Organization) ActivateServiceIDs(serviceIDs []string) {
	o.ActivatedServiceIDs = pstrings.DedupeAndTrim(append(o.ActivatedServiceIDs, serviceIDs...))
}

// DeactivateServiceIDs removes the given ids from the activated set.
func (o *Organization) DeactivateServiceIDs(serviceIDs []string) {
	o.ActivatedServiceIDs = pstrings.Subtract(o.ActivatedServiceIDs, serviceIDs)
}

// AuthClientForService returns the auth client keyed by the service id.
// Org-level clients without a ServiceID never match.
func (o *Organization) AuthClientForService(serviceID string) (*AuthClient, bool) {
	want := domain.NormalizeServiceID(serviceID)
	for i := range o.AuthClients {
		if o.AuthClients[i].ServiceID == want && want != "" {
			return &o.AuthClients[i], true
		}
	}
	return nil, false
}

// RemoveAuthClientForService drops the auth client keyed by the service id
// and returns it. Org-level clients are preserved.
func (o *Organization) RemoveAuthClientForService(serviceID string) (AuthClient, bool) {
	want := domain.NormalizeServiceID(serviceID)
	for i := range o.AuthClients {
		if o.AuthClients[i].ServiceID == want && want != "" {
			removed := o.AuthClients[i]
			o.AuthClients = append(o.AuthClients[:i], o.AuthClients[i+1:]...)
			return removed, true
		}
	}
	return AuthClient{}, false
}

// HasKeyWithPurpose reports whether any organization key lists the purpose.
func (o *Organization) HasKeyWithPurpose(purpose string) bool {
	for _, key := range o.Keys {
		if pstrings.Contains(key.Purposes, purpose) {
			return true
		}
	}
	return false
}

// DIDDocument projects the organization into its public DID-document shape.
func (o *Organization) DIDDocument() domain.DIDDocument {
	doc := domain.DIDDocument{
		Context: []string{"https://www.w3.org/ns/did/v1"},
		ID:      o.DID,
	}
	for i := range o.Services {
		doc.Service = append(doc.Service, o.Services[i].DIDDocEntry())
	}
	return doc
}
