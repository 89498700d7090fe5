package authclient

import (
	"context"
)

// ClientSpec describes the auth client to provision for a service that
// operates an agent against the registrar's APIs.
type ClientSpec struct {
	OrganizationDID string `json:"organizationDid"`
	ServiceID       string `json:"serviceId"`
	ServiceType     string `json:"serviceType"`
	Name            string `json:"name"`
}

// ProvisionedClient is what the identity provider hands back. The secret is
// returned exactly once; only its hash is persisted.
type ProvisionedClient struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	ClientType   string `json:"clientType"`
}

// Grant attaches an API permission set to a provisioned client.
type Grant struct {
	GrantID  string   `json:"grantId"`
	ClientID string   `json:"clientId"`
	Audience string   `json:"audience"`
	Scopes   []string `json:"scopes"`
}

// Provisioner manages machine clients at the external identity provider.
// All calls are best-effort from the lifecycle's point of view: a failure
// is reported, never rolled back into the organization mutation.
type Provisioner interface {
	CreateClient(ctx context.Context, spec ClientSpec) (*ProvisionedClient, error)
	DeleteClient(ctx context.Context, clientID string) error
	CreateGrant(ctx context.Context, clientID, audience string, scopes []string) (*Grant, error)
	DeleteGrant(ctx context.Context, grantID string) error
}
