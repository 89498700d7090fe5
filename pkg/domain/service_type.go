package domain

import dErrors "registrar/pkg/domain-errors"

// ServiceType identifies the fine-grained kind of a service entry on an
// organization's DID document.
//
// Usage: construct via ParseServiceType at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type ServiceType string

const (
	ServiceTypeCareerIssuer            ServiceType = "VlcCareerIssuer_v1"
	ServiceTypeIDDocumentIssuer        ServiceType = "VlcIdDocumentIssuer_v1"
	ServiceTypeNotaryIssuer            ServiceType = "VlcNotaryIssuer_v1"
	ServiceTypeContactIssuer           ServiceType = "VlcContactIssuer_v1"
	ServiceTypeNotaryContactIssuer     ServiceType = "VlcNotaryContactIssuer_v1"
	ServiceTypeNotaryIDDocumentIssuer  ServiceType = "VlcNotaryIdDocumentIssuer_v1"
	ServiceTypeIdentityIssuer          ServiceType = "VlcIdentityIssuer_v1"
	ServiceTypeInspector               ServiceType = "VlcInspector_v1"
	ServiceTypeCredentialAgentOperator ServiceType = "VlcCredentialAgentOperator_v1"
	ServiceTypeNodeOperator            ServiceType = "VlcNodeOperator_v1"
	ServiceTypeHolderAppProvider       ServiceType = "VlcHolderAppProvider_v1"
	ServiceTypeWebWalletProvider       ServiceType = "VlcWebWalletProvider_v1"
)

// serviceTypeCategories is the single source of truth for the type to
// category mapping. Every ServiceType maps to exactly one category.
var serviceTypeCategories = map[ServiceType]ServiceCategory{
	ServiceTypeCareerIssuer:            CategoryIssuer,
	ServiceTypeIDDocumentIssuer:        CategoryIssuer,
	ServiceTypeNotaryIssuer:            CategoryIssuer,
	ServiceTypeContactIssuer:           CategoryIssuer,
	ServiceTypeNotaryContactIssuer:     CategoryIssuer,
	ServiceTypeNotaryIDDocumentIssuer:  CategoryIssuer,
	ServiceTypeIdentityIssuer:          CategoryIssuer,
	ServiceTypeInspector:               CategoryInspector,
	ServiceTypeCredentialAgentOperator: CategoryCredentialAgentOperator,
	ServiceTypeNodeOperator:            CategoryNodeOperator,
	ServiceTypeHolderAppProvider:       CategoryHolderAppProvider,
	ServiceTypeWebWalletProvider:       CategoryWebWalletProvider,
}

// ParseServiceType constructs a ServiceType from external input.
//
// Errors: returns CodeBadRequest when the value is empty or unsupported.
func ParseServiceType(s string) (ServiceType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "service type cannot be empty")
	}
	t := ServiceType(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeBadRequest, "unsupported service type: "+s)
	}
	return t, nil
}

func (t ServiceType) IsValid() bool {
	_, ok := serviceTypeCategories[t]
	return ok
}

func (t ServiceType) String() string {
	return string(t)
}

// Category returns the coarse permission-relevant grouping for the type.
func (t ServiceType) Category() ServiceCategory {
	return serviceTypeCategories[t]
}

// RequiresAuthClient reports whether services of this type operate with
// machine credentials and need an auth client provisioned on activation.
func (t ServiceType) RequiresAuthClient() bool {
	switch t {
	case ServiceTypeCredentialAgentOperator, ServiceTypeNodeOperator:
		return true
	default:
		return false
	}
}
