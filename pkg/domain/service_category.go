package domain

// ServiceCategory is the coarse grouping derived from one or more service
// types. Categories drive permitted-service lists, consent requirements, and
// chain permission scopes.
type ServiceCategory string

const (
	CategoryIssuer                  ServiceCategory = "Issuer"
	CategoryInspector               ServiceCategory = "Inspector"
	CategoryCredentialAgentOperator ServiceCategory = "CredentialAgentOperator"
	CategoryNodeOperator            ServiceCategory = "NodeOperator"
	CategoryHolderAppProvider       ServiceCategory = "HolderAppProvider"
	CategoryWebWalletProvider       ServiceCategory = "WebWalletProvider"
)

func (c ServiceCategory) String() string {
	return string(c)
}

// RequiresConsent reports whether adding or activating a service of this
// category records an explicit consent entry. Issuers and inspectors handle
// user credential data directly.
func (c ServiceCategory) RequiresConsent() bool {
	return c == CategoryIssuer || c == CategoryInspector
}

// DeriveCategories maps the currently active service types to the
// de-duplicated set of categories they imply. The result preserves insertion
// order of first occurrence; the API response echoes this ordering, so it is
// part of the contract.
func DeriveCategories(types []ServiceType) []ServiceCategory {
	seen := make(map[ServiceCategory]bool, len(types))
	categories := make([]ServiceCategory, 0, len(types))
	for _, t := range types {
		category, ok := serviceTypeCategories[t]
		if !ok || seen[category] {
			continue
		}
		seen[category] = true
		categories = append(categories, category)
	}
	return categories
}
