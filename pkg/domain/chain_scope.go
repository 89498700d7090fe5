package domain

// ChainScope is an on-chain permission string managed by the registrar for an
// organization's ethereum account.
type ChainScope string

const (
	ChainScopeTransactionsWrite ChainScope = "transactions:write"
	ChainScopeCredentialIssue   ChainScope = "credential:issue"
	ChainScopeCredentialRevoke  ChainScope = "credential:revoke"
	ChainScopeIdentityIssue     ChainScope = "credential:identityissue"
	ChainScopeContactIssue      ChainScope = "credential:contactissue"
	ChainScopeCredentialInspect ChainScope = "credential:inspect"
)

// managedChainScopes is the maximal universe of scopes this registrar
// manages. Scope reconciliation always diffs against the full universe so
// removing a service restores exactly the scopes implied by what remains.
var managedChainScopes = []ChainScope{
	ChainScopeTransactionsWrite,
	ChainScopeCredentialIssue,
	ChainScopeCredentialRevoke,
	ChainScopeIdentityIssue,
	ChainScopeContactIssue,
	ChainScopeCredentialInspect,
}

// serviceTypeChainScopes is the declarative table from service type to the
// chain scopes it implies. Keyed by type rather than category because
// identity and contact issuers imply distinct issue scopes while sharing the
// Issuer category. Node operators and wallet providers imply no scopes.
var serviceTypeChainScopes = map[ServiceType][]ChainScope{
	ServiceTypeCareerIssuer:            {ChainScopeTransactionsWrite, ChainScopeCredentialIssue, ChainScopeCredentialRevoke},
	ServiceTypeNotaryIssuer:            {ChainScopeTransactionsWrite, ChainScopeCredentialIssue, ChainScopeCredentialRevoke},
	ServiceTypeIDDocumentIssuer:        {ChainScopeTransactionsWrite, ChainScopeIdentityIssue, ChainScopeCredentialRevoke},
	ServiceTypeNotaryIDDocumentIssuer:  {ChainScopeTransactionsWrite, ChainScopeIdentityIssue, ChainScopeCredentialRevoke},
	ServiceTypeIdentityIssuer:          {ChainScopeTransactionsWrite, ChainScopeIdentityIssue, ChainScopeCredentialRevoke},
	ServiceTypeContactIssuer:           {ChainScopeTransactionsWrite, ChainScopeContactIssue, ChainScopeCredentialRevoke},
	ServiceTypeNotaryContactIssuer:     {ChainScopeTransactionsWrite, ChainScopeContactIssue, ChainScopeCredentialRevoke},
	ServiceTypeInspector:               {ChainScopeTransactionsWrite, ChainScopeCredentialInspect},
	ServiceTypeCredentialAgentOperator: {ChainScopeTransactionsWrite},
	ServiceTypeNodeOperator:            {},
	ServiceTypeHolderAppProvider:       {},
	ServiceTypeWebWalletProvider:       {},
}

// ChainScopeChanges is the full reconciliation result for an address:
// ScopesToAdd is the target set implied by active services, ScopesToRemove is
// the rest of the managed universe.
type ChainScopeChanges struct {
	ScopesToAdd    []ChainScope
	ScopesToRemove []ChainScope
}

// DeriveChainScopes recomputes the target scope set from scratch for the
// given active service types and diffs it against the managed universe.
// Incremental patching would strand scopes implied by remaining services
// when one service is removed, so callers always pass the full active set.
func DeriveChainScopes(activeTypes []ServiceType) ChainScopeChanges {
	target := make(map[ChainScope]bool)
	for _, t := range activeTypes {
		for _, scope := range serviceTypeChainScopes[t] {
			target[scope] = true
		}
	}

	changes := ChainScopeChanges{
		ScopesToAdd:    []ChainScope{},
		ScopesToRemove: []ChainScope{},
	}
	for _, scope := range managedChainScopes {
		if target[scope] {
			changes.ScopesToAdd = append(changes.ScopesToAdd, scope)
		} else {
			changes.ScopesToRemove = append(changes.ScopesToRemove, scope)
		}
	}
	return changes
}
