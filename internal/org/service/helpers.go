package service

import (
	"github.com/google/uuid"

	"registrar/internal/chain"
	"registrar/pkg/domain"
)

func newConsentID() string {
	return "consent-" + uuid.NewString()
}

func chainUpdate(address string, changes domain.ChainScopeChanges) chain.ScopeUpdate {
	return chain.ScopeUpdate{
		Address:        address,
		ScopesToAdd:    changes.ScopesToAdd,
		ScopesToRemove: changes.ScopesToRemove,
	}
}
