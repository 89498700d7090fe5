package service

import (
	"context"

	"registrar/internal/org/models"
	"registrar/internal/scope"
	"registrar/pkg/domain"
)

// GetOrganization returns the organization visible under the caller's scope.
// Out-of-scope and unknown DIDs are indistinguishable to the caller.
func (s *Service) GetOrganization(ctx context.Context, sc scope.Scope, did domain.DID) (*models.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "org.GetOrganization")
	defer span.End()

	if err := requireScope(sc, did); err != nil {
		return nil, err
	}
	org, _, err := s.loadOrganization(ctx, did)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementOp("get_organization")
	return org, nil
}

// ListGroupOrganizations returns every organization in the caller's scope,
// in scope order. Unrestricted scopes must name explicit DIDs elsewhere, so
// this is only meaningful for group-bound callers.
func (s *Service) ListGroupOrganizations(ctx context.Context, sc scope.Scope) ([]*models.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "org.ListGroupOrganizations")
	defer span.End()

	var out []*models.Organization
	for _, did := range sc.DIDs {
		if did == domain.DID(scope.Sentinel) {
			continue
		}
		org, _, err := s.loadOrganization(ctx, did)
		if err != nil {
			continue
		}
		out = append(out, org)
	}
	return out, nil
}
