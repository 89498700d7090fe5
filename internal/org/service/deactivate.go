package service

import (
	"context"

	"registrar/internal/audit"
	"registrar/internal/notify"
	"registrar/internal/org/models"
	"registrar/internal/scope"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
	"registrar/pkg/requestcontext"
)

// DeactivateServices removes the given services from the activated set. All
// requested ids must exist and be active; the first offending id fails the
// whole call before anything is persisted. Auth client records survive
// deactivation so reactivation does not reprovision, but their grants are
// revoked.
func (s *Service) DeactivateServices(ctx context.Context, sc scope.Scope, did domain.DID, serviceIDs []string) (*ActivationResult, error) {
	ctx, span := s.tracer.Start(ctx, "org.DeactivateServices")
	defer span.End()

	if err := requireScope(sc, did); err != nil {
		return nil, err
	}
	org, _, err := s.loadOrganization(ctx, did)
	if err != nil {
		return nil, err
	}

	requested := normalizeIDs(serviceIDs)
	for _, id := range requested {
		if !org.HasService(id) {
			return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
				dErrors.ReasonUnknownServiceID,
				"organization "+did.String()+" has no service "+id)
		}
	}
	for _, id := range requested {
		if !org.IsServiceActive(id) {
			return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
				dErrors.ReasonServiceNotActive,
				"service "+id+" of organization "+did.String()+" is not active")
		}
	}

	now := requestcontext.Now(ctx)
	result := &ActivationResult{Changed: true}
	effects := &result.SideEffects

	// Grants to revoke are captured inside the mutation so the stored record
	// never claims a grant the revocation loop does not see.
	var revoke []grantRef
	updated, err := s.orgs.Execute(ctx, did,
		func(o *models.Organization) error { return nil },
		func(o *models.Organization) {
			for _, id := range requested {
				client, ok := o.AuthClientForService(id)
				if !ok {
					continue
				}
				for _, grantID := range client.ClientGrantIDs {
					revoke = append(revoke, grantRef{ClientID: client.ClientID, GrantID: grantID})
				}
				client.ClientGrantIDs = nil
			}
			o.DeactivateServiceIDs(requested)
			o.RecomputeCategories()
			o.UpdatedAt = now
		},
	)
	if err != nil {
		return nil, translateStoreErr(err, did)
	}

	for _, ref := range revoke {
		s.effect(ctx, effects, "delete_client_grant", []any{"grant_id", ref.GrantID, "client_id", ref.ClientID}, func() error {
			return s.provisioner.DeleteGrant(ctx, ref.GrantID)
		})
	}

	s.pushChainScopes(ctx, effects, updated)

	s.effect(ctx, effects, "notify_group", []any{"service_ids", requested}, func() error {
		return s.sendToGroup(ctx, updated.DID, func(recipient string) notify.Email {
			return notify.ServicesDeactivated(recipient, updated.Profile.Name, requested)
		})
	})

	s.emitAudit(ctx, audit.Event{
		Action:         audit.ActionServicesDeactivated,
		OrganizationID: did,
		Detail:         map[string]any{"serviceIds": requested},
	})
	s.metrics.IncrementOp("deactivate_services")
	s.metrics.AddActiveServices(-len(requested))

	result.Profile = updated.Profile
	result.ActivatedServiceIDs = updated.ActivatedServiceIDs
	result.CreatedAt = updated.CreatedAt
	result.UpdatedAt = updated.UpdatedAt
	return result, nil
}

type grantRef struct {
	ClientID string
	GrantID  string
}
