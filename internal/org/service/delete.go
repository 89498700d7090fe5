package service

import (
	"context"

	"registrar/internal/audit"
	"registrar/internal/org/models"
	"registrar/internal/scope"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
	"registrar/pkg/requestcontext"
)

// DeleteServiceResult reports what the removal touched.
type DeleteServiceResult struct {
	RemovedAuthClient bool
	SideEffects       SideEffects
}

// DeleteService removes a service from the organization. The lookup is the
// only hard failure; auth client teardown, chain scope reconciliation and
// monitor removal are all best-effort.
func (s *Service) DeleteService(ctx context.Context, sc scope.Scope, did domain.DID, serviceID string) (*DeleteServiceResult, error) {
	ctx, span := s.tracer.Start(ctx, "org.DeleteService")
	defer span.End()

	if err := requireScope(sc, did); err != nil {
		return nil, err
	}
	if _, _, err := s.loadOrganization(ctx, did); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	serviceID = domain.NormalizeServiceID(serviceID)

	var (
		removed       models.Service
		removedClient models.AuthClient
		hadClient     bool
		wasActive     bool
	)
	org, err := s.orgs.Execute(ctx, did,
		func(o *models.Organization) error {
			stored, ok := o.FindService(serviceID)
			if !ok {
				return dErrors.NewWithReason(dErrors.CodeNotFound,
					dErrors.ReasonUnknownServiceID, "no service "+serviceID+" on "+did.String())
			}
			removed = *stored
			wasActive = o.IsServiceActive(serviceID)
			return nil
		},
		func(o *models.Organization) {
			o.RemoveService(serviceID)
			removedClient, hadClient = o.RemoveAuthClientForService(serviceID)
			o.RecomputeCategories()
			o.UpdatedAt = now
		},
	)
	if err != nil {
		return nil, translateStoreErr(err, did)
	}

	result := &DeleteServiceResult{RemovedAuthClient: hadClient}
	effects := &result.SideEffects

	if hadClient {
		for _, grantID := range removedClient.ClientGrantIDs {
			s.effect(ctx, effects, "delete_client_grant", []any{"grant_id", grantID}, func() error {
				return s.provisioner.DeleteGrant(ctx, grantID)
			})
		}
		s.effect(ctx, effects, "delete_auth_client", []any{"client_id", removedClient.ClientID}, func() error {
			return s.provisioner.DeleteClient(ctx, removedClient.ClientID)
		})
	}

	s.pushChainScopes(ctx, effects, org)

	if removed.ExternallyReachable() {
		s.effect(ctx, effects, "remove_monitor", []any{"service_id", serviceID}, func() error {
			return s.monitors.RemoveMonitor(ctx, domain.ServiceRef{DID: did, Fragment: serviceID})
		})
	}

	s.emitAudit(ctx, audit.Event{
		Action:         audit.ActionServiceRemoved,
		OrganizationID: did,
		ServiceID:      serviceID,
		Detail:         map[string]any{"type": removed.Type.String(), "wasActive": wasActive},
	})
	s.metrics.IncrementOp("delete_service")
	if wasActive {
		s.metrics.AddActiveServices(-1)
	}

	return result, nil
}
