package service

import (
	"context"
	"time"

	"registrar/internal/audit"
	"registrar/internal/authclient"
	"registrar/internal/notify"
	"registrar/internal/org/models"
	"registrar/internal/scope"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
	pstrings "registrar/pkg/platform/strings"
	"registrar/pkg/requestcontext"
	"registrar/pkg/secrets"
)

// ActivationResult is returned by ActivateServices and DeactivateServices.
// Changed is false for the idempotent no-op, in which case every other field
// is zero and no side effect ran.
type ActivationResult struct {
	Changed             bool
	Profile             models.Profile
	ActivatedServiceIDs []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	AuthClients         []ProvisionedAuthClient
	SideEffects         SideEffects
}

// ActivateServices marks the given services active. Already-active ids are
// ignored; if nothing remains the call is a no-op with zero side effects.
func (s *Service) ActivateServices(ctx context.Context, sc scope.Scope, did domain.DID, serviceIDs []string) (*ActivationResult, error) {
	ctx, span := s.tracer.Start(ctx, "org.ActivateServices")
	defer span.End()

	if err := requireScope(sc, did); err != nil {
		return nil, err
	}
	org, doc, err := s.loadOrganization(ctx, did)
	if err != nil {
		return nil, err
	}

	requested := normalizeIDs(serviceIDs)
	pending := pstrings.Subtract(requested, org.ActivatedServiceIDs)
	if len(pending) == 0 {
		return &ActivationResult{}, nil
	}

	for _, id := range pending {
		if !org.HasService(id) {
			return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
				dErrors.ReasonUnknownServiceID,
				"organization "+did.String()+" has no service "+id)
		}
	}

	if org.DIDNotCustodied {
		for _, id := range pending {
			if _, ok := doc.FindService(id); !ok {
				return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
					dErrors.ReasonUnknownServiceID,
					"resolved DID document of "+did.String()+" has no service "+id)
			}
		}
		if !org.HasKeyWithPurpose(models.KeyPurposeDLTTransactions) {
			return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
				dErrors.ReasonNoRequiredPurpose,
				"no required purpose for service: organization lacks a "+
					models.KeyPurposeDLTTransactions+" key")
		}
	}

	now := requestcontext.Now(ctx)
	result := &ActivationResult{Changed: true}
	effects := &result.SideEffects

	// Provision machine credentials for newly active services that need one
	// and don't have one yet. Provisioning failure leaves the service active
	// without credentials, to be reconciled later.
	var clientRecords []models.AuthClient
	for _, id := range pending {
		svc, _ := org.FindService(id)
		if !svc.Type.RequiresAuthClient() {
			continue
		}
		if _, exists := org.AuthClientForService(id); exists {
			continue
		}
		record, provisioned := s.provisionClient(ctx, effects, org, *svc)
		if record != nil {
			clientRecords = append(clientRecords, *record)
			result.AuthClients = append(result.AuthClients, *provisioned)
		}
	}

	updated, err := s.orgs.Execute(ctx, did,
		func(o *models.Organization) error { return nil },
		func(o *models.Organization) {
			o.AuthClients = append(o.AuthClients, clientRecords...)
			o.ActivateServiceIDs(pending)
			o.RecomputeCategories()
			o.UpdatedAt = now
		},
	)
	if err != nil {
		return nil, translateStoreErr(err, did)
	}

	s.pushChainScopes(ctx, effects, updated)
	s.sendActivationMail(ctx, effects, updated, pending)

	s.emitAudit(ctx, audit.Event{
		Action:         audit.ActionServicesActivated,
		OrganizationID: did,
		Detail:         map[string]any{"serviceIds": pending},
	})
	s.metrics.IncrementOp("activate_services")
	s.metrics.AddActiveServices(len(pending))

	result.Profile = updated.Profile
	result.ActivatedServiceIDs = updated.ActivatedServiceIDs
	result.CreatedAt = updated.CreatedAt
	result.UpdatedAt = updated.UpdatedAt
	return result, nil
}

// provisionClient creates the auth client and grant for one service,
// best-effort. Returns nil when provisioning failed.
func (s *Service) provisionClient(ctx context.Context, effects *SideEffects, org *models.Organization, svc models.Service) (*models.AuthClient, *ProvisionedAuthClient) {
	var provisioned *authclient.ProvisionedClient
	s.effect(ctx, effects, "provision_auth_client", []any{"service_id", svc.ID}, func() error {
		var err error
		provisioned, err = s.provisioner.CreateClient(ctx, authclient.ClientSpec{
			OrganizationDID: org.DID.String(),
			ServiceID:       svc.ID,
			ServiceType:     svc.Type.String(),
			Name:            org.Profile.Name + " " + svc.ID,
		})
		return err
	})
	if provisioned == nil {
		return nil, nil
	}

	var grantIDs []string
	s.effect(ctx, effects, "create_client_grant", []any{"client_id", provisioned.ClientID}, func() error {
		grant, err := s.provisioner.CreateGrant(ctx, provisioned.ClientID,
			s.chainAudience, chainScopeStrings(org, svc))
		if err != nil {
			return err
		}
		grantIDs = append(grantIDs, grant.GrantID)
		return nil
	})

	hash, err := secrets.Hash(provisioned.ClientSecret)
	if err != nil {
		hash = ""
	}
	record := &models.AuthClient{
		Type:             "agent",
		ClientType:       provisioned.ClientType,
		ClientID:         provisioned.ClientID,
		ClientSecretHash: hash,
		ServiceID:        svc.ID,
		ClientGrantIDs:   grantIDs,
	}
	return record, &ProvisionedAuthClient{
		ClientID:     provisioned.ClientID,
		ClientSecret: provisioned.ClientSecret,
		ClientType:   provisioned.ClientType,
		ServiceID:    svc.ID,
	}
}

// sendActivationMail sends one general activation notification to the org's
// group plus one per distinct CAO referenced by the newly active services.
func (s *Service) sendActivationMail(ctx context.Context, effects *SideEffects, org *models.Organization, activated []string) {
	s.effect(ctx, effects, "notify_group", []any{"service_ids", activated}, func() error {
		return s.sendToGroup(ctx, org.DID, func(recipient string) notify.Email {
			return notify.ServicesActivated(recipient, org.Profile.Name, activated)
		})
	})

	seen := make(map[domain.DID]bool)
	for _, id := range activated {
		svc, ok := org.FindService(id)
		if !ok {
			continue
		}
		ref, isRef := svc.EndpointRef()
		if !isRef || seen[ref.DID] {
			continue
		}
		seen[ref.DID] = true
		s.effect(ctx, effects, "notify_cao", []any{"cao_did", ref.DID.String()}, func() error {
			return s.sendToGroup(ctx, ref.DID, func(recipient string) notify.Email {
				return notify.ServicesActivated(recipient, org.Profile.Name, activated)
			})
		})
	}
}

func normalizeIDs(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = domain.NormalizeServiceID(id)
	}
	return pstrings.DedupeAndTrim(out)
}
