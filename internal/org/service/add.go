package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"registrar/internal/audit"
	"registrar/internal/consent"
	"registrar/internal/invitation"
	"registrar/internal/notify"
	"registrar/internal/org/models"
	"registrar/internal/scope"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

// AddServiceRequest carries the new service plus the add-time options.
type AddServiceRequest struct {
	Service        models.Service
	InvitationCode string
	Activate       bool
}

// ProvisionedAuthClient is returned once, with the cleartext secret. Only
// the hash is persisted.
type ProvisionedAuthClient struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	ClientType   string `json:"clientType"`
	ServiceID    string `json:"serviceId"`
}

// AddServiceResult reports the stored service, the auth client when one was
// provisioned, and the recorded side-effect outcomes.
type AddServiceResult struct {
	Service     models.Service
	AuthClient  *ProvisionedAuthClient
	SideEffects SideEffects
}

// AddService appends a service to the organization's service list.
//
// The organization write is the correctness boundary: everything before it
// fails the request, everything after it (provisioning, chain scopes,
// consent, monitors, mail) is best-effort and recorded on the result.
func (s *Service) AddService(ctx context.Context, sc scope.Scope, did domain.DID, req AddServiceRequest) (*AddServiceResult, error) {
	ctx, span := s.tracer.Start(ctx, "org.AddService")
	defer span.End()

	if err := requireScope(sc, did); err != nil {
		return nil, err
	}
	if _, _, err := s.loadOrganization(ctx, did); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	svc := req.Service
	svc.ID = domain.NormalizeServiceID(svc.ID)
	svc.CreatedAt = now
	svc.UpdatedAt = now

	if err := s.validateService(ctx, &svc); err != nil {
		return nil, err
	}

	inv := s.lookupInvitation(ctx, req.InvitationCode, now)
	if inv != nil {
		svc.InvitationID = inv.InvitationID
	}

	org, err := s.orgs.Execute(ctx, did,
		func(o *models.Organization) error {
			if o.HasService(svc.ID) {
				return dErrors.NewWithReason(dErrors.CodeBadRequest,
					dErrors.ReasonServiceIDExists, "service id "+svc.ID+" already exists")
			}
			return nil
		},
		func(o *models.Organization) {
			o.AppendService(svc)
			o.RecomputeCategories()
			o.UpdatedAt = now
		},
	)
	if err != nil {
		return nil, translateStoreErr(err, did)
	}

	result := &AddServiceResult{Service: svc}
	effects := &result.SideEffects

	if inv != nil {
		s.effect(ctx, effects, "accept_invitation", []any{"invitation_id", inv.InvitationID}, func() error {
			if err := s.invitations.MarkAccepted(ctx, inv.InvitationID, did, now); err != nil {
				return err
			}
			s.emitAudit(ctx, audit.Event{
				Action:         audit.ActionInvitationAccepted,
				OrganizationID: did,
				ServiceID:      svc.ID,
				Detail:         map[string]any{"invitationId": inv.InvitationID},
			})
			return nil
		})
	}

	if req.Activate && svc.Type.RequiresAuthClient() {
		org, result.AuthClient = s.activateWithAuthClient(ctx, effects, org, svc, now)
	}

	s.pushChainScopes(ctx, effects, org)
	s.recordConsent(ctx, effects, org, svc, now)
	s.notifyAndMonitor(ctx, effects, org, svc)

	s.emitAudit(ctx, audit.Event{
		Action:         audit.ActionServiceAdded,
		OrganizationID: did,
		ServiceID:      svc.ID,
		Detail:         map[string]any{"type": svc.Type.String(), "activated": req.Activate},
	})
	s.metrics.IncrementOp("add_service")

	return result, nil
}

// lookupInvitation resolves an optional invitation code. A missing, already
// consumed, or expired invitation is silently ignored; the code is an
// enrichment, not a reference.
func (s *Service) lookupInvitation(ctx context.Context, code string, now time.Time) *invitation.Invitation {
	if code == "" {
		return nil
	}
	inv, err := s.invitations.FindByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "invitation lookup failed", "error", err)
		}
		return nil
	}
	if inv.Accepted() || inv.Expired(now) {
		return nil
	}
	return inv
}

// activateWithAuthClient provisions machine credentials for the new service
// and, when provisioning succeeds, activates it in the same stored mutation
// that records the client. Every step is best-effort: a provisioning failure
// leaves the service added but inactive.
func (s *Service) activateWithAuthClient(
	ctx context.Context,
	effects *SideEffects,
	org *models.Organization,
	svc models.Service,
	now time.Time,
) (*models.Organization, *ProvisionedAuthClient) {
	record, provisioned := s.provisionClient(ctx, effects, org, svc)
	if record == nil {
		return org, nil
	}

	updated := org
	s.effect(ctx, effects, "activate_service", []any{"service_id", svc.ID}, func() error {
		var execErr error
		updated, execErr = s.orgs.Execute(ctx, org.DID,
			func(o *models.Organization) error { return nil },
			func(o *models.Organization) {
				o.AuthClients = append(o.AuthClients, *record)
				o.ActivateServiceIDs([]string{svc.ID})
				o.RecomputeCategories()
				o.UpdatedAt = now
			},
		)
		if execErr != nil {
			updated = org
		}
		return execErr
	})
	s.metrics.AddActiveServices(1)

	return updated, provisioned
}

// chainScopeStrings is the grant scope list for a client: the chain scopes
// the service's type would contribute once active.
func chainScopeStrings(org *models.Organization, svc models.Service) []string {
	changes := domain.DeriveChainScopes(append(org.ActiveServiceTypes(), svc.Type))
	out := make([]string, len(changes.ScopesToAdd))
	for i, scope := range changes.ScopesToAdd {
		out[i] = string(scope)
	}
	return out
}

// pushChainScopes reconciles on-chain permissions with the organization's
// active services. Recomputed from scratch on every mutation.
func (s *Service) pushChainScopes(ctx context.Context, effects *SideEffects, org *models.Organization) {
	if org.IDs.EthereumAccount == "" {
		return
	}
	changes := domain.DeriveChainScopes(org.ActiveServiceTypes())
	s.effect(ctx, effects, "update_chain_scopes", []any{"address", org.IDs.EthereumAccount}, func() error {
		return s.chain.UpdateAddressScopes(ctx, chainUpdate(org.IDs.EthereumAccount, changes))
	})
}

// recordConsent appends a consent entry for consent-requiring categories.
func (s *Service) recordConsent(ctx context.Context, effects *SideEffects, org *models.Organization, svc models.Service, now time.Time) {
	consentType, required := consent.TypeForCategory(svc.Type.Category())
	if !required {
		return
	}
	s.effect(ctx, effects, "record_consent", []any{"service_id", svc.ID}, func() error {
		version, err := s.consents.LatestVersion(ctx, org.DID, svc.ID)
		if err != nil {
			return err
		}
		record := consent.Consent{
			ConsentID:      newConsentID(),
			OrganizationID: org.DID,
			ServiceID:      svc.ID,
			Type:           consentType,
			UserID:         requestcontext.Caller(ctx).Subject,
			Version:        version + 1,
			CreatedAt:      now,
		}
		if err := s.consents.Append(ctx, record); err != nil {
			return err
		}
		s.emitAudit(ctx, audit.Event{
			Action:         audit.ActionConsentCreated,
			OrganizationID: org.DID,
			ServiceID:      svc.ID,
			Detail:         map[string]any{"consentId": record.ConsentID, "version": record.Version},
		})
		return nil
	})
}

// notifyAndMonitor fans out the fire-and-forget work for a new service: a
// monitor registration for probeable endpoints, a notification to the org's
// group, and a second notification to the referenced CAO's admins when the
// endpoint is a service reference. The three are independent failures.
func (s *Service) notifyAndMonitor(ctx context.Context, effects *SideEffects, org *models.Organization, svc models.Service) {
	var (
		monitorErr error
		groupErr   error
		caoErr     error
		ranMonitor bool
		ranCAO     bool
	)

	g, gctx := errgroup.WithContext(ctx)
	if svc.ExternallyReachable() {
		ranMonitor = true
		g.Go(func() error {
			ref := domain.ServiceRef{DID: org.DID, Fragment: svc.ID}
			monitorErr = s.monitors.RegisterMonitor(gctx, ref, svc.ServiceEndpoint)
			return nil
		})
	}
	g.Go(func() error {
		groupErr = s.sendToGroup(gctx, org.DID, func(recipient string) notify.Email {
			return notify.ServiceAdded(recipient, org.Profile.Name, svc.ID, svc.Type.String())
		})
		return nil
	})
	if ref, ok := svc.EndpointRef(); ok {
		ranCAO = true
		g.Go(func() error {
			caoErr = s.sendToGroup(gctx, ref.DID, func(recipient string) notify.Email {
				return notify.ServiceAdded(recipient, org.Profile.Name, svc.ID, svc.Type.String())
			})
			return nil
		})
	}
	_ = g.Wait()

	if ranMonitor {
		s.effect(ctx, effects, "register_monitor", []any{"service_id", svc.ID}, func() error { return monitorErr })
	}
	s.effect(ctx, effects, "notify_group", []any{"service_id", svc.ID}, func() error { return groupErr })
	if ranCAO {
		s.effect(ctx, effects, "notify_cao", []any{"service_id", svc.ID}, func() error { return caoErr })
	}
}

// sendToGroup mails every client admin of the group owning did.
func (s *Service) sendToGroup(ctx context.Context, did domain.DID, build func(recipient string) notify.Email) error {
	group, err := s.groups.FindByDID(ctx, did)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return err
	}
	var firstErr error
	for _, admin := range group.ClientAdminIDs {
		if err := s.dispatcher.Send(ctx, build(admin)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
