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

// UpdateServicePatch carries the mutable service fields. ID and Type are
// present only to reject attempts to change them: both are immutable.
type UpdateServicePatch struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`

	ServiceEndpoint string   `json:"serviceEndpoint,omitempty"`
	CredentialTypes []string `json:"credentialTypes,omitempty"`

	LogoURL                    string   `json:"logoUrl,omitempty"`
	PlayStoreURL               string   `json:"playStoreUrl,omitempty"`
	AppleAppStoreURL           string   `json:"appleAppStoreUrl,omitempty"`
	AppleAppID                 string   `json:"appleAppId,omitempty"`
	GooglePlayID               string   `json:"googlePlayId,omitempty"`
	SupportedExchangeProtocols []string `json:"supportedExchangeProtocols,omitempty"`
	Name                       string   `json:"name,omitempty"`
}

// apply merges the patch onto a copy of the stored service. Empty patch
// fields leave the stored value in place.
func (p UpdateServicePatch) apply(svc models.Service) models.Service {
	if p.ServiceEndpoint != "" {
		svc.ServiceEndpoint = p.ServiceEndpoint
	}
	if p.CredentialTypes != nil {
		svc.CredentialTypes = append([]string(nil), p.CredentialTypes...)
	}
	if p.LogoURL != "" {
		svc.LogoURL = p.LogoURL
	}
	if p.PlayStoreURL != "" {
		svc.PlayStoreURL = p.PlayStoreURL
	}
	if p.AppleAppStoreURL != "" {
		svc.AppleAppStoreURL = p.AppleAppStoreURL
	}
	if p.AppleAppID != "" {
		svc.AppleAppID = p.AppleAppID
	}
	if p.GooglePlayID != "" {
		svc.GooglePlayID = p.GooglePlayID
	}
	if p.SupportedExchangeProtocols != nil {
		svc.SupportedExchangeProtocols = append([]string(nil), p.SupportedExchangeProtocols...)
	}
	if p.Name != "" {
		svc.Name = p.Name
	}
	return svc
}

// UpdateService applies a patch to an existing service. Activation state and
// provisioning are untouched; only the mutable fields change.
func (s *Service) UpdateService(ctx context.Context, sc scope.Scope, did domain.DID, serviceID string, patch UpdateServicePatch) (*models.Service, error) {
	ctx, span := s.tracer.Start(ctx, "org.UpdateService")
	defer span.End()

	if err := requireScope(sc, did); err != nil {
		return nil, err
	}

	if patch.ID != "" {
		return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonServiceIDImmutable, "service id cannot be updated")
	}
	if patch.Type != "" {
		return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonServiceTypeImmutable, "service type cannot be updated")
	}

	if _, _, err := s.loadOrganization(ctx, did); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	serviceID = domain.NormalizeServiceID(serviceID)

	var updated models.Service
	_, err := s.orgs.Execute(ctx, did,
		func(o *models.Organization) error {
			stored, ok := o.FindService(serviceID)
			if !ok {
				return dErrors.NewWithReason(dErrors.CodeNotFound,
					dErrors.ReasonUnknownServiceID, "no service "+serviceID+" on "+did.String())
			}
			merged := patch.apply(*stored)
			merged.UpdatedAt = now
			if err := s.validateService(ctx, &merged); err != nil {
				return err
			}
			updated = merged
			return nil
		},
		func(o *models.Organization) {
			stored, _ := o.FindService(serviceID)
			*stored = updated
			o.UpdatedAt = now
		},
	)
	if err != nil {
		return nil, translateStoreErr(err, did)
	}

	s.emitAudit(ctx, audit.Event{
		Action:         audit.ActionServiceUpdated,
		OrganizationID: did,
		ServiceID:      serviceID,
	})
	s.metrics.IncrementOp("update_service")

	return &updated, nil
}
