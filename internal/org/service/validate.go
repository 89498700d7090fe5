package service

import (
	"context"
	"errors"
	"strings"

	"registrar/internal/org/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// validateEndpoint checks a service endpoint: either an absolute https URL,
// or a DID service reference that resolves to an existing service of
// Credential Agent Operator type on the referenced organization.
func (s *Service) validateEndpoint(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonMissingRequiredField, "missing required field serviceEndpoint")
	}

	if strings.HasPrefix(endpoint, "did:") {
		ref, ok := domain.ParseServiceRef(endpoint)
		if !ok {
			return dErrors.NewWithReason(dErrors.CodeBadRequest,
				dErrors.ReasonEndpointMustBeRef,
				"a DID-valued serviceEndpoint must reference a service: did:...#fragment")
		}
		return s.validateEndpointRef(ctx, ref)
	}

	return models.ValidateEndpointURL(endpoint)
}

func (s *Service) validateEndpointRef(ctx context.Context, ref domain.ServiceRef) error {
	target, err := s.orgs.FindByServiceRef(ctx, ref)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.NewWithReason(dErrors.CodeBadRequest,
				dErrors.ReasonEndpointRefNotFound,
				"referenced organization "+ref.DID.String()+" not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "endpoint reference lookup failed")
	}

	svc, ok := target.FindService(ref.Fragment)
	if !ok {
		return dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonEndpointRefNotFound,
			"no service "+ref.Fragment+" on "+ref.DID.String())
	}
	if svc.Type != domain.ServiceTypeCredentialAgentOperator {
		return dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonEndpointInvalid,
			"referenced service "+ref.String()+" is not a credential agent operator")
	}
	return nil
}

// validateCredentialTypes rejects declared credential types unknown to the
// registry, naming every offender.
func (s *Service) validateCredentialTypes(ctx context.Context, types []string) error {
	unknown := s.credTypes.Unknown(ctx, types)
	if len(unknown) == 0 {
		return nil
	}
	return dErrors.NewWithReason(dErrors.CodeBadRequest,
		dErrors.ReasonUnsupportedCredentialTypes,
		"unsupported credential types: "+strings.Join(unknown, ", "))
}

// validateService runs the full add/update validation set on a merged
// service record.
func (s *Service) validateService(ctx context.Context, svc *models.Service) error {
	if !svc.Type.IsValid() {
		return dErrors.New(dErrors.CodeBadRequest, "unsupported service type: "+svc.Type.String())
	}
	if err := s.validateEndpoint(ctx, svc.ServiceEndpoint); err != nil {
		return err
	}
	if err := svc.ValidateRequiredFields(); err != nil {
		return err
	}
	return s.validateCredentialTypes(ctx, svc.CredentialTypes)
}
