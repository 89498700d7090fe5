package service

import (
	"context"
	"time"

	"registrar/internal/invitation"
	"registrar/internal/org/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
)

func (s *ServiceSuite) TestAddService() {
	s.Run("stores the service inactive with recomputed categories", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})
		s.seedGroup(orgDID, "admin@acme.example")

		result, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
			Service: issuerService("svc-issuer-1"),
		})
		s.Require().NoError(err)
		s.Equal("#svc-issuer-1", result.Service.ID)
		s.Nil(result.AuthClient)

		org := s.reload(orgDID)
		s.True(org.HasService("#svc-issuer-1"))
		s.Empty(org.ActivatedServiceIDs, "adding never activates an issuer")
		s.Empty(org.Profile.PermittedServiceCategories, "inactive services contribute no categories")
		s.Len(s.dispatcher.Sent(), 1)
	})

	s.Run("every activated id references a stored service", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		svc := models.Service{
			ID:              "agent-1",
			Type:            domain.ServiceTypeCredentialAgentOperator,
			ServiceEndpoint: "https://agent.acme.example",
		}
		result, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
			Service:  svc,
			Activate: true,
		})
		s.Require().NoError(err)
		s.Require().NotNil(result.AuthClient)
		s.NotEmpty(result.AuthClient.ClientSecret)

		org := s.reload(orgDID)
		for _, id := range org.ActivatedServiceIDs {
			s.True(org.HasService(id))
		}
		s.Equal([]string{"#agent-1"}, org.ActivatedServiceIDs)
		s.Equal([]domain.ServiceCategory{domain.CategoryCredentialAgentOperator},
			org.Profile.PermittedServiceCategories)

		client, ok := org.AuthClientForService("#agent-1")
		s.Require().True(ok)
		s.NotEmpty(client.ClientSecretHash)
		s.NotContains(client.ClientSecretHash, result.AuthClient.ClientSecret)
	})

	s.Run("duplicate id is rejected", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{issuerService("#svc-issuer-1")},
		})

		for _, id := range []string{"#svc-issuer-1", string(orgDID) + "#svc-issuer-1"} {
			_, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
				Service: issuerService(id),
			})
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
			s.Equal(dErrors.ReasonServiceIDExists, dErrors.Reason(err))
		}
		s.Len(s.reload(orgDID).Services, 1)
	})

	s.Run("unsupported credential types are rejected", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		svc := issuerService("svc-issuer-1")
		svc.CredentialTypes = []string{"CurrentEmploymentPosition", "MadeUpCredential"}
		_, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{Service: svc})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(dErrors.ReasonUnsupportedCredentialTypes, dErrors.Reason(err))
		s.Contains(err.Error(), "MadeUpCredential")
		s.Empty(s.reload(orgDID).Services)
	})

	s.Run("endpoint ref must point at an agent operator service", func() {
		s.SetupTest()
		s.seedCAO()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		svc := issuerService("svc-issuer-1")
		svc.ServiceEndpoint = string(caoDID) + "#cao-1"
		_, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{Service: svc})
		s.Require().NoError(err)

		svc = issuerService("svc-issuer-2")
		svc.ServiceEndpoint = string(caoDID) + "#missing"
		_, err = s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{Service: svc})
		s.Require().Error(err)
		s.Equal(dErrors.ReasonEndpointRefNotFound, dErrors.Reason(err))
	})

	s.Run("valid invitation code is consumed", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})
		s.Require().NoError(s.invitations.Create(context.Background(), &invitation.Invitation{
			InvitationID: "inv-1",
			Code:         "WELCOME",
			InviterDID:   caoDID,
			ExpiresAt:    s.now.Add(time.Hour),
		}))

		result, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
			Service:        issuerService("svc-issuer-1"),
			InvitationCode: "WELCOME",
		})
		s.Require().NoError(err)
		s.Equal("inv-1", result.Service.InvitationID)

		inv, err := s.invitations.FindByCode(context.Background(), "WELCOME")
		s.Require().NoError(err)
		s.True(inv.Accepted())
		s.Equal(orgDID, inv.AcceptedBy)
	})

	s.Run("expired invitation code is silently ignored", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})
		s.Require().NoError(s.invitations.Create(context.Background(), &invitation.Invitation{
			InvitationID: "inv-2",
			Code:         "STALE",
			InviterDID:   caoDID,
			ExpiresAt:    s.now.Add(-time.Hour),
		}))

		result, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
			Service:        issuerService("svc-issuer-1"),
			InvitationCode: "STALE",
		})
		s.Require().NoError(err)
		s.Empty(result.Service.InvitationID)
	})

	s.Run("out of scope DID reads as not found", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		sc := s.adminScope()
		sc.Unrestricted = false
		sc.DIDs = []domain.DID{"did:ion:someone-else"}
		_, err := s.service.AddService(s.ctx, sc, orgDID, AddServiceRequest{
			Service: issuerService("svc-issuer-1"),
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal(dErrors.ReasonCannotAccessGroup, dErrors.Reason(err))
	})
}

func (s *ServiceSuite) TestAddServiceChainScopes() {
	s.Run("issuer activation pushes the issuer scope set", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:     orgDID,
			Profile: models.Profile{Name: "Acme"},
			IDs:     models.Identifiers{EthereumAccount: "0xacc1"},
		})

		_, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
			Service: issuerService("svc-issuer-1"),
		})
		s.Require().NoError(err)

		updates := s.chainUpdates.Updates()
		s.Require().Len(updates, 1)
		s.Equal("0xacc1", updates[0].Address)
		s.Empty(updates[0].ScopesToAdd, "inactive issuer implies no scopes yet")
		s.Len(updates[0].ScopesToRemove, 6)
	})

	s.Run("no ethereum account means no chain call", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		_, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
			Service: issuerService("svc-issuer-1"),
		})
		s.Require().NoError(err)
		s.Empty(s.chainUpdates.Updates())
	})
}

func (s *ServiceSuite) TestAddServiceRecordsConsent() {
	s.SetupTest()
	s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

	_, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
		Service: issuerService("svc-issuer-1"),
	})
	s.Require().NoError(err)

	consents, err := s.consents.ListByOrganization(context.Background(), orgDID)
	s.Require().NoError(err)
	s.Require().Len(consents, 1)
	s.Equal("#svc-issuer-1", consents[0].ServiceID)
	s.Equal(1, consents[0].Version)
}

func (s *ServiceSuite) TestAddServiceRequiredFields() {
	holderApp := func() models.Service {
		return models.Service{
			ID:                         "#holder-1",
			Type:                       domain.ServiceTypeHolderAppProvider,
			ServiceEndpoint:            "https://wallet.acme.example",
			LogoURL:                    "https://wallet.acme.example/logo.png",
			PlayStoreURL:               "https://play.google.com/store/apps/details?id=com.acme.wallet",
			AppleAppStoreURL:           "https://apps.apple.com/app/id123456",
			AppleAppID:                 "id123456",
			GooglePlayID:               "com.acme.wallet",
			SupportedExchangeProtocols: []string{"VN_API"},
		}
	}

	s.Run("complete holder app provider is accepted", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		_, err := s.service.AddService(s.ctx, s.adminScope(), orgDID,
			AddServiceRequest{Service: holderApp()})
		s.Require().NoError(err)
		s.True(s.reload(orgDID).HasService("#holder-1"))
	})

	s.Run("holder app provider without a play store url names the field", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		svc := holderApp()
		svc.PlayStoreURL = ""
		_, err := s.service.AddService(s.ctx, s.adminScope(), orgDID,
			AddServiceRequest{Service: svc})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(dErrors.ReasonMissingRequiredField, dErrors.Reason(err))
		s.Contains(err.Error(), "playStoreUrl")
		s.False(s.reload(orgDID).HasService("#holder-1"))
	})

	s.Run("holder app provider without exchange protocols names the field", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		svc := holderApp()
		svc.SupportedExchangeProtocols = nil
		_, err := s.service.AddService(s.ctx, s.adminScope(), orgDID,
			AddServiceRequest{Service: svc})
		s.Require().Error(err)
		s.Equal(dErrors.ReasonMissingRequiredField, dErrors.Reason(err))
		s.Contains(err.Error(), "supportedExchangeProtocols")
	})

	s.Run("web wallet provider without a name names the field", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		_, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
			Service: models.Service{
				ID:              "#wallet-1",
				Type:            domain.ServiceTypeWebWalletProvider,
				ServiceEndpoint: "https://webwallet.acme.example",
				LogoURL:         "https://webwallet.acme.example/logo.png",
			},
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(dErrors.ReasonMissingRequiredField, dErrors.Reason(err))
		s.Contains(err.Error(), "name")
	})

	s.Run("web wallet provider with name and logo is accepted", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		result, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
			Service: models.Service{
				ID:              "#wallet-1",
				Type:            domain.ServiceTypeWebWalletProvider,
				ServiceEndpoint: "https://webwallet.acme.example",
				LogoURL:         "https://webwallet.acme.example/logo.png",
				Name:            "Acme Web Wallet",
			},
		})
		s.Require().NoError(err)
		s.Equal("#wallet-1", result.Service.ID)
	})
}
