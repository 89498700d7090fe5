package service

import (
	"registrar/internal/org/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
)

func (s *ServiceSuite) TestActivateServices() {
	s.Run("activating a node operator sends one email and an empty scope add", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:     orgDID,
			Profile: models.Profile{Name: "Acme"},
			IDs:     models.Identifiers{EthereumAccount: "0xacc1"},
			Services: []models.Service{{
				ID:              "#node-1",
				Type:            domain.ServiceTypeNodeOperator,
				ServiceEndpoint: "https://node.acme.example",
			}},
		})
		s.seedGroup(orgDID, "admin@acme.example")

		result, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID, []string{"#node-1"})
		s.Require().NoError(err)
		s.True(result.Changed)
		s.Equal([]string{"#node-1"}, result.ActivatedServiceIDs)

		s.Len(s.dispatcher.Sent(), 1)

		updates := s.chainUpdates.Updates()
		s.Require().Len(updates, 1)
		s.Empty(updates[0].ScopesToAdd, "node operators imply no chain scopes")
		s.Len(updates[0].ScopesToRemove, 6)

		org := s.reload(orgDID)
		s.Equal([]domain.ServiceCategory{domain.CategoryNodeOperator},
			org.Profile.PermittedServiceCategories)
	})

	s.Run("activating already active ids is a no-op", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:                 orgDID,
			Profile:             models.Profile{Name: "Acme"},
			Services:            []models.Service{issuerService("#svc-issuer-1")},
			ActivatedServiceIDs: []string{"#svc-issuer-1"},
		})
		s.seedGroup(orgDID, "admin@acme.example")

		result, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID, []string{"#svc-issuer-1"})
		s.Require().NoError(err)
		s.False(result.Changed)
		s.Empty(result.SideEffects)
		s.Empty(s.dispatcher.Sent())
		s.Empty(s.chainUpdates.Updates())
		s.Zero(s.provisioner.ClientCount())
	})

	s.Run("unknown id fails before anything is persisted", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{issuerService("#svc-issuer-1")},
		})

		_, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID,
			[]string{"#svc-issuer-1", "#missing"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(dErrors.ReasonUnknownServiceID, dErrors.Reason(err))
		s.Contains(err.Error(), string(orgDID))
		s.Contains(err.Error(), "#missing")
		s.Empty(s.reload(orgDID).ActivatedServiceIDs)
	})

	s.Run("provisions a client for newly active agent operators", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:     orgDID,
			Profile: models.Profile{Name: "Acme"},
			Services: []models.Service{{
				ID:              "#agent-1",
				Type:            domain.ServiceTypeCredentialAgentOperator,
				ServiceEndpoint: "https://agent.acme.example",
			}},
		})

		result, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID, []string{"#agent-1"})
		s.Require().NoError(err)
		s.Require().Len(result.AuthClients, 1)
		s.NotEmpty(result.AuthClients[0].ClientSecret)
		s.Equal(1, s.provisioner.ClientCount())
		s.Equal(1, s.provisioner.GrantCount())

		client, ok := s.reload(orgDID).AuthClientForService("#agent-1")
		s.Require().True(ok)
		s.Len(client.ClientGrantIDs, 1)
	})

	s.Run("does not reprovision an existing client", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:     orgDID,
			Profile: models.Profile{Name: "Acme"},
			Services: []models.Service{{
				ID:              "#agent-1",
				Type:            domain.ServiceTypeCredentialAgentOperator,
				ServiceEndpoint: "https://agent.acme.example",
			}},
			AuthClients: []models.AuthClient{
				{Type: "agent", ClientID: "kept", ServiceID: "#agent-1"},
			},
		})

		result, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID, []string{"#agent-1"})
		s.Require().NoError(err)
		s.Empty(result.AuthClients)
		s.Zero(s.provisioner.ClientCount())
	})

	s.Run("mails the referenced agent operator once", func() {
		s.SetupTest()
		s.seedCAO()
		s.seedGroup(caoDID, "cao-admin@agent.example")
		s.seedGroup(orgDID, "admin@acme.example")

		issuerA := issuerService("#svc-issuer-1")
		issuerA.ServiceEndpoint = string(caoDID) + "#cao-1"
		issuerB := issuerService("#svc-issuer-2")
		issuerB.ServiceEndpoint = string(caoDID) + "#cao-1"
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{issuerA, issuerB},
		})

		_, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID,
			[]string{"#svc-issuer-1", "#svc-issuer-2"})
		s.Require().NoError(err)

		// one general notification plus one for the shared operator
		s.Len(s.dispatcher.Sent(), 2)
	})
}

func (s *ServiceSuite) TestActivateServicesNotCustodied() {
	didDoc := &domain.DIDDocument{
		ID: orgDID,
		Service: []domain.DIDDocService{
			{ID: "#svc-issuer-1", Type: "VlcCareerIssuer_v1", ServiceEndpoint: "https://issuer.example.com/api"},
		},
	}

	s.Run("requires a DLT transaction key", func() {
		s.SetupTest()
		s.resolver.Register(orgDID, didDoc)
		s.seedOrg(&models.Organization{
			DID:             orgDID,
			DIDNotCustodied: true,
			Profile:         models.Profile{Name: "Acme"},
			Services:        []models.Service{issuerService("#svc-issuer-1")},
		})

		_, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID, []string{"#svc-issuer-1"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(dErrors.ReasonNoRequiredPurpose, dErrors.Reason(err))
	})

	s.Run("requires the id in the resolved document", func() {
		s.SetupTest()
		s.resolver.Register(orgDID, didDoc)
		other := issuerService("#svc-issuer-9")
		s.seedOrg(&models.Organization{
			DID:             orgDID,
			DIDNotCustodied: true,
			Profile:         models.Profile{Name: "Acme"},
			Services:        []models.Service{other},
			Keys: []models.Key{
				{ID: "#key-1", Purposes: []string{models.KeyPurposeDLTTransactions}},
			},
		})

		_, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID, []string{"#svc-issuer-9"})
		s.Require().Error(err)
		s.Equal(dErrors.ReasonUnknownServiceID, dErrors.Reason(err))
	})

	s.Run("activates when the document and key line up", func() {
		s.SetupTest()
		s.resolver.Register(orgDID, didDoc)
		s.seedOrg(&models.Organization{
			DID:             orgDID,
			DIDNotCustodied: true,
			Profile:         models.Profile{Name: "Acme"},
			Services:        []models.Service{issuerService("#svc-issuer-1")},
			Keys: []models.Key{
				{ID: "#key-1", Purposes: []string{models.KeyPurposeDLTTransactions}},
			},
		})

		result, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID, []string{"#svc-issuer-1"})
		s.Require().NoError(err)
		s.Equal([]string{"#svc-issuer-1"}, result.ActivatedServiceIDs)
	})

	s.Run("resolution failure is a bad request", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:             orgDID,
			DIDNotCustodied: true,
			Profile:         models.Profile{Name: "Acme"},
			Services:        []models.Service{issuerService("#svc-issuer-1")},
		})

		_, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID, []string{"#svc-issuer-1"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(dErrors.ReasonDIDResolutionFailed, dErrors.Reason(err))
	})
}
