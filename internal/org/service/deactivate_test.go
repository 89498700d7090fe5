package service

import (
	"registrar/internal/org/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
)

func (s *ServiceSuite) TestDeactivateServices() {
	s.Run("deactivating the only agent operator removes the full scope universe", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:     orgDID,
			Profile: models.Profile{Name: "Acme"},
			IDs:     models.Identifiers{EthereumAccount: "0xacc1"},
			Services: []models.Service{{
				ID:              "#agent-1",
				Type:            domain.ServiceTypeCredentialAgentOperator,
				ServiceEndpoint: "https://agent.acme.example",
			}},
			ActivatedServiceIDs: []string{"#agent-1"},
		})
		s.reloadCategories(orgDID)

		result, err := s.service.DeactivateServices(s.ctx, s.adminScope(), orgDID, []string{"#agent-1"})
		s.Require().NoError(err)
		s.Empty(result.ActivatedServiceIDs)
		s.Empty(result.Profile.PermittedServiceCategories)

		updates := s.chainUpdates.Updates()
		s.Require().Len(updates, 1)
		s.Empty(updates[0].ScopesToAdd)
		s.Len(updates[0].ScopesToRemove, 6,
			"the whole managed universe is removed when nothing stays active")
	})

	s.Run("revokes grants but keeps the client record", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:     orgDID,
			Profile: models.Profile{Name: "Acme"},
			Services: []models.Service{{
				ID:              "#agent-1",
				Type:            domain.ServiceTypeCredentialAgentOperator,
				ServiceEndpoint: "https://agent.acme.example",
			}},
			ActivatedServiceIDs: []string{"#agent-1"},
			AuthClients: []models.AuthClient{
				{Type: "agent", ClientID: "svc-client", ServiceID: "#agent-1", ClientGrantIDs: []string{"grant-1", "grant-2"}},
			},
		})

		result, err := s.service.DeactivateServices(s.ctx, s.adminScope(), orgDID, []string{"#agent-1"})
		s.Require().NoError(err)

		var revoked int
		for _, effect := range result.SideEffects {
			if effect.Name == "delete_client_grant" {
				revoked++
				s.NoError(effect.Err)
			}
		}
		s.Equal(2, revoked)

		client, ok := s.reload(orgDID).AuthClientForService("#agent-1")
		s.Require().True(ok, "client record survives deactivation")
		s.Equal("svc-client", client.ClientID)
		s.Empty(client.ClientGrantIDs)
	})

	s.Run("unknown id is reported before inactive ids", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{issuerService("#svc-issuer-1")},
		})

		_, err := s.service.DeactivateServices(s.ctx, s.adminScope(), orgDID,
			[]string{"#missing", "#svc-issuer-1"})
		s.Require().Error(err)
		s.Equal(dErrors.ReasonUnknownServiceID, dErrors.Reason(err))
		s.Contains(err.Error(), "#missing")
	})

	s.Run("inactive id fails the whole call", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:                 orgDID,
			Profile:             models.Profile{Name: "Acme"},
			Services:            []models.Service{issuerService("#svc-issuer-1"), issuerService("#svc-issuer-2")},
			ActivatedServiceIDs: []string{"#svc-issuer-1"},
		})

		_, err := s.service.DeactivateServices(s.ctx, s.adminScope(), orgDID,
			[]string{"#svc-issuer-1", "#svc-issuer-2"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(dErrors.ReasonServiceNotActive, dErrors.Reason(err))
		s.Contains(err.Error(), "#svc-issuer-2")

		s.Equal([]string{"#svc-issuer-1"}, s.reload(orgDID).ActivatedServiceIDs,
			"nothing was deactivated")
	})
}
