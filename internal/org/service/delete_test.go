package service

import (
	"registrar/internal/org/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
)

func (s *ServiceSuite) TestDeleteService() {
	s.Run("removing the only service clears categories and activation", func() {
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
			AuthClients: []models.AuthClient{
				{Type: "REGISTRAR", ClientID: "org-client"},
				{Type: "agent", ClientID: "svc-client", ServiceID: "#agent-1", ClientGrantIDs: []string{"grant-1"}},
			},
		})
		s.reloadCategories(orgDID)

		result, err := s.service.DeleteService(s.ctx, s.adminScope(), orgDID, "#agent-1")
		s.Require().NoError(err)
		s.True(result.RemovedAuthClient)

		org := s.reload(orgDID)
		s.Empty(org.Services)
		s.Empty(org.ActivatedServiceIDs)
		s.Empty(org.Profile.PermittedServiceCategories)

		s.Require().Len(org.AuthClients, 1, "org-level client survives service deletion")
		s.Equal("org-client", org.AuthClients[0].ClientID)

		updates := s.chainUpdates.Updates()
		s.Require().Len(updates, 1)
		s.Empty(updates[0].ScopesToAdd)
		s.Len(updates[0].ScopesToRemove, 6)
	})

	s.Run("externally reachable service loses its monitor", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{issuerService("#svc-issuer-1")},
		})

		_, err := s.service.DeleteService(s.ctx, s.adminScope(), orgDID, "#svc-issuer-1")
		s.Require().NoError(err)
		s.False(s.monitors.Monitored(domain.ServiceRef{DID: orgDID, Fragment: "#svc-issuer-1"}))
	})

	s.Run("unknown service id fails and stores nothing", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{issuerService("#svc-issuer-1")},
		})

		_, err := s.service.DeleteService(s.ctx, s.adminScope(), orgDID, "#missing")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Len(s.reload(orgDID).Services, 1)
	})
}

// reloadCategories recomputes the derived profile fields on a seeded org the
// way a real write path would have left them.
func (s *ServiceSuite) reloadCategories(did domain.DID) {
	org := s.reload(did)
	org.RecomputeCategories()
	s.Require().NoError(s.orgs.Update(s.ctx, org))
}
