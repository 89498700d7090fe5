package service

import (
	"errors"

	"registrar/internal/org/models"
	"registrar/pkg/domain"
)

func effectNames(effects SideEffects) []string {
	out := make([]string, 0, len(effects))
	for _, e := range effects {
		out = append(out, e.Name)
	}
	return out
}

// Collaborator outages must never fail a lifecycle operation once the
// organization write has landed. The failures are recorded on the result and
// reported to the sink instead.
func (s *ServiceSuite) TestAddServiceCollaboratorFailures() {
	s.Run("chain, mail and monitor outages do not fail the add", func() {
		s.SetupTest()
		s.seedGroup(orgDID, "admin@example.com")
		s.seedOrg(&models.Organization{
			DID:     orgDID,
			Profile: models.Profile{Name: "Acme"},
			IDs:     models.Identifiers{EthereumAccount: "0xacc1"},
		})
		s.chainUpdates.Err = errors.New("chain gateway unavailable")
		s.dispatcher.Err = errors.New("smtp connect refused")
		s.monitors.Err = errors.New("monitor api 503")

		result, err := s.service.AddService(s.ctx, s.adminScope(), orgDID,
			AddServiceRequest{Service: issuerService("#svc-issuer-1")})
		s.Require().NoError(err)

		org := s.reload(orgDID)
		s.True(org.HasService("#svc-issuer-1"), "outages must not roll back the write")
		s.Empty(org.Profile.PermittedServiceCategories, "inactive services contribute no categories")

		s.ElementsMatch(
			[]string{"update_chain_scopes", "register_monitor", "notify_group"},
			effectNames(result.SideEffects.Failed()))
		s.Len(s.sink.Errors(), 3)
	})

	s.Run("provisioner outage downgrades auto-activation to a plain add", func() {
		s.SetupTest()
		s.seedGroup(orgDID, "admin@example.com")
		s.seedOrg(&models.Organization{
			DID:     orgDID,
			Profile: models.Profile{Name: "Acme"},
		})
		s.provisioner.FailNext = errors.New("identity provider down")

		result, err := s.service.AddService(s.ctx, s.adminScope(), orgDID, AddServiceRequest{
			Service: models.Service{
				ID:              "#agent-1",
				Type:            domain.ServiceTypeCredentialAgentOperator,
				ServiceEndpoint: "https://agent.example.com",
			},
			Activate: true,
		})
		s.Require().NoError(err)
		s.Nil(result.AuthClient)

		org := s.reload(orgDID)
		s.True(org.HasService("#agent-1"))
		s.Empty(org.ActivatedServiceIDs, "activation is skipped when provisioning fails")
		s.Empty(org.AuthClients)

		s.Equal([]string{"provision_auth_client"}, effectNames(result.SideEffects.Failed()))
		s.Len(s.sink.Errors(), 1)
	})
}

func (s *ServiceSuite) TestActivateServicesCollaboratorFailures() {
	s.Run("provisioner outage still activates the service", func() {
		s.SetupTest()
		s.seedGroup(orgDID, "admin@example.com")
		s.seedOrg(&models.Organization{
			DID:     orgDID,
			Profile: models.Profile{Name: "Acme"},
			Services: []models.Service{{
				ID:              "#agent-1",
				Type:            domain.ServiceTypeCredentialAgentOperator,
				ServiceEndpoint: "https://agent.example.com",
			}},
		})
		s.provisioner.FailNext = errors.New("identity provider down")

		result, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID, []string{"#agent-1"})
		s.Require().NoError(err)
		s.True(result.Changed)
		s.Equal([]string{"#agent-1"}, result.ActivatedServiceIDs)
		s.Empty(result.AuthClients)

		org := s.reload(orgDID)
		s.Equal([]string{"#agent-1"}, org.ActivatedServiceIDs)
		s.Empty(org.AuthClients, "no client record without a provisioned client")

		s.Equal([]string{"provision_auth_client"}, effectNames(result.SideEffects.Failed()))
		s.Len(s.sink.Errors(), 1)
	})

	s.Run("chain and mail outages still activate the service", func() {
		s.SetupTest()
		s.seedGroup(orgDID, "admin@example.com")
		s.seedOrg(&models.Organization{
			DID:     orgDID,
			Profile: models.Profile{Name: "Acme"},
			IDs:     models.Identifiers{EthereumAccount: "0xacc1"},
			Services: []models.Service{{
				ID:   "#node-1",
				Type: domain.ServiceTypeNodeOperator,
			}},
		})
		s.chainUpdates.Err = errors.New("chain gateway unavailable")
		s.dispatcher.Err = errors.New("smtp connect refused")

		result, err := s.service.ActivateServices(s.ctx, s.adminScope(), orgDID, []string{"#node-1"})
		s.Require().NoError(err)
		s.True(result.Changed)

		s.Equal([]string{"#node-1"}, s.reload(orgDID).ActivatedServiceIDs)
		s.Empty(s.dispatcher.Sent())
		s.ElementsMatch([]string{"update_chain_scopes", "notify_group"},
			effectNames(result.SideEffects.Failed()))
		s.Len(s.sink.Errors(), 2)
	})
}
