package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"registrar/internal/audit"
	"registrar/internal/authclient"
	"registrar/internal/chain"
	"registrar/internal/consent"
	"registrar/internal/credentialtypes"
	"registrar/internal/didresolve"
	groupmodels "registrar/internal/group/models"
	groupstore "registrar/internal/group/store"
	"registrar/internal/invitation"
	"registrar/internal/monitor"
	"registrar/internal/notify"
	"registrar/internal/org/models"
	orgstore "registrar/internal/org/store"
	"registrar/internal/platform/errsink"
	"registrar/internal/scope"
	"registrar/pkg/domain"
	"registrar/pkg/requestcontext"
)

const (
	orgDID = domain.DID("did:ion:org-primary")
	caoDID = domain.DID("did:ion:cao-operator")
)

type ServiceSuite struct {
	suite.Suite

	ctx context.Context
	now time.Time

	orgs         *orgstore.InMemory
	groups       *groupstore.InMemory
	consents     *consent.InMemory
	invitations  *invitation.InMemory
	resolver     *didresolve.Mock
	provisioner  *authclient.Mock
	dispatcher   *notify.Recorder
	monitors     *monitor.Mock
	chainUpdates *chain.Mock
	audits       *audit.InMemory
	sink         *errsink.Recorder

	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithCaller(context.Background(),
		requestcontext.CallerIdentity{Subject: "ops@example.com"})
	s.ctx = requestcontext.WithTime(ctx, s.now)

	s.orgs = orgstore.NewInMemory()
	s.groups = groupstore.NewInMemory()
	s.consents = consent.NewInMemory()
	s.invitations = invitation.NewInMemory()
	s.resolver = didresolve.NewMock()
	s.provisioner = authclient.NewMock()
	s.dispatcher = notify.NewRecorder()
	s.monitors = monitor.NewMock()
	s.chainUpdates = chain.NewMock()
	s.audits = audit.NewInMemory()
	s.sink = errsink.NewRecorder()

	s.service = New(
		s.orgs,
		s.groups,
		s.consents,
		s.invitations,
		credentialtypes.NewRegistry(credentialtypes.DefaultTypes),
		s.resolver,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithErrorSink(s.sink),
		WithAuditPublisher(audit.NewPublisher(s.audits)),
		WithProvisioner(s.provisioner),
		WithDispatcher(s.dispatcher),
		WithMonitorClient(s.monitors),
		WithChainUpdater(s.chainUpdates, "https://chain.example"),
	)
}

func (s *ServiceSuite) adminScope() scope.Scope {
	return scope.Scope{Unrestricted: true}
}

func (s *ServiceSuite) seedOrg(org *models.Organization) {
	org.CreatedAt = s.now.Add(-24 * time.Hour)
	org.UpdatedAt = org.CreatedAt
	s.Require().NoError(s.orgs.Create(context.Background(), org))
}

func (s *ServiceSuite) seedGroup(did domain.DID, admins ...string) {
	s.Require().NoError(s.groups.Create(context.Background(), &groupmodels.Group{
		GroupID:        "group-" + string(did),
		DIDs:           []domain.DID{did},
		ClientAdminIDs: admins,
	}))
}

// seedCAO stores a credential agent operator organization whose service can
// be the target of endpoint refs.
func (s *ServiceSuite) seedCAO() {
	s.seedOrg(&models.Organization{
		DID:     caoDID,
		Profile: models.Profile{Name: "Agent Operator"},
		Services: []models.Service{{
			ID:              "#cao-1",
			Type:            domain.ServiceTypeCredentialAgentOperator,
			ServiceEndpoint: "https://agent.example.com",
		}},
		ActivatedServiceIDs: []string{"#cao-1"},
	})
}

func issuerService(id string) models.Service {
	return models.Service{
		ID:              id,
		Type:            domain.ServiceTypeCareerIssuer,
		ServiceEndpoint: "https://issuer.example.com/api",
		CredentialTypes: []string{"CurrentEmploymentPosition"},
	}
}

func (s *ServiceSuite) reload(did domain.DID) *models.Organization {
	org, err := s.orgs.FindByDID(context.Background(), did)
	s.Require().NoError(err)
	s.assertActivatedSubset(org)
	return org
}

// assertActivatedSubset checks the standing invariant that every activated
// id names a service the organization still has.
func (s *ServiceSuite) assertActivatedSubset(org *models.Organization) {
	for _, id := range org.ActivatedServiceIDs {
		s.True(org.HasService(id), "activated id %s has no service record", id)
	}
}
