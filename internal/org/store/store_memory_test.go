package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"registrar/internal/org/models"
	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

type OrgStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *OrgStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestOrgStoreSuite(t *testing.T) {
	suite.Run(t, new(OrgStoreSuite))
}

func (s *OrgStoreSuite) newOrganization(did string) *models.Organization {
	return &models.Organization{
		DID: domain.DID(did),
		Profile: models.Profile{
			Name: "Acme Credentials",
		},
		Services: []models.Service{
			{
				ID:              "#issuer-1",
				Type:            domain.ServiceTypeCareerIssuer,
				ServiceEndpoint: "https://agent.acme.example/api",
				CreatedAt:       time.Now().UTC(),
			},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func (s *OrgStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds organization by DID", func() {
		org := s.newOrganization("did:web:acme.example")
		s.Require().NoError(s.store.Create(s.ctx, org))

		found, err := s.store.FindByDID(s.ctx, org.DID)
		s.Require().NoError(err)
		s.Equal(org.Profile.Name, found.Profile.Name)
		s.Len(found.Services, 1)
	})

	s.Run("returns ErrNotFound for unknown DID", func() {
		_, err := s.store.FindByDID(s.ctx, domain.DID("did:web:missing.example"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate DID", func() {
		org := s.newOrganization("did:web:dup.example")
		s.Require().NoError(s.store.Create(s.ctx, org))
		err := s.store.Create(s.ctx, s.newOrganization("did:web:dup.example"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("finds organization by service ref", func() {
		org := s.newOrganization("did:web:ref.example")
		s.Require().NoError(s.store.Create(s.ctx, org))

		ref, ok := domain.ParseServiceRef("did:web:ref.example#issuer-1")
		s.Require().True(ok)

		found, err := s.store.FindByServiceRef(s.ctx, ref)
		s.Require().NoError(err)
		s.Equal(org.DID, found.DID)
	})
}

func (s *OrgStoreSuite) TestIsolation() {
	s.Run("mutating a returned copy does not affect the store", func() {
		org := s.newOrganization("did:web:iso.example")
		s.Require().NoError(s.store.Create(s.ctx, org))

		found, err := s.store.FindByDID(s.ctx, org.DID)
		s.Require().NoError(err)
		found.Services[0].ServiceEndpoint = "https://tampered.example"
		found.ActivatedServiceIDs = append(found.ActivatedServiceIDs, "#issuer-1")

		again, err := s.store.FindByDID(s.ctx, org.DID)
		s.Require().NoError(err)
		s.Equal("https://agent.acme.example/api", again.Services[0].ServiceEndpoint)
		s.Empty(again.ActivatedServiceIDs)
	})
}

func (s *OrgStoreSuite) TestExecute() {
	s.Run("applies mutation atomically and returns the updated record", func() {
		org := s.newOrganization("did:web:exec.example")
		s.Require().NoError(s.store.Create(s.ctx, org))

		updated, err := s.store.Execute(s.ctx, org.DID,
			func(o *models.Organization) error { return nil },
			func(o *models.Organization) {
				o.ActivatedServiceIDs = []string{"#issuer-1"}
			},
		)
		s.Require().NoError(err)
		s.Equal([]string{"#issuer-1"}, updated.ActivatedServiceIDs)

		found, err := s.store.FindByDID(s.ctx, org.DID)
		s.Require().NoError(err)
		s.Equal([]string{"#issuer-1"}, found.ActivatedServiceIDs)
	})

	s.Run("validation failure leaves the record untouched", func() {
		org := s.newOrganization("did:web:exec-fail.example")
		s.Require().NoError(s.store.Create(s.ctx, org))

		wantErr := errors.New("not allowed")
		_, err := s.store.Execute(s.ctx, org.DID,
			func(o *models.Organization) error { return wantErr },
			func(o *models.Organization) {
				o.Profile.Name = "should not persist"
			},
		)
		s.Require().ErrorIs(err, wantErr)

		found, err := s.store.FindByDID(s.ctx, org.DID)
		s.Require().NoError(err)
		s.Equal("Acme Credentials", found.Profile.Name)
	})

	s.Run("returns ErrNotFound for unknown DID", func() {
		_, err := s.store.Execute(s.ctx, domain.DID("did:web:nope.example"),
			func(o *models.Organization) error { return nil },
			func(o *models.Organization) {},
		)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
