package service

import (
	"registrar/internal/org/models"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
)

func (s *ServiceSuite) TestUpdateService() {
	s.Run("patches mutable fields", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{issuerService("#svc-issuer-1")},
		})

		updated, err := s.service.UpdateService(s.ctx, s.adminScope(), orgDID, "#svc-issuer-1",
			UpdateServicePatch{
				ServiceEndpoint: "https://issuer-v2.example.com/api",
				CredentialTypes: []string{"PastEmploymentPosition"},
			})
		s.Require().NoError(err)
		s.Equal("https://issuer-v2.example.com/api", updated.ServiceEndpoint)
		s.Equal([]string{"PastEmploymentPosition"}, updated.CredentialTypes)
		s.Equal(s.now, updated.UpdatedAt)

		stored, ok := s.reload(orgDID).FindService("#svc-issuer-1")
		s.Require().True(ok)
		s.Equal("https://issuer-v2.example.com/api", stored.ServiceEndpoint)
	})

	s.Run("id in payload is rejected and nothing changes", func() {
		s.SetupTest()
		original := issuerService("#svc-issuer-1")
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{original},
		})

		_, err := s.service.UpdateService(s.ctx, s.adminScope(), orgDID, "#svc-issuer-1",
			UpdateServicePatch{
				ID:              "#svc-issuer-2",
				ServiceEndpoint: "https://issuer-v2.example.com/api",
			})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(dErrors.ReasonServiceIDImmutable, dErrors.Reason(err))

		stored, ok := s.reload(orgDID).FindService("#svc-issuer-1")
		s.Require().True(ok)
		s.Equal(original.ServiceEndpoint, stored.ServiceEndpoint)
	})

	s.Run("type in payload is rejected", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{issuerService("#svc-issuer-1")},
		})

		_, err := s.service.UpdateService(s.ctx, s.adminScope(), orgDID, "#svc-issuer-1",
			UpdateServicePatch{Type: "VlcInspector_v1"})
		s.Require().Error(err)
		s.Equal(dErrors.ReasonServiceTypeImmutable, dErrors.Reason(err))
	})

	s.Run("unknown service id", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{DID: orgDID, Profile: models.Profile{Name: "Acme"}})

		_, err := s.service.UpdateService(s.ctx, s.adminScope(), orgDID, "#missing",
			UpdateServicePatch{ServiceEndpoint: "https://issuer.example.com"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal(dErrors.ReasonUnknownServiceID, dErrors.Reason(err))
	})

	s.Run("patched endpoint is still validated", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{issuerService("#svc-issuer-1")},
		})

		_, err := s.service.UpdateService(s.ctx, s.adminScope(), orgDID, "#svc-issuer-1",
			UpdateServicePatch{ServiceEndpoint: "ftp://issuer.example.com"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestUpdateServiceRequiredFields() {
	// Stored record predates the logo requirement; the merged result must
	// still satisfy the type's field set.
	incomplete := models.Service{
		ID:              "#wallet-1",
		Type:            domain.ServiceTypeWebWalletProvider,
		ServiceEndpoint: "https://webwallet.acme.example",
		Name:            "Acme Web Wallet",
	}

	s.Run("patch leaving a required field empty names the field", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{incomplete},
		})

		_, err := s.service.UpdateService(s.ctx, s.adminScope(), orgDID, "#wallet-1",
			UpdateServicePatch{ServiceEndpoint: "https://webwallet-v2.acme.example"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Equal(dErrors.ReasonMissingRequiredField, dErrors.Reason(err))
		s.Contains(err.Error(), "logoUrl")

		stored, ok := s.reload(orgDID).FindService("#wallet-1")
		s.Require().True(ok)
		s.Equal("https://webwallet.acme.example", stored.ServiceEndpoint)
	})

	s.Run("patch supplying the missing field is accepted", func() {
		s.SetupTest()
		s.seedOrg(&models.Organization{
			DID:      orgDID,
			Profile:  models.Profile{Name: "Acme"},
			Services: []models.Service{incomplete},
		})

		updated, err := s.service.UpdateService(s.ctx, s.adminScope(), orgDID, "#wallet-1",
			UpdateServicePatch{LogoURL: "https://webwallet.acme.example/logo.png"})
		s.Require().NoError(err)
		s.Equal("https://webwallet.acme.example/logo.png", updated.LogoURL)
	})
}
