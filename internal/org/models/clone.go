package models

import "registrar/pkg/domain"

// Clone deep-copies the organization so store reads never alias the stored
// record's slices.
func (o *Organization) Clone() *Organization {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Services = append([]Service(nil), o.Services...)
	for i := range clone.Services {
		clone.Services[i].CredentialTypes = append([]string(nil), o.Services[i].CredentialTypes...)
		clone.Services[i].SupportedExchangeProtocols = append([]string(nil), o.Services[i].SupportedExchangeProtocols...)
	}
	clone.ActivatedServiceIDs = append([]string(nil), o.ActivatedServiceIDs...)
	clone.AuthClients = append([]AuthClient(nil), o.AuthClients...)
	for i := range clone.AuthClients {
		clone.AuthClients[i].ClientGrantIDs = append([]string(nil), o.AuthClients[i].ClientGrantIDs...)
	}
	clone.Keys = append([]Key(nil), o.Keys...)
	for i := range clone.Keys {
		clone.Keys[i].Purposes = append([]string(nil), o.Keys[i].Purposes...)
	}
	clone.Profile.PermittedServiceCategories = append([]domain.ServiceCategory(nil), o.Profile.PermittedServiceCategories...)
	return &clone
}
