package domain

// DIDDocument is the standard document listing an entity's services, keyed
// by DID. For custodied organizations it is a projection of registrar state;
// for non-custodied ones it is resolved live over the network.
type DIDDocument struct {
	Context []string          `json:"@context,omitempty"`
	ID      DID               `json:"id"`
	Service []DIDDocService   `json:"service,omitempty"`
}

// DIDDocService is the public service entry shape exposed on a DID document.
type DIDDocService struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// FindService locates a service entry by fragment id ("#xxx"), accepting
// fully-qualified ids on either side.
func (d DIDDocument) FindService(serviceID string) (DIDDocService, bool) {
	want := NormalizeServiceID(serviceID)
	for _, svc := range d.Service {
		if NormalizeServiceID(svc.ID) == want {
			return svc, true
		}
	}
	return DIDDocService{}, false
}
