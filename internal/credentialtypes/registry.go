package credentialtypes

import (
	"context"
	"sync"
)

// Registry answers whether credential type names are known to the network.
// Issuer services may only declare credential types present here.
type Registry struct {
	mu    sync.RWMutex
	known map[string]struct{}
}

// DefaultTypes are the credential types seeded for local development. A
// deployment replaces these with the network's published list.
var DefaultTypes = []string{
	"CurrentEmploymentPosition",
	"PastEmploymentPosition",
	"EducationDegreeGraduation",
	"EducationDegreeRegistration",
	"Certification",
	"LicenseV1.0",
	"Badge",
	"AssessmentV1.0",
	"CourseRegistrationV1.0",
	"CourseCompletionV1.0",
	"DriversLicenseV1.0",
	"NationalIdCardV1.0",
	"PassportV1.0",
	"ProofOfAgeV1.0",
	"ResidentPermitV1.0",
	"EmailV1.0",
	"PhoneV1.0",
}

func NewRegistry(types []string) *Registry {
	known := make(map[string]struct{}, len(types))
	for _, t := range types {
		known[t] = struct{}{}
	}
	return &Registry{known: known}
}

// Unknown returns, in input order, the entries of types not present in the
// registry.
func (r *Registry) Unknown(_ context.Context, types []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, t := range types {
		if _, ok := r.known[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Add registers additional credential types.
func (r *Registry) Add(types ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range types {
		r.known[t] = struct{}{}
	}
}
