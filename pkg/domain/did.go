package domain

import (
	"strings"

	dErrors "registrar/pkg/domain-errors"
)

// DID is a decentralized identifier, the primary key of an organization.
// Invariant: the value starts with "did:" and names a method and identifier.
//
// Usage: construct via ParseDID at trust boundaries; direct casting bypasses
// validation.
type DID string

func ParseDID(s string) (DID, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "did:") {
		return "", dErrors.New(dErrors.CodeBadRequest, "did must start with did:")
	}
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 3 || parts[1] == "" || parts[2] == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "did must name a method and identifier")
	}
	return DID(s), nil
}

func (d DID) String() string {
	return string(d)
}

// Method returns the DID method ("web", "ion", ...).
func (d DID) Method() string {
	parts := strings.SplitN(string(d), ":", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}

// ServiceRef is a DID service reference of the form "did:method:id#fragment".
// It points at a service entry on another organization's DID document. This
// is a non-owning relationship: the reference is resolved on use, never
// cascaded.
type ServiceRef struct {
	DID      DID
	Fragment string
}

// ParseServiceRef splits a "did:...#fragment" reference. Returns
// (ref, true) only when the value carries both a valid DID and a fragment.
func ParseServiceRef(s string) (ServiceRef, bool) {
	if !strings.HasPrefix(s, "did:") {
		return ServiceRef{}, false
	}
	didPart, fragment, found := strings.Cut(s, "#")
	if !found || fragment == "" {
		return ServiceRef{}, false
	}
	did, err := ParseDID(didPart)
	if err != nil {
		return ServiceRef{}, false
	}
	return ServiceRef{DID: did, Fragment: "#" + fragment}, true
}

func (r ServiceRef) String() string {
	return r.DID.String() + r.Fragment
}

// NormalizeServiceID reduces a caller-supplied service id to its DID-relative
// fragment form "#xxx". Fully-qualified ids ("did:...#xxx") are stripped of
// the DID prefix; bare ids gain the leading "#".
func NormalizeServiceID(id string) string {
	id = strings.TrimSpace(id)
	if ref, ok := ParseServiceRef(id); ok {
		return ref.Fragment
	}
	if i := strings.Index(id, "#"); i >= 0 {
		return id[i:]
	}
	if id == "" {
		return id
	}
	return "#" + id
}
