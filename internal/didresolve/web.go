package didresolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/domain"
)

// WebResolver resolves did:web identifiers over HTTPS per the did:web method
// spec: the method-specific id maps to a host (first segment, with %3A
// unescaping for ports) and an optional path; the document lives at
// <path>/did.json, or /.well-known/did.json for a bare domain.
type WebResolver struct {
	client *http.Client
}

func NewWebResolver(timeout time.Duration) *WebResolver {
	return &WebResolver{client: &http.Client{Timeout: timeout}}
}

func (r *WebResolver) Resolve(ctx context.Context, did domain.DID) (*domain.DIDDocument, error) {
	docURL, err := documentURL(did)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build did:web request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonDIDResolutionFailed,
			fmt.Sprintf("could not resolve %s: %v", did, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonDIDResolutionFailed,
			fmt.Sprintf("could not resolve %s: status %d", did, resp.StatusCode))
	}

	var doc domain.DIDDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonDIDResolutionFailed,
			fmt.Sprintf("could not decode document for %s: %v", did, err))
	}
	return &doc, nil
}

func documentURL(did domain.DID) (string, error) {
	if did.Method() != "web" {
		return "", dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonDIDResolutionFailed, "unsupported DID method: "+did.Method())
	}

	raw := strings.TrimPrefix(did.String(), "did:web:")
	segments := strings.Split(raw, ":")
	host, err := url.PathUnescape(segments[0])
	if err != nil {
		return "", dErrors.NewWithReason(dErrors.CodeBadRequest,
			dErrors.ReasonDIDResolutionFailed, "malformed did:web host: "+segments[0])
	}

	if len(segments) == 1 {
		return "https://" + host + "/.well-known/did.json", nil
	}
	return "https://" + host + "/" + strings.Join(segments[1:], "/") + "/did.json", nil
}
