package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPUpdater calls the chain permission service, which owns the contract
// transaction signing.
type HTTPUpdater struct {
	baseURL  string
	audience string
	token    string
	client   *http.Client
}

func NewHTTPUpdater(baseURL, audience, token string, timeout time.Duration) *HTTPUpdater {
	return &HTTPUpdater{
		baseURL:  baseURL,
		audience: audience,
		token:    token,
		client:   &http.Client{Timeout: timeout},
	}
}

func (u *HTTPUpdater) UpdateAddressScopes(ctx context.Context, update ScopeUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		u.baseURL+"/permissions/address-scopes", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if u.token != "" {
		req.Header.Set("Authorization", "Bearer "+u.token)
	}
	if u.audience != "" {
		req.Header.Set("X-Audience", u.audience)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("update address scopes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("update address scopes: status %d", resp.StatusCode)
	}
	return nil
}
