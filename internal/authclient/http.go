package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPProvisioner talks to the identity provider's management API.
type HTTPProvisioner struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPProvisioner(baseURL, token string, timeout time.Duration) *HTTPProvisioner {
	return &HTTPProvisioner{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvisioner) CreateClient(ctx context.Context, spec ClientSpec) (*ProvisionedClient, error) {
	var out ProvisionedClient
	if err := p.do(ctx, http.MethodPost, "/clients", spec, &out); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &out, nil
}

func (p *HTTPProvisioner) DeleteClient(ctx context.Context, clientID string) error {
	if err := p.do(ctx, http.MethodDelete, "/clients/"+url.PathEscape(clientID), nil, nil); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (p *HTTPProvisioner) CreateGrant(ctx context.Context, clientID, audience string, scopes []string) (*Grant, error) {
	body := map[string]any{
		"clientId": clientID,
		"audience": audience,
		"scopes":   scopes,
	}
	var out Grant
	if err := p.do(ctx, http.MethodPost, "/grants", body, &out); err != nil {
		return nil, fmt.Errorf("create grant: %w", err)
	}
	return &out, nil
}

func (p *HTTPProvisioner) DeleteGrant(ctx context.Context, grantID string) error {
	if err := p.do(ctx, http.MethodDelete, "/grants/"+url.PathEscape(grantID), nil, nil); err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}
	return nil
}

func (p *HTTPProvisioner) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
