package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"registrar/internal/org/models"
	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// Postgres persists organizations in PostgreSQL. Structured sub-documents
// (services, auth clients, keys) are stored as jsonb; flat list fields use
// text arrays so they stay queryable.
//
// Schema (migrations/001_organizations.sql):
//
//	CREATE TABLE organizations (
//	    did                   TEXT PRIMARY KEY,
//	    did_not_custodied     BOOLEAN NOT NULL DEFAULT FALSE,
//	    name                  TEXT NOT NULL DEFAULT '',
//	    permitted_categories  TEXT[] NOT NULL DEFAULT '{}',
//	    services              JSONB NOT NULL DEFAULT '[]',
//	    activated_service_ids TEXT[] NOT NULL DEFAULT '{}',
//	    auth_clients          JSONB NOT NULL DEFAULT '[]',
//	    keys                  JSONB NOT NULL DEFAULT '[]',
//	    ethereum_account      TEXT NOT NULL DEFAULT '',
//	    created_at            TIMESTAMPTZ NOT NULL,
//	    updated_at            TIMESTAMPTZ NOT NULL
//	);
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const organizationColumns = `did, did_not_custodied, name, permitted_categories, services,
	activated_service_ids, auth_clients, keys, ethereum_account, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, org *models.Organization) error {
	services, authClients, keys, err := marshalDocs(org)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO organizations (`+organizationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		org.DID.String(), org.DIDNotCustodied, org.Profile.Name,
		pq.Array(categoryStrings(org)), services,
		pq.Array(org.ActivatedServiceIDs), authClients, keys,
		org.IDs.EthereumAccount, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (s *Postgres) FindByDID(ctx context.Context, did domain.DID) (*models.Organization, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+organizationColumns+`
		FROM organizations WHERE did = $1
	`, did.String())
	return scanOrganization(row)
}

func (s *Postgres) FindByServiceRef(ctx context.Context, ref domain.ServiceRef) (*models.Organization, error) {
	return s.FindByDID(ctx, ref.DID)
}

func (s *Postgres) Update(ctx context.Context, org *models.Organization) error {
	services, authClients, keys, err := marshalDocs(org)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE organizations
		SET did_not_custodied = $2, name = $3, permitted_categories = $4,
		    services = $5, activated_service_ids = $6, auth_clients = $7,
		    keys = $8, ethereum_account = $9, updated_at = $10
		WHERE did = $1
	`,
		org.DID.String(), org.DIDNotCustodied, org.Profile.Name,
		pq.Array(categoryStrings(org)), services,
		pq.Array(org.ActivatedServiceIDs), authClients, keys,
		org.IDs.EthereumAccount, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Execute runs validate and mutate inside a transaction holding a row lock
// (SELECT ... FOR UPDATE), mirroring the in-memory store's atomic
// read-validate-mutate cycle.
func (s *Postgres) Execute(
	ctx context.Context,
	did domain.DID,
	validate func(org *models.Organization) error,
	mutate func(org *models.Organization),
) (*models.Organization, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT `+organizationColumns+`
		FROM organizations WHERE did = $1
		FOR UPDATE
	`, did.String())
	org, err := scanOrganization(row)
	if err != nil {
		return nil, err
	}

	if err := validate(org); err != nil {
		return nil, err
	}
	mutate(org)

	services, authClients, keys, err := marshalDocs(org)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE organizations
		SET did_not_custodied = $2, name = $3, permitted_categories = $4,
		    services = $5, activated_service_ids = $6, auth_clients = $7,
		    keys = $8, ethereum_account = $9, updated_at = $10
		WHERE did = $1
	`,
		org.DID.String(), org.DIDNotCustodied, org.Profile.Name,
		pq.Array(categoryStrings(org)), services,
		pq.Array(org.ActivatedServiceIDs), authClients, keys,
		org.IDs.EthereumAccount, org.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update organization: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return org, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrganization(row rowScanner) (*models.Organization, error) {
	var (
		org        models.Organization
		didRaw     string
		categories pq.StringArray
		activated  pq.StringArray
		services   []byte
		clients    []byte
		keys       []byte
	)
	err := row.Scan(
		&didRaw, &org.DIDNotCustodied, &org.Profile.Name, &categories,
		&services, &activated, &clients, &keys,
		&org.IDs.EthereumAccount, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan organization: %w", err)
	}
	org.DID = domain.DID(didRaw)
	org.ActivatedServiceIDs = activated
	for _, c := range categories {
		org.Profile.PermittedServiceCategories = append(org.Profile.PermittedServiceCategories, domain.ServiceCategory(c))
	}
	if err := json.Unmarshal(services, &org.Services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	var stored []storedAuthClient
	if err := json.Unmarshal(clients, &stored); err != nil {
		return nil, fmt.Errorf("decode auth clients: %w", err)
	}
	for _, sc := range stored {
		client := sc.AuthClient
		client.ClientSecretHash = sc.ClientSecretHash
		org.AuthClients = append(org.AuthClients, client)
	}
	if err := json.Unmarshal(keys, &org.Keys); err != nil {
		return nil, fmt.Errorf("decode keys: %w", err)
	}
	return &org, nil
}

func marshalDocs(org *models.Organization) (services, authClients, keys []byte, err error) {
	if services, err = json.Marshal(org.Services); err != nil {
		return nil, nil, nil, fmt.Errorf("encode services: %w", err)
	}
	if authClients, err = json.Marshal(storedAuthClients(org.AuthClients)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode auth clients: %w", err)
	}
	if keys, err = json.Marshal(org.Keys); err != nil {
		return nil, nil, nil, fmt.Errorf("encode keys: %w", err)
	}
	return services, authClients, keys, nil
}

func categoryStrings(org *models.Organization) []string {
	out := make([]string, len(org.Profile.PermittedServiceCategories))
	for i, c := range org.Profile.PermittedServiceCategories {
		out[i] = c.String()
	}
	return out
}

// storedAuthClient persists the secret hash, which the API-facing model
// excludes from JSON.
type storedAuthClient struct {
	models.AuthClient
	ClientSecretHash string `json:"clientSecretHash,omitempty"`
}

func storedAuthClients(clients []models.AuthClient) []storedAuthClient {
	out := make([]storedAuthClient, len(clients))
	for i, c := range clients {
		out[i] = storedAuthClient{AuthClient: c, ClientSecretHash: c.ClientSecretHash}
	}
	return out
}
