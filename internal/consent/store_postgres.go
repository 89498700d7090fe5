package consent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// Postgres is the append-only consent store. Rows are never updated.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Append(ctx context.Context, c Consent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO consents (consent_id, organization_id, service_id, consent_type, user_id, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ConsentID, c.OrganizationID.String(), c.ServiceID, string(c.Type), c.UserID, c.Version, c.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert consent: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, consentID string) (*Consent, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT consent_id, organization_id, service_id, consent_type, user_id, version, created_at
		FROM consents WHERE consent_id = $1
	`, consentID)

	var c Consent
	err := row.Scan(&c.ConsentID, &c.OrganizationID, &c.ServiceID, &c.Type, &c.UserID, &c.Version, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan consent: %w", err)
	}
	return &c, nil
}

func (s *Postgres) ListByOrganization(ctx context.Context, did domain.DID) ([]Consent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT consent_id, organization_id, service_id, consent_type, user_id, version, created_at
		FROM consents WHERE organization_id = $1
		ORDER BY id
	`, did.String())
	if err != nil {
		return nil, fmt.Errorf("query consents: %w", err)
	}
	defer rows.Close()

	var out []Consent
	for rows.Next() {
		var c Consent
		if err := rows.Scan(&c.ConsentID, &c.OrganizationID, &c.ServiceID, &c.Type, &c.UserID, &c.Version, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consent: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Postgres) LatestVersion(ctx context.Context, did domain.DID, serviceID string) (int, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0)
		FROM consents WHERE organization_id = $1 AND service_id = $2
	`, did.String(), serviceID)

	var version int
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("scan consent version: %w", err)
	}
	return version, nil
}
