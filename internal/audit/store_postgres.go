package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"registrar/pkg/domain"
)

// Postgres persists audit events append-only. Detail is stored as jsonb.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Append(ctx context.Context, event Event) error {
	detail, err := json.Marshal(event.Detail)
	if err != nil {
		return fmt.Errorf("encode audit detail: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_events (event_id, action, organization_id, service_id, actor, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.EventID, event.Action, event.OrganizationID.String(),
		event.ServiceID, event.Actor, detail, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *Postgres) ListByOrganization(ctx context.Context, did domain.DID) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id, action, organization_id, service_id, actor, detail, occurred_at
		FROM audit_events
		WHERE organization_id = $1
		ORDER BY id
	`, did.String())
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e      Event
			detail []byte
		)
		if err := rows.Scan(&e.EventID, &e.Action, &e.OrganizationID,
			&e.ServiceID, &e.Actor, &detail, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &e.Detail); err != nil {
				return nil, fmt.Errorf("decode audit detail: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
