package invitation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, inv *Invitation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invitations (invitation_id, code, inviter_did, expires_at, accepted_at, accepted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, inv.InvitationID, inv.Code, inv.InviterDID.String(), inv.ExpiresAt,
		inv.AcceptedAt, inv.AcceptedBy.String(), inv.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

func (s *Postgres) FindByCode(ctx context.Context, code string) (*Invitation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT invitation_id, code, inviter_did, expires_at, accepted_at, accepted_by, created_at
		FROM invitations WHERE code = $1
	`, code)

	var (
		inv        Invitation
		acceptedAt sql.NullTime
	)
	err := row.Scan(&inv.InvitationID, &inv.Code, &inv.InviterDID,
		&inv.ExpiresAt, &acceptedAt, &inv.AcceptedBy, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan invitation: %w", err)
	}
	if acceptedAt.Valid {
		inv.AcceptedAt = &acceptedAt.Time
	}
	return &inv, nil
}

// MarkAccepted consumes the invitation with a single conditional update so
// two concurrent accepts cannot both win.
func (s *Postgres) MarkAccepted(ctx context.Context, invitationID string, acceptedBy domain.DID, at time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE invitations
		SET accepted_at = $2, accepted_by = $3
		WHERE invitation_id = $1 AND accepted_at IS NULL AND expires_at >= $2
	`, invitationID, at, acceptedBy.String())
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// Disambiguate why the conditional update matched nothing.
	row := s.db.QueryRowContext(ctx, `
		SELECT accepted_at IS NOT NULL, expires_at < $2
		FROM invitations WHERE invitation_id = $1
	`, invitationID, at)
	var accepted, expired bool
	if err := row.Scan(&accepted, &expired); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("scan invitation: %w", err)
	}
	if accepted {
		return sentinel.ErrInvalidState
	}
	if expired {
		return sentinel.ErrExpired
	}
	return sentinel.ErrNotFound
}
