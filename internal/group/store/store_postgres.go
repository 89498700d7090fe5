package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"registrar/internal/group/models"
	"registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
)

// Postgres persists groups. Membership lists are small, so they live in the
// group row as text arrays rather than join tables.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, group *models.Group) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO groups (group_id, dids, client_admin_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, group.GroupID, pq.Array(didStrings(group.DIDs)), pq.Array(group.ClientAdminIDs),
		group.CreatedAt, group.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (s *Postgres) FindByGroupID(ctx context.Context, groupID string) (*models.Group, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT group_id, dids, client_admin_ids, created_at, updated_at
		FROM groups WHERE group_id = $1
	`, groupID)
	return scanGroup(row)
}

func (s *Postgres) FindByDID(ctx context.Context, did domain.DID) (*models.Group, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT group_id, dids, client_admin_ids, created_at, updated_at
		FROM groups WHERE $1 = ANY(dids)
	`, did.String())
	return scanGroup(row)
}

func (s *Postgres) AddClientAdmin(ctx context.Context, groupID, userID string) error {
	return s.appendUnique(ctx, groupID, "client_admin_ids", userID)
}

func (s *Postgres) AddDID(ctx context.Context, groupID string, did domain.DID) error {
	return s.appendUnique(ctx, groupID, "dids", did.String())
}

func (s *Postgres) appendUnique(ctx context.Context, groupID, column, value string) error {
	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE groups
		SET %s = array_append(%s, $2), updated_at = $3
		WHERE group_id = $1 AND NOT ($2 = ANY(%s))
	`, column, column, column), groupID, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if affected == 0 {
		// Either the group is missing or the value is already present.
		if _, err := s.FindByGroupID(ctx, groupID); err != nil {
			return err
		}
	}
	return nil
}

func scanGroup(row *sql.Row) (*models.Group, error) {
	var (
		group  models.Group
		dids   pq.StringArray
		admins pq.StringArray
	)
	err := row.Scan(&group.GroupID, &dids, &admins, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan group: %w", err)
	}
	for _, d := range dids {
		group.DIDs = append(group.DIDs, domain.DID(d))
	}
	group.ClientAdminIDs = admins
	return &group, nil
}

func didStrings(dids []domain.DID) []string {
	out := make([]string, len(dids))
	for i, d := range dids {
		out[i] = d.String()
	}
	return out
}
