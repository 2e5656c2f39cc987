package postgresql

import (
	"context"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/audit"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
)

type auditLogRepositoryImpl struct {
	db *database.DB
}

func NewAuditLogRepository(db *database.DB) audit.Logger {
	return &auditLogRepositoryImpl{db: db}
}

// Record implements audit.Logger.
func (r *auditLogRepositoryImpl) Record(ctx context.Context, e audit.Entry) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO audit_logs (
			id, actor_id, employee_id, action_type, action,
			target_table, target_id, details, visible_to_user, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW()
		)
	`
	_, err := q.Exec(ctx, query,
		e.ActorID, e.EmployeeID, e.ActionType, e.Action,
		e.TargetTable, e.TargetID, e.Details, e.VisibleToUser,
	)
	return err
}

// ListRecent implements audit.Logger.
func (r *auditLogRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, actor_id, employee_id, action_type, action,
			   target_table, target_id, details, visible_to_user, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(
			&e.ID, &e.ActorID, &e.EmployeeID, &e.ActionType, &e.Action,
			&e.TargetTable, &e.TargetID, &e.Details, &e.VisibleToUser, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
