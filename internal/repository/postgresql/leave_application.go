package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/leave"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
)

const applicationColumns = `
	id, user_id, leave_type_id, start_date, end_date,
	half_day, half_day_session, duration, reason, document_url,
	status, year,
	approved_by, approved_at, rejected_by, rejected_at,
	cancelled_by, cancelled_at, manager_remark,
	created_at, updated_at
`

type applicationRepositoryImpl struct {
	db *database.DB
}

func NewApplicationRepository(db *database.DB) leave.ApplicationRepository {
	return &applicationRepositoryImpl{db: db}
}

func scanApplication(row pgx.Row) (leave.Application, error) {
	var a leave.Application
	err := row.Scan(
		&a.ID, &a.UserID, &a.LeaveTypeID, &a.StartDate, &a.EndDate,
		&a.HalfDay, &a.HalfDaySession, &a.Duration, &a.Reason, &a.DocumentURL,
		&a.Status, &a.Year,
		&a.ApprovedBy, &a.ApprovedAt, &a.RejectedBy, &a.RejectedAt,
		&a.CancelledBy, &a.CancelledAt, &a.ManagerRemark,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) Create(ctx context.Context, a leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_applications (
			id, user_id, leave_type_id, start_date, end_date,
			half_day, half_day_session, duration, reason, document_url,
			status, year, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		a.UserID, a.LeaveTypeID, a.StartDate, a.EndDate,
		a.HalfDay, a.HalfDaySession, a.Duration, a.Reason, a.DocumentURL,
		a.Status, a.Year,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return leave.Application{}, err
	}
	return a, nil
}

// GetByID implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + applicationColumns + ` FROM leave_applications WHERE id = $1`
	a, err := scanApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Application{}, leave.ErrApplicationNotFound
		}
		return leave.Application{}, err
	}
	return a, nil
}

// GetByIDForUpdate implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + applicationColumns + ` FROM leave_applications WHERE id = $1 FOR UPDATE`
	a, err := scanApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Application{}, leave.ErrApplicationNotFound
		}
		return leave.Application{}, err
	}
	return a, nil
}

// Update implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) Update(ctx context.Context, a leave.Application) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_applications SET
			status = $1,
			approved_by = $2,
			approved_at = $3,
			rejected_by = $4,
			rejected_at = $5,
			cancelled_by = $6,
			cancelled_at = $7,
			manager_remark = $8,
			updated_at = NOW()
		WHERE id = $9
	`
	commandTag, err := q.Exec(ctx, query,
		a.Status,
		a.ApprovedBy, a.ApprovedAt,
		a.RejectedBy, a.RejectedAt,
		a.CancelledBy, a.CancelledAt,
		a.ManagerRemark,
		a.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrApplicationNotFound
	}
	return nil
}

// List implements leave.ApplicationRepository.
func (r *applicationRepositoryImpl) List(ctx context.Context, filter leave.ApplicationFilter) ([]leave.Application, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("year = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_applications WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + applicationColumns + ` FROM leave_applications WHERE ` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var applications []leave.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		applications = append(applications, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}
