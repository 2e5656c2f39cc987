package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/attendance"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
)

const summaryColumns = `
	id, user_id, date, check_in_time, check_out_time, worked_hours,
	status, check_in_status, late_minutes, is_modified,
	auto_punched_out, auto_punched_out_reason_required, auto_punched_out_reason,
	created_at, updated_at
`

type summaryRepositoryImpl struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

func scanSummary(row pgx.Row) (attendance.Summary, error) {
	var s attendance.Summary
	err := row.Scan(
		&s.ID, &s.UserID, &s.Date, &s.CheckInTime, &s.CheckOutTime, &s.WorkedHours,
		&s.Status, &s.CheckInStatus, &s.LateMinutes, &s.IsModified,
		&s.AutoPunchedOut, &s.AutoPunchedOutReasonRequired, &s.AutoPunchedOutReason,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) Create(ctx context.Context, s attendance.Summary) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance_summaries (
			id, user_id, date, check_in_time, check_out_time, worked_hours,
			status, check_in_status, late_minutes, is_modified,
			auto_punched_out, auto_punched_out_reason_required, auto_punched_out_reason,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		s.UserID, s.Date, s.CheckInTime, s.CheckOutTime, s.WorkedHours,
		s.Status, s.CheckInStatus, s.LateMinutes, s.IsModified,
		s.AutoPunchedOut, s.AutoPunchedOutReasonRequired, s.AutoPunchedOutReason,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return attendance.Summary{}, err
	}
	return s, nil
}

// GetByID implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + summaryColumns + ` FROM attendance_summaries WHERE id = $1`
	s, err := scanSummary(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Summary{}, attendance.ErrSummaryNotFound
		}
		return attendance.Summary{}, err
	}
	return s, nil
}

// GetByIDForUpdate implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + summaryColumns + ` FROM attendance_summaries WHERE id = $1 FOR UPDATE`
	s, err := scanSummary(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Summary{}, attendance.ErrSummaryNotFound
		}
		return attendance.Summary{}, err
	}
	return s, nil
}

// GetByUserAndDate implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + summaryColumns + ` FROM attendance_summaries WHERE user_id = $1 AND date = $2`
	s, err := scanSummary(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Summary{}, attendance.ErrSummaryNotFound
		}
		return attendance.Summary{}, err
	}
	return s, nil
}

// GetByUserAndDateForUpdate implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + summaryColumns + ` FROM attendance_summaries WHERE user_id = $1 AND date = $2 FOR UPDATE`
	s, err := scanSummary(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Summary{}, attendance.ErrSummaryNotFound
		}
		return attendance.Summary{}, err
	}
	return s, nil
}

// Update implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) Update(ctx context.Context, s attendance.Summary) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendance_summaries SET
			check_in_time = $1,
			check_out_time = $2,
			worked_hours = $3,
			status = $4,
			check_in_status = $5,
			late_minutes = $6,
			is_modified = $7,
			auto_punched_out = $8,
			auto_punched_out_reason_required = $9,
			auto_punched_out_reason = $10,
			updated_at = NOW()
		WHERE id = $11
	`
	commandTag, err := q.Exec(ctx, query,
		s.CheckInTime, s.CheckOutTime, s.WorkedHours,
		s.Status, s.CheckInStatus, s.LateMinutes, s.IsModified,
		s.AutoPunchedOut, s.AutoPunchedOutReasonRequired, s.AutoPunchedOutReason,
		s.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrSummaryNotFound
	}
	return nil
}

// List implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) List(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Summary, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}
	argIdx := 2

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_summaries WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + summaryColumns + ` FROM attendance_summaries WHERE ` + where +
		fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []attendance.Summary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// ListOpenForDate implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) ListOpenForDate(ctx context.Context, date time.Time) ([]attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + summaryColumns + `
		FROM attendance_summaries
		WHERE date = $1 AND check_out_time IS NULL AND status = 'incomplete'
		ORDER BY user_id`
	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []attendance.Summary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// CountAutoPunchedOutSince implements attendance.SummaryRepository.
func (r *summaryRepositoryImpl) CountAutoPunchedOutSince(ctx context.Context, since time.Time) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT user_id, COUNT(*)
		FROM attendance_summaries
		WHERE auto_punched_out = true AND date >= $1
		GROUP BY user_id
	`
	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var userID string
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, err
		}
		counts[userID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
