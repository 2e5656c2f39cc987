package postgresql

import (
	"context"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/leave"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) leave.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements leave.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h leave.Holiday) (leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO holidays (id, name, start_date, end_date, is_recurring, created_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query, h.Name, h.StartDate, h.EndDate, h.IsRecurring).
		Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return leave.Holiday{}, err
	}
	return h, nil
}

// Delete implements leave.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	commandTag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrHolidayNotFound
	}
	return nil
}

// List implements leave.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, start_date, end_date, is_recurring, created_at
		FROM holidays
		ORDER BY start_date
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []leave.Holiday
	for rows.Next() {
		var h leave.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.StartDate, &h.EndDate, &h.IsRecurring, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}

// ListOverlapping implements leave.HolidayRepository. Recurring holidays are
// always returned since their month/day can fall in any year of the range.
func (r *holidayRepositoryImpl) ListOverlapping(ctx context.Context, start, end time.Time) ([]leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, start_date, end_date, is_recurring, created_at
		FROM holidays
		WHERE is_recurring = true
		   OR (start_date <= $2 AND end_date >= $1)
		ORDER BY start_date
	`
	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []leave.Holiday
	for rows.Next() {
		var h leave.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.StartDate, &h.EndDate, &h.IsRecurring, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}
