package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/leave"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
)

const balanceColumns = `
	id, user_id, leave_type_id, year,
	total_entitlement, initial_carry_forward, days_taken, remaining_balance,
	created_at, updated_at
`

type balanceRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &balanceRepositoryImpl{db: db}
}

func scanBalance(row pgx.Row) (leave.Balance, error) {
	var b leave.Balance
	err := row.Scan(
		&b.ID, &b.UserID, &b.LeaveTypeID, &b.Year,
		&b.TotalEntitlement, &b.InitialCarryForward, &b.DaysTaken, &b.RemainingBalance,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// Create implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) Create(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_balances (
			id, user_id, leave_type_id, year,
			total_entitlement, initial_carry_forward, days_taken, remaining_balance,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		b.UserID, b.LeaveTypeID, b.Year,
		b.TotalEntitlement, b.InitialCarryForward, b.DaysTaken, b.RemainingBalance,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return leave.Balance{}, err
	}
	return b, nil
}

// GetByUserTypeYear implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) GetByUserTypeYear(ctx context.Context, userID, leaveTypeID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + balanceColumns + ` FROM leave_balances WHERE user_id = $1 AND leave_type_id = $2 AND year = $3`
	b, err := scanBalance(q.QueryRow(ctx, query, userID, leaveTypeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}
	return b, nil
}

// GetForUpdate implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) GetForUpdate(ctx context.Context, userID, leaveTypeID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + balanceColumns + ` FROM leave_balances WHERE user_id = $1 AND leave_type_id = $2 AND year = $3 FOR UPDATE`
	b, err := scanBalance(q.QueryRow(ctx, query, userID, leaveTypeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}
	return b, nil
}

// Update implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) Update(ctx context.Context, b leave.Balance) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_balances SET
			total_entitlement = $1,
			initial_carry_forward = $2,
			days_taken = $3,
			remaining_balance = $4,
			updated_at = NOW()
		WHERE id = $5
	`
	commandTag, err := q.Exec(ctx, query,
		b.TotalEntitlement, b.InitialCarryForward, b.DaysTaken, b.RemainingBalance, b.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// ListByUser implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) ListByUser(ctx context.Context, userID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + balanceColumns + ` FROM leave_balances WHERE user_id = $1 AND year = $2 ORDER BY leave_type_id`
	rows, err := q.Query(ctx, query, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return balances, nil
}

// ListAll implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) ListAll(ctx context.Context, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + balanceColumns + ` FROM leave_balances WHERE year = $1 ORDER BY user_id, leave_type_id`
	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return balances, nil
}
