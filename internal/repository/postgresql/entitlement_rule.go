package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/leave"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
)

type entitlementRuleRepositoryImpl struct {
	db *database.DB
}

func NewEntitlementRuleRepository(db *database.DB) leave.EntitlementRuleRepository {
	return &entitlementRuleRepositoryImpl{db: db}
}

// FindMatching implements leave.EntitlementRuleRepository.
func (r *entitlementRuleRepositoryImpl) FindMatching(ctx context.Context, leaveTypeID, employmentType string, yearsOfService, effectiveYear int) (leave.EntitlementRule, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, leave_type_id, employment_type,
			   min_years_service, max_years_service, effective_year,
			   entitlement_days, created_at
		FROM entitlement_rules
		WHERE leave_type_id = $1
		  AND employment_type = $2
		  AND min_years_service <= $3
		  AND max_years_service >= $3
		  AND effective_year <= $4
		ORDER BY effective_year DESC, min_years_service DESC
		LIMIT 1
	`
	var rule leave.EntitlementRule
	err := q.QueryRow(ctx, query, leaveTypeID, employmentType, yearsOfService, effectiveYear).Scan(
		&rule.ID, &rule.LeaveTypeID, &rule.EmploymentType,
		&rule.MinYearsService, &rule.MaxYearsService, &rule.EffectiveYear,
		&rule.EntitlementDays, &rule.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.EntitlementRule{}, leave.ErrNoMatchingRule
		}
		return leave.EntitlementRule{}, err
	}
	return rule, nil
}
