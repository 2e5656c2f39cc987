package postgresql

import (
	"context"
	"time"

	"github.com/worktrace-hq/worktrace-backend-go/internal/domain/punch"
	"github.com/worktrace-hq/worktrace-backend-go/internal/pkg/database"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// Create implements punch.PunchRepository.
func (r *punchRepositoryImpl) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO punches (
			id, user_id, event_type, event_time,
			latitude, longitude, accuracy_meters,
			source, notes, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW()
		) RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		p.UserID, p.EventType, p.EventTime,
		p.Latitude, p.Longitude, p.AccuracyMeters,
		p.Source, p.Notes,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return punch.Punch{}, err
	}
	return p, nil
}

// ListByUserAndDate implements punch.PunchRepository.
func (r *punchRepositoryImpl) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, user_id, event_type, event_time,
			   latitude, longitude, accuracy_meters,
			   source, notes, created_at
		FROM punches
		WHERE user_id = $1
		  AND event_time >= $2 AND event_time < $2 + INTERVAL '1 day'
		ORDER BY event_time
	`
	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		var p punch.Punch
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.EventType, &p.EventTime,
			&p.Latitude, &p.Longitude, &p.AccuracyMeters,
			&p.Source, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return punches, nil
}
