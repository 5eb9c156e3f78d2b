package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/tripnest/vacation-api/internal/domain"
	"github.com/tripnest/vacation-api/internal/repository/ports"
)

type FollowerRepository struct {
	db *sqlx.DB
}

func NewFollowerRepo(db *sqlx.DB) *FollowerRepository {
	return &FollowerRepository{db: db}
}

// Upsert is a single atomic write keyed on the (user_id, vacation_id) unique
// constraint. A fresh row keeps created_at == updated_at, which is how the
// caller learns whether the pair was stored or updated.
func (r *FollowerRepository) Upsert(ctx context.Context, userID, vacationID int64, status domain.FollowStatus) (*domain.Follower, bool, error) {
	const query = `
        INSERT INTO followers (user_id, vacation_id, status)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, vacation_id) DO UPDATE
        SET status = EXCLUDED.status,
            updated_at = now()
        RETURNING id, user_id, vacation_id, status, created_at, updated_at
    `

	row := r.db.QueryRowxContext(ctx, query, userID, vacationID, status)
	var follower domain.Follower
	if err := row.StructScan(&follower); err != nil {
		return nil, false, err
	}
	created := follower.UpdatedAt.Equal(follower.CreatedAt)
	return &follower, created, nil
}

// ListFollowerIDs fetches the whole follow relation for a batch of vacations
// in one round-trip; the list endpoint joins the result in memory instead of
// issuing per-vacation queries.
func (r *FollowerRepository) ListFollowerIDs(ctx context.Context, vacationIDs []int64) (map[int64][]int64, error) {
	result := make(map[int64][]int64, len(vacationIDs))
	if len(vacationIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
        SELECT vacation_id, user_id
        FROM followers
        WHERE status = 'follow' AND vacation_id IN (?)
        ORDER BY vacation_id, user_id
    `, vacationIDs)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var vacationID, userID int64
		if err := rows.Scan(&vacationID, &userID); err != nil {
			return nil, err
		}
		result[vacationID] = append(result[vacationID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

var _ ports.FollowerRepository = (*FollowerRepository)(nil)
