package ports

import (
	"context"

	"github.com/tripnest/vacation-api/internal/domain"
)

type FollowerRepository interface {
	// Upsert atomically inserts or rewrites the row for the
	// (user, vacation) pair. The bool reports whether a new row was
	// created rather than an existing one updated.
	Upsert(ctx context.Context, userID, vacationID int64, status domain.FollowStatus) (*domain.Follower, bool, error)
	// ListFollowerIDs returns, for every given vacation id, the ids of
	// users whose row currently has status "follow".
	ListFollowerIDs(ctx context.Context, vacationIDs []int64) (map[int64][]int64, error)
}
