package service

import (
	"context"
	"strings"

	"github.com/tripnest/vacation-api/internal/domain"
	"github.com/tripnest/vacation-api/internal/repository/ports"
)

type FollowerService struct {
	followers ports.FollowerRepository
}

func NewFollowerService(followers ports.FollowerRepository) *FollowerService {
	return &FollowerService{followers: followers}
}

// SetStatus upserts the (user, vacation) pair. The returned bool reports
// whether a new row was stored as opposed to an existing one updated; calling
// follow twice in a row is an idempotent update.
func (s *FollowerService) SetStatus(ctx context.Context, userID, vacationID int64, status string) (*domain.Follower, bool, error) {
	if userID <= 0 {
		return nil, false, Invalid("user_id is required")
	}
	if vacationID <= 0 {
		return nil, false, Invalid("vacation_id is required")
	}
	followStatus := domain.FollowStatus(strings.TrimSpace(status))
	if !followStatus.Valid() {
		return nil, false, Invalid(`status must be either "follow" or "unfollow"`)
	}
	return s.followers.Upsert(ctx, userID, vacationID, followStatus)
}
