package domain

import "time"

type FollowStatus string

const (
	FollowStatusFollow   FollowStatus = "follow"
	FollowStatusUnfollow FollowStatus = "unfollow"
)

func (s FollowStatus) Valid() bool {
	return s == FollowStatusFollow || s == FollowStatusUnfollow
}

// Follower holds at most one row per (user, vacation) pair. Unfollowing
// rewrites the status instead of deleting the row, so the relation keeps its
// history.
type Follower struct {
	ID         int64        `db:"id" json:"id"`
	UserID     int64        `db:"user_id" json:"user_id"`
	VacationID int64        `db:"vacation_id" json:"vacation_id"`
	Status     FollowStatus `db:"status" json:"status"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}
