package domain

import "time"

const (
	VacationStatusActive  int16 = 1
	VacationStatusDeleted int16 = 0
)

// Vacation rows are never physically removed; deletion flips Status to
// VacationStatusDeleted and list queries filter on the active flag.
type Vacation struct {
	ID          int64     `db:"id" json:"id"`
	Destination string    `db:"destination" json:"destination"`
	Description string    `db:"description" json:"description"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	Price       float64   `db:"price" json:"price"`
	Image       string    `db:"image" json:"image"`
	Status      int16     `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

func (v *Vacation) IsActive() bool {
	return v.Status == VacationStatusActive
}

// VacationWithFollowers is the list-endpoint shape: a vacation enriched with
// the ids of users currently following it.
type VacationWithFollowers struct {
	Vacation
	FollowersCount int     `json:"followersCount"`
	FollowersArray []int64 `json:"followersArray"`
}
