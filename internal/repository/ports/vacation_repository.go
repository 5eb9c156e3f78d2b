package ports

import (
	"context"

	"github.com/tripnest/vacation-api/internal/domain"
)

type VacationRepository interface {
	Create(ctx context.Context, vacation *domain.Vacation) (*domain.Vacation, error)
	// Update rewrites every mutable field of the row; an empty image name
	// keeps the stored one. Returns a not-found error when no row matched.
	Update(ctx context.Context, vacation *domain.Vacation) (*domain.Vacation, error)
	FindByID(ctx context.Context, id int64, includeInactive bool) (*domain.Vacation, error)
	ListActive(ctx context.Context) ([]domain.Vacation, error)
	SoftDelete(ctx context.Context, id int64) error
}
