package service

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"github.com/tripnest/vacation-api/internal/domain"
	"github.com/tripnest/vacation-api/internal/media"
	"github.com/tripnest/vacation-api/internal/repository/ports"
)

const (
	minVacationPrice = 0
	maxVacationPrice = 10000
)

type VacationService struct {
	vacations ports.VacationRepository
	followers ports.FollowerRepository
	store     media.Store
	now       func() time.Time
}

func NewVacationService(vacations ports.VacationRepository, followers ports.FollowerRepository, store media.Store) *VacationService {
	return &VacationService{
		vacations: vacations,
		followers: followers,
		store:     store,
		now:       time.Now,
	}
}

type VacationInput struct {
	Destination string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Price       float64
}

func (in VacationInput) validate() error {
	if strings.TrimSpace(in.Destination) == "" {
		return Invalid("destination is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return Invalid("description is required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return Invalid("start_date and end_date are required")
	}
	// Written so NaN fails the range check too; "NaN" parses as a float.
	if !(in.Price >= minVacationPrice && in.Price <= maxVacationPrice) || math.IsInf(in.Price, 0) {
		return Invalid("price must be between %d and %d", minVacationPrice, maxVacationPrice)
	}
	if in.EndDate.Before(in.StartDate) {
		return Invalid("end_date must not precede start_date")
	}
	return nil
}

// Create runs the staged two-phase media protocol: the image is staged under
// a generated name, the row is inserted referencing that name, and only then
// is the object promoted into public storage. A failed insert discards the
// staged object so no orphan file is left behind.
func (s *VacationService) Create(ctx context.Context, input VacationInput, image *media.Upload) (*domain.Vacation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	now := s.now()
	if !input.StartDate.After(now) {
		return nil, Invalid("start_date must be in the future")
	}
	if !input.EndDate.After(now) {
		return nil, Invalid("end_date must be in the future")
	}
	if image == nil {
		return nil, Invalid("image file is required")
	}

	name, err := s.store.Stage(ctx, *image)
	if err != nil {
		return nil, err
	}

	stored, err := s.vacations.Create(ctx, &domain.Vacation{
		Destination: strings.TrimSpace(input.Destination),
		Description: strings.TrimSpace(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Price:       input.Price,
		Image:       name,
	})
	if err != nil {
		_ = s.store.Discard(ctx, name)
		return nil, err
	}

	if err := s.store.Promote(ctx, name); err != nil {
		// The row is committed; the object stays in staging for a retry.
		log.Printf("vacation %d: image %s committed but not promoted: %v", stored.ID, name, err)
		return nil, err
	}
	return stored, nil
}

// Update edits possibly-past data, so dates only need end >= start. A
// replacement image follows the same stage-commit-promote protocol, and the
// previously stored file is removed once the row update has committed.
func (s *VacationService) Update(ctx context.Context, id int64, input VacationInput, image *media.Upload) (*domain.Vacation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var oldImage, newName string
	if image != nil {
		existing, err := s.vacations.FindByID(ctx, id, true)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrVacationNotFound
			}
			return nil, err
		}
		oldImage = existing.Image

		newName, err = s.store.Stage(ctx, *image)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.vacations.Update(ctx, &domain.Vacation{
		ID:          id,
		Destination: strings.TrimSpace(input.Destination),
		Description: strings.TrimSpace(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Price:       input.Price,
		Image:       newName,
	})
	if err != nil {
		if newName != "" {
			_ = s.store.Discard(ctx, newName)
		}
		if isNotFound(err) {
			return nil, ErrVacationNotFound
		}
		return nil, err
	}

	if newName != "" {
		if err := s.store.Promote(ctx, newName); err != nil {
			log.Printf("vacation %d: image %s committed but not promoted: %v", id, newName, err)
			return nil, err
		}
		if oldImage != "" && oldImage != newName {
			_ = s.store.Remove(ctx, oldImage)
		}
	}
	return updated, nil
}

// List returns active vacations in ascending id order, each enriched with the
// ids of its current followers. The relation is fetched in one batched query
// and joined in memory.
func (s *VacationService) List(ctx context.Context) ([]domain.VacationWithFollowers, error) {
	vacations, err := s.vacations.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(vacations))
	for _, v := range vacations {
		ids = append(ids, v.ID)
	}
	followerIDs, err := s.followers.ListFollowerIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	enriched := make([]domain.VacationWithFollowers, 0, len(vacations))
	for _, v := range vacations {
		followers := followerIDs[v.ID]
		if followers == nil {
			followers = []int64{}
		}
		enriched = append(enriched, domain.VacationWithFollowers{
			Vacation:       v,
			FollowersCount: len(followers),
			FollowersArray: followers,
		})
	}
	return enriched, nil
}

func (s *VacationService) Get(ctx context.Context, id int64, includeInactive bool) (*domain.Vacation, error) {
	vacation, err := s.vacations.FindByID(ctx, id, includeInactive)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVacationNotFound
		}
		return nil, err
	}
	return vacation, nil
}

// Delete flips the status flag. The stored image and any follower rows
// referencing the vacation are left untouched.
func (s *VacationService) Delete(ctx context.Context, id int64) error {
	if err := s.vacations.SoftDelete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrVacationNotFound
		}
		return err
	}
	return nil
}
