package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/tripnest/vacation-api/internal/domain"
	"github.com/tripnest/vacation-api/internal/media"
)

type fakeVacationRepo struct {
	createInput  *domain.Vacation
	createResult *domain.Vacation
	createErr    error

	updateInput  *domain.Vacation
	updateResult *domain.Vacation
	updateErr    error

	findResult *domain.Vacation
	findErr    error

	listResult []domain.Vacation
	listErr    error

	softDeletedID int64
	softDeleteErr error
}

func (f *fakeVacationRepo) Create(ctx context.Context, v *domain.Vacation) (*domain.Vacation, error) {
	f.createInput = v
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResult != nil {
		return f.createResult, nil
	}
	stored := *v
	stored.ID = 1
	stored.Status = domain.VacationStatusActive
	return &stored, nil
}

func (f *fakeVacationRepo) Update(ctx context.Context, v *domain.Vacation) (*domain.Vacation, error) {
	f.updateInput = v
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateResult != nil {
		return f.updateResult, nil
	}
	stored := *v
	return &stored, nil
}

func (f *fakeVacationRepo) FindByID(ctx context.Context, id int64, includeInactive bool) (*domain.Vacation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.findResult == nil {
		return nil, sql.ErrNoRows
	}
	if !includeInactive && !f.findResult.IsActive() {
		return nil, sql.ErrNoRows
	}
	return f.findResult, nil
}

func (f *fakeVacationRepo) ListActive(ctx context.Context) ([]domain.Vacation, error) {
	return f.listResult, f.listErr
}

func (f *fakeVacationRepo) SoftDelete(ctx context.Context, id int64) error {
	f.softDeletedID = id
	return f.softDeleteErr
}

type fakeFollowerRepo struct {
	upsertStatus domain.FollowStatus
	upsertResult *domain.Follower
	upsertCreate bool
	upsertErr    error
	upsertCalls  int

	listInput  []int64
	listResult map[int64][]int64
	listErr    error
}

func (f *fakeFollowerRepo) Upsert(ctx context.Context, userID, vacationID int64, status domain.FollowStatus) (*domain.Follower, bool, error) {
	f.upsertCalls++
	f.upsertStatus = status
	if f.upsertErr != nil {
		return nil, false, f.upsertErr
	}
	if f.upsertResult != nil {
		return f.upsertResult, f.upsertCreate, nil
	}
	now := time.Now()
	return &domain.Follower{ID: 1, UserID: userID, VacationID: vacationID, Status: status, CreatedAt: now, UpdatedAt: now}, true, nil
}

func (f *fakeFollowerRepo) ListFollowerIDs(ctx context.Context, vacationIDs []int64) (map[int64][]int64, error) {
	f.listInput = vacationIDs
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listResult == nil {
		return map[int64][]int64{}, nil
	}
	return f.listResult, nil
}

type fakeMediaStore struct {
	stageErr   error
	promoteErr error
	staged     []string
	promoted   []string
	discarded  []string
	removed    []string
}

func (f *fakeMediaStore) Stage(ctx context.Context, upload media.Upload) (string, error) {
	if f.stageErr != nil {
		return "", f.stageErr
	}
	name := media.ObjectName(upload.FileName)
	f.staged = append(f.staged, name)
	return name, nil
}

func (f *fakeMediaStore) Promote(ctx context.Context, name string) error {
	if f.promoteErr != nil {
		return f.promoteErr
	}
	f.promoted = append(f.promoted, name)
	return nil
}

func (f *fakeMediaStore) Discard(ctx context.Context, name string) error {
	f.discarded = append(f.discarded, name)
	return nil
}

func (f *fakeMediaStore) Remove(ctx context.Context, name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func (f *fakeMediaStore) URL(name string) string {
	return "/images/" + name
}

func fixedNow() time.Time {
	return time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func futureInput() VacationInput {
	return VacationInput{
		Destination: "Lisbon",
		Description: "A week on the coast",
		StartDate:   fixedNow().AddDate(0, 1, 0),
		EndDate:     fixedNow().AddDate(0, 1, 7),
		Price:       1200,
	}
}

func testUpload() *media.Upload {
	return &media.Upload{
		Reader:      strings.NewReader("image-bytes"),
		Size:        11,
		FileName:    "beach.jpg",
		ContentType: "image/jpeg",
	}
}

func newVacationService(vacations *fakeVacationRepo, followers *fakeFollowerRepo, store *fakeMediaStore) *VacationService {
	svc := NewVacationService(vacations, followers, store)
	svc.now = fixedNow
	return svc
}

func TestVacationService_Create_Validation(t *testing.T) {
	repo := &fakeVacationRepo{}
	store := &fakeMediaStore{}
	svc := newVacationService(repo, &fakeFollowerRepo{}, store)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*VacationInput)
	}{
		{"missing destination", func(in *VacationInput) { in.Destination = "" }},
		{"missing description", func(in *VacationInput) { in.Description = " " }},
		{"price too high", func(in *VacationInput) { in.Price = 10001 }},
		{"price negative", func(in *VacationInput) { in.Price = -1 }},
		{"price NaN", func(in *VacationInput) { in.Price = math.NaN() }},
		{"price infinite", func(in *VacationInput) { in.Price = math.Inf(1) }},
		{"end before start", func(in *VacationInput) { in.EndDate = in.StartDate.AddDate(0, 0, -1) }},
		{"start in the past", func(in *VacationInput) { in.StartDate = fixedNow().AddDate(0, 0, -1) }},
	}
	for _, tc := range cases {
		input := futureInput()
		tc.mutate(&input)
		if _, err := svc.Create(ctx, input, testUpload()); !IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}

	if _, err := svc.Create(ctx, futureInput(), nil); !IsValidation(err) {
		t.Fatalf("expected validation error for missing image")
	}
	if repo.createInput != nil {
		t.Fatalf("expected no insert for invalid input")
	}
	if len(store.staged) != 0 {
		t.Fatalf("expected nothing staged for invalid input")
	}
}

func TestVacationService_Create_StagesThenPromotes(t *testing.T) {
	repo := &fakeVacationRepo{}
	store := &fakeMediaStore{}
	svc := newVacationService(repo, &fakeFollowerRepo{}, store)

	vacation, err := svc.Create(context.Background(), futureInput(), testUpload())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(store.staged) != 1 || len(store.promoted) != 1 {
		t.Fatalf("expected one stage and one promote, got %d/%d", len(store.staged), len(store.promoted))
	}
	if repo.createInput.Image != store.staged[0] {
		t.Fatalf("expected row to reference staged object %q, got %q", store.staged[0], repo.createInput.Image)
	}
	if vacation.Status != domain.VacationStatusActive {
		t.Fatalf("expected new vacation to be active")
	}
}

func TestVacationService_Create_DiscardsStagedOnInsertFailure(t *testing.T) {
	repo := &fakeVacationRepo{createErr: errors.New("insert failed")}
	store := &fakeMediaStore{}
	svc := newVacationService(repo, &fakeFollowerRepo{}, store)

	if _, err := svc.Create(context.Background(), futureInput(), testUpload()); err == nil {
		t.Fatalf("expected insert error to propagate")
	}
	if len(store.discarded) != 1 || store.discarded[0] != store.staged[0] {
		t.Fatalf("expected staged object to be discarded after insert failure")
	}
	if len(store.promoted) != 0 {
		t.Fatalf("expected no promotion after insert failure")
	}
}

func TestVacationService_Create_PromoteFailureKeepsStagedObject(t *testing.T) {
	repo := &fakeVacationRepo{}
	store := &fakeMediaStore{promoteErr: errors.New("copy failed")}
	svc := newVacationService(repo, &fakeFollowerRepo{}, store)

	if _, err := svc.Create(context.Background(), futureInput(), testUpload()); err == nil {
		t.Fatalf("expected promote error to propagate")
	}
	if repo.createInput == nil {
		t.Fatalf("expected the row insert to have happened before promotion")
	}
	// The committed row references the object, so it must stay staged for a
	// later retry rather than be discarded.
	if len(store.discarded) != 0 {
		t.Fatalf("staged object must survive a failed promotion, got discards %v", store.discarded)
	}
}

func TestVacationService_Update_AllowsPastDates(t *testing.T) {
	repo := &fakeVacationRepo{}
	svc := newVacationService(repo, &fakeFollowerRepo{}, &fakeMediaStore{})

	input := futureInput()
	input.StartDate = fixedNow().AddDate(-1, 0, 0)
	input.EndDate = fixedNow().AddDate(-1, 0, 7)

	if _, err := svc.Update(context.Background(), 3, input, nil); err != nil {
		t.Fatalf("Update returned error for past dates: %v", err)
	}
	if repo.updateInput.Image != "" {
		t.Fatalf("expected empty image name when no upload given, got %q", repo.updateInput.Image)
	}
}

func TestVacationService_Update_RejectsEndBeforeStart(t *testing.T) {
	svc := newVacationService(&fakeVacationRepo{}, &fakeFollowerRepo{}, &fakeMediaStore{})

	input := futureInput()
	input.EndDate = input.StartDate.AddDate(0, 0, -2)
	if _, err := svc.Update(context.Background(), 3, input, nil); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVacationService_Update_ReplacesImage(t *testing.T) {
	repo := &fakeVacationRepo{
		findResult: &domain.Vacation{ID: 3, Image: "old-image.jpg", Status: domain.VacationStatusActive},
	}
	store := &fakeMediaStore{}
	svc := newVacationService(repo, &fakeFollowerRepo{}, store)

	if _, err := svc.Update(context.Background(), 3, futureInput(), testUpload()); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(store.staged) != 1 || len(store.promoted) != 1 {
		t.Fatalf("expected replacement image staged and promoted")
	}
	if len(store.removed) != 1 || store.removed[0] != "old-image.jpg" {
		t.Fatalf("expected old image removed after commit, got %v", store.removed)
	}
	if repo.updateInput.Image != store.staged[0] {
		t.Fatalf("expected update to carry the new object name")
	}
}

func TestVacationService_Update_NotFound(t *testing.T) {
	repo := &fakeVacationRepo{updateErr: sql.ErrNoRows}
	svc := newVacationService(repo, &fakeFollowerRepo{}, &fakeMediaStore{})

	if _, err := svc.Update(context.Background(), 99, futureInput(), nil); !errors.Is(err, ErrVacationNotFound) {
		t.Fatalf("expected ErrVacationNotFound, got %v", err)
	}
}

func TestVacationService_List_EnrichesFollowers(t *testing.T) {
	repo := &fakeVacationRepo{
		listResult: []domain.Vacation{
			{ID: 1, Destination: "Lisbon", Status: domain.VacationStatusActive},
			{ID: 2, Destination: "Oslo", Status: domain.VacationStatusActive},
		},
	}
	followers := &fakeFollowerRepo{
		listResult: map[int64][]int64{1: {10, 11}},
	}
	svc := newVacationService(repo, followers, &fakeMediaStore{})

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 vacations, got %d", len(list))
	}
	if list[0].FollowersCount != 2 || len(list[0].FollowersArray) != 2 {
		t.Fatalf("expected vacation 1 to carry two followers, got %+v", list[0])
	}
	if list[1].FollowersCount != 0 || list[1].FollowersArray == nil {
		t.Fatalf("expected vacation 2 to carry an empty, non-nil follower array, got %+v", list[1])
	}
	if len(followers.listInput) != 2 {
		t.Fatalf("expected a single batched follower fetch for both ids, got %v", followers.listInput)
	}
}

func TestVacationService_Get_SoftDeleteVisibility(t *testing.T) {
	repo := &fakeVacationRepo{
		findResult: &domain.Vacation{ID: 5, Status: domain.VacationStatusDeleted},
	}
	svc := newVacationService(repo, &fakeFollowerRepo{}, &fakeMediaStore{})
	ctx := context.Background()

	// Default behavior surfaces soft-deleted rows.
	vacation, err := svc.Get(ctx, 5, true)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if vacation.IsActive() {
		t.Fatalf("expected inactive vacation")
	}

	if _, err := svc.Get(ctx, 5, false); !errors.Is(err, ErrVacationNotFound) {
		t.Fatalf("expected ErrVacationNotFound when filtering inactive rows, got %v", err)
	}
}

func TestVacationService_Delete(t *testing.T) {
	repo := &fakeVacationRepo{}
	svc := newVacationService(repo, &fakeFollowerRepo{}, &fakeMediaStore{})

	if err := svc.Delete(context.Background(), 4); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if repo.softDeletedID != 4 {
		t.Fatalf("expected soft delete of id 4, got %d", repo.softDeletedID)
	}

	repo.softDeleteErr = sql.ErrNoRows
	if err := svc.Delete(context.Background(), 99); !errors.Is(err, ErrVacationNotFound) {
		t.Fatalf("expected ErrVacationNotFound, got %v", err)
	}
}
