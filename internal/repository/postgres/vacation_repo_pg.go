package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/tripnest/vacation-api/internal/domain"
	"github.com/tripnest/vacation-api/internal/repository/ports"
)

type VacationRepository struct {
	db *sqlx.DB
}

func NewVacationRepo(db *sqlx.DB) *VacationRepository {
	return &VacationRepository{db: db}
}

const vacationColumns = `id, destination, description, start_date, end_date, price, image, status, created_at, updated_at`

func (r *VacationRepository) Create(ctx context.Context, vacation *domain.Vacation) (*domain.Vacation, error) {
	const query = `
        INSERT INTO vacation (destination, description, start_date, end_date, price, image)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + vacationColumns

	row := r.db.QueryRowxContext(ctx, query,
		vacation.Destination, vacation.Description, vacation.StartDate, vacation.EndDate, vacation.Price, vacation.Image)
	var stored domain.Vacation
	if err := row.StructScan(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *VacationRepository) Update(ctx context.Context, vacation *domain.Vacation) (*domain.Vacation, error) {
	const query = `
        UPDATE vacation
        SET destination = $2,
            description = $3,
            start_date = $4,
            end_date = $5,
            price = $6,
            image = COALESCE(NULLIF($7, ''), image),
            updated_at = now()
        WHERE id = $1
        RETURNING ` + vacationColumns

	row := r.db.QueryRowxContext(ctx, query,
		vacation.ID, vacation.Destination, vacation.Description, vacation.StartDate, vacation.EndDate, vacation.Price, vacation.Image)
	var stored domain.Vacation
	if err := row.StructScan(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindByID returns soft-deleted rows as well unless includeInactive is false.
// The by-id endpoint deliberately sees inactive vacations while the list
// endpoint never does.
func (r *VacationRepository) FindByID(ctx context.Context, id int64, includeInactive bool) (*domain.Vacation, error) {
	query := `SELECT ` + vacationColumns + ` FROM vacation WHERE id = $1`
	if !includeInactive {
		query += ` AND status = 1`
	}
	var vacation domain.Vacation
	if err := r.db.GetContext(ctx, &vacation, query, id); err != nil {
		return nil, err
	}
	return &vacation, nil
}

func (r *VacationRepository) ListActive(ctx context.Context) ([]domain.Vacation, error) {
	const query = `
        SELECT ` + vacationColumns + `
        FROM vacation
        WHERE status = 1
        ORDER BY id ASC
    `

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Vacation, 0)
	for rows.Next() {
		var item domain.Vacation
		if err := rows.StructScan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *VacationRepository) SoftDelete(ctx context.Context, id int64) error {
	// Postgres counts matched rows, so an unconstrained UPDATE would report
	// success for an already-deleted vacation. Matching only active rows
	// makes a repeat delete surface as not-found.
	const query = `
        UPDATE vacation
        SET status = 0, updated_at = now()
        WHERE id = $1 AND status = 1
    `
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.VacationRepository = (*VacationRepository)(nil)
