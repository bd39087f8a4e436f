package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/repository"
)

var _ repository.VenueRepository = (*VenueRepo)(nil)

// VenueRepo implementación del puerto VenueRepository sobre PostgreSQL.
type VenueRepo struct {
	q Querier
}

// NewVenueRepository construye el adaptador de persistencia para venues.
func NewVenueRepository(q Querier) *VenueRepo {
	return &VenueRepo{q: q}
}

// GetByID obtiene un venue con sus módulos contratados. (nil, nil) si no existe.
func (r *VenueRepo) GetByID(ctx context.Context, id string) (*entity.Venue, error) {
	query := `
		SELECT id, name, timezone, currency, created_at, updated_at
		FROM venues WHERE id = $1`
	var v entity.Venue
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Timezone, &v.Currency, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venue by id: %w", err)
	}

	rows, err := r.q.Query(ctx, `SELECT module, expires_at FROM venue_modules WHERE venue_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get venue modules: %w", err)
	}
	defer rows.Close()
	v.Modules = make(map[string]time.Time)
	for rows.Next() {
		var module string
		var expires time.Time
		if err := rows.Scan(&module, &expires); err != nil {
			return nil, fmt.Errorf("scan venue module: %w", err)
		}
		v.Modules[module] = expires
	}
	return &v, rows.Err()
}

// ListDepartments lista los departamentos de un venue ordenados por nombre.
func (r *VenueRepo) ListDepartments(ctx context.Context, venueID string) ([]entity.Department, error) {
	query := `
		SELECT id, venue_id, name, created_at
		FROM departments WHERE venue_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()
	var list []entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.VenueID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// HasActiveModule informa si el venue tiene el módulo activo y sin vencer.
func (r *VenueRepo) HasActiveModule(ctx context.Context, venueID, moduleName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM venue_modules
			WHERE venue_id = $1 AND module = $2 AND expires_at > now())`
	var active bool
	if err := r.q.QueryRow(ctx, query, venueID, moduleName).Scan(&active); err != nil {
		return false, fmt.Errorf("check venue module: %w", err)
	}
	return active, nil
}
