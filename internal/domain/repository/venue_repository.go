package repository

import (
	"context"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
)

// VenueRepository puerto de locales y sus departamentos (DIP).
type VenueRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Venue, error)
	ListDepartments(ctx context.Context, venueID string) ([]entity.Department, error)

	// HasActiveModule informa si el local tiene el módulo SaaS activo y sin
	// vencer. Devuelve false sin error si no está contratado; error solo
	// ante fallos de infraestructura.
	HasActiveModule(ctx context.Context, venueID, moduleName string) (bool, error)
}
