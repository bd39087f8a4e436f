package repository

import (
	"context"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
)

// SupplierRepository puerto de proveedores (DIP).
type SupplierRepository interface {
	ListByVenue(ctx context.Context, venueID string) ([]*entity.Supplier, error)
	Create(ctx context.Context, s *entity.Supplier) error
}
