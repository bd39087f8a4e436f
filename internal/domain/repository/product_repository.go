package repository

import (
	"context"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
)

// ProductRepository puerto de catálogo de productos (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByVenue(ctx context.Context, venueID string) ([]*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
}
