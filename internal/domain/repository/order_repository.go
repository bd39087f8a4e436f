package repository

import (
	"context"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
)

// OrderRepository puerto de pedidos a proveedor (DIP).
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// ListLines devuelve las líneas esperadas de un pedido, en el orden en
	// que se crearon (el conciliador respeta ese orden: primera indexada gana).
	ListLines(ctx context.Context, orderID string) ([]entity.OrderLine, error)
}
