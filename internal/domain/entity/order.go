package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido a proveedor.
const (
	OrderStatusDraft     = "DRAFT"
	OrderStatusSent      = "SENT"
	OrderStatusReceived  = "RECEIVED"
	OrderStatusCancelled = "CANCELLED"
)

// Order pedido a proveedor: la línea base contra la que se concilia la
// factura recibida.
type Order struct {
	ID         string
	VenueID    string
	SupplierID string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderLine línea esperada de un pedido. Qty y UnitCost nil se tratan como
// desconocidos (cantidad 0 / precio sin acordar) en la conciliación.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	SKU       string
	Name      string
	Qty       *decimal.Decimal
	UnitCost  *decimal.Decimal
}
