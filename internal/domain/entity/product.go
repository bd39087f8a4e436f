package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de un local.
// Par es el nivel objetivo global; DeptPar lleva los overrides por
// departamento (columna JSONB). Los punteros nil significan "no definido"
// y se propagan así hasta el motor de cálculo: un 0 inventado escondería
// los huecos del catálogo.
type Product struct {
	ID         string
	VenueID    string
	SKU        string // código único por local
	Name       string
	SupplierID string // vacío = sin proveedor asignado
	UnitCost   *decimal.Decimal
	Par        *decimal.Decimal
	DeptPar    map[string]decimal.Decimal
	PackSize   *decimal.Decimal
	Unit       string // botella, caja, kg...
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
