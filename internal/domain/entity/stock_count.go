package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockCount cabecera de un conteo físico de inventario.
type StockCount struct {
	ID           string
	VenueID      string
	DepartmentID string // vacío = conteo de todo el local
	CountedAt    time.Time
	CountedBy    string
}

// CountLine línea de un conteo: lo contado contra la línea base esperada.
// Expected nil en el conteo inicial; UnitCost nil cuando el catálogo no
// tiene costo para el SKU.
type CountLine struct {
	CountID      string
	SKU          string
	ProductName  string
	DepartmentID string
	OnHand       decimal.Decimal
	Expected     *decimal.Decimal
	UnitCost     *decimal.Decimal
}

// MovementAggregate cantidad agregada por SKU dentro de una ventana
// (ventas o recepciones). El repositorio puede devolver varias filas del
// mismo SKU; el motor las suma antes de calcular.
type MovementAggregate struct {
	SKU string
	Qty decimal.Decimal
}
