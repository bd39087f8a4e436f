package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VarianceRow fila del reporte unificado de varianza y merma para un SKU.
// Los punteros nil se serializan como null: "costo desconocido" nunca se
// disfraza de 0 en la respuesta.
type VarianceRow struct {
	SKU               string           `json:"sku"`
	Name              string           `json:"name,omitempty"`
	DepartmentID      string           `json:"department_id,omitempty"`
	UnitCost          *decimal.Decimal `json:"unit_cost,omitempty"`
	OnHand            decimal.Decimal  `json:"on_hand"`
	Expected          decimal.Decimal  `json:"expected"`
	Variance          decimal.Decimal  `json:"variance"`
	Value             *decimal.Decimal `json:"value,omitempty"`
	SalesQty          decimal.Decimal  `json:"sales_qty"`
	InvoiceQty        decimal.Decimal  `json:"invoice_qty"`
	Shrinkage         decimal.Decimal  `json:"shrinkage"`
	ShrinkUnits       decimal.Decimal  `json:"shrink_units"`
	ShrinkValue       decimal.Decimal  `json:"shrink_value"`
	ListCostPerUnit   *decimal.Decimal `json:"list_cost_per_unit,omitempty"`
	LandedCostPerUnit *decimal.Decimal `json:"landed_cost_per_unit,omitempty"`
	RealCostPerUnit   *decimal.Decimal `json:"real_cost_per_unit,omitempty"`
}

// VarianceTotals agregados del reporte (redondeados a 2 decimales).
type VarianceTotals struct {
	ShortageValue  decimal.Decimal `json:"shortage_value"`
	ExcessValue    decimal.Decimal `json:"excess_value"`
	ShrinkageUnits decimal.Decimal `json:"shrinkage_units"`
	ShrinkageValue decimal.Decimal `json:"shrinkage_value"`
}

// VarianceReportDTO respuesta de GET /api/stock/variance.
type VarianceReportDTO struct {
	VenueID      string         `json:"venue_id"`
	DepartmentID string         `json:"department_id,omitempty"`
	WindowFrom   time.Time      `json:"window_from"`
	WindowTo     time.Time      `json:"window_to"`
	Rows         []VarianceRow  `json:"rows"`
	Totals       VarianceTotals `json:"totals"`
}
