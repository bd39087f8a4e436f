package dto

import "github.com/shopspring/decimal"

// SuggestedLineDTO línea de pedido sugerida. needs_par / needs_supplier
// marcan huecos de catálogo para remediación; nunca bloquean el cálculo.
type SuggestedLineDTO struct {
	ProductID     string           `json:"product_id"`
	ProductName   string           `json:"product_name"`
	Qty           decimal.Decimal  `json:"qty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	PackSize      *decimal.Decimal `json:"pack_size,omitempty"`
	NeedsPar      bool             `json:"needs_par"`
	NeedsSupplier bool             `json:"needs_supplier"`
	Reason        string           `json:"reason,omitempty"`
	DeptID        string           `json:"dept_id,omitempty"`
	DeptName      string           `json:"dept_name,omitempty"`
	QtyDept       decimal.Decimal  `json:"qty_dept"`
}

// SuggestedBucketDTO líneas agrupadas por proveedor.
type SuggestedBucketDTO struct {
	SupplierID   string             `json:"supplier_id"`
	SupplierName string             `json:"supplier_name"`
	Lines        []SuggestedLineDTO `json:"lines"`
}

// SuggestedOrdersDTO respuesta de GET /api/orders/suggested. El balde
// "unassigned" es de primera clase: viaja siempre, aunque vacío.
type SuggestedOrdersDTO struct {
	Buckets    []SuggestedBucketDTO `json:"buckets"`
	Unassigned SuggestedBucketDTO   `json:"unassigned"`
}
