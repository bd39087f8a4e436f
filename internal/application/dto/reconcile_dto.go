package dto

import "github.com/shopspring/decimal"

// ParsedLineDTO línea de factura recibida, ya extraída por el colaborador
// de turno (OCR, CSV o factura electrónica UBL). line_type vacío se
// clasifica en el motor por palabras clave.
type ParsedLineDTO struct {
	Code      string           `json:"code,omitempty"`
	Name      string           `json:"name"`
	Qty       decimal.Decimal  `json:"qty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	LineType  string           `json:"line_type,omitempty"`
}

// ReconcileRequest body de POST /api/orders/:id/reconcile.
type ReconcileRequest struct {
	Lines             []ParsedLineDTO  `json:"lines"`
	PriceTolerancePct *decimal.Decimal `json:"price_tolerance_pct,omitempty"`
}

// ReconcileMatchDTO par factura-pedido con su desviación de precio.
type ReconcileMatchDTO struct {
	OrderLineID   string           `json:"order_line_id"`
	Name          string           `json:"name"`
	InvoiceQty    decimal.Decimal  `json:"invoice_qty"`
	OrderQty      *decimal.Decimal `json:"order_qty,omitempty"`
	InvoicePrice  *decimal.Decimal `json:"invoice_price,omitempty"`
	OrderPrice    *decimal.Decimal `json:"order_price,omitempty"`
	PriceDeltaPct decimal.Decimal  `json:"price_delta_pct"`
}

// ChargesDTO cargos no-producto acumulados por tipo.
type ChargesDTO struct {
	Freight           decimal.Decimal `json:"freight"`
	Surcharge         decimal.Decimal `json:"surcharge"`
	Ullage            decimal.Decimal `json:"ullage"`
	DepositReturnable decimal.Decimal `json:"deposit_returnable"`
	Discount          decimal.Decimal `json:"discount"`
	Tax               decimal.Decimal `json:"tax"`
	Other             decimal.Decimal `json:"other"`
	Total             decimal.Decimal `json:"total"`
}

// ReconcileResponse respuesta de la conciliación factura-pedido.
// qty_variance y price_variance no son excluyentes: un mismo par puede
// aparecer en ambos.
type ReconcileResponse struct {
	OrderID       string              `json:"order_id"`
	MatchedOK     []ReconcileMatchDTO `json:"matched_ok"`
	QtyVariance   []ReconcileMatchDTO `json:"qty_variance"`
	PriceVariance []ReconcileMatchDTO `json:"price_variance"`
	UnknownItems  []ParsedLineDTO     `json:"unknown_items"`
	MissingItems  []OrderLineDTO      `json:"missing_items"`
	Charges       ChargesDTO          `json:"charges"`
	ItemsSubTotal decimal.Decimal     `json:"items_sub_total"`
	ChargesTotal  decimal.Decimal     `json:"charges_total"`
	GrandTotal    decimal.Decimal     `json:"grand_total"`
	HasDeposits   bool                `json:"has_deposits"`
	HasUllage     bool                `json:"has_ullage"`
	HasFreight    bool                `json:"has_freight"`
}

// OrderLineDTO línea esperada de un pedido.
type OrderLineDTO struct {
	ID       string           `json:"id"`
	SKU      string           `json:"sku,omitempty"`
	Name     string           `json:"name,omitempty"`
	Qty      *decimal.Decimal `json:"qty,omitempty"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}
