package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPriceTolerancePct tolerancia de precio por defecto (2 %).
var DefaultPriceTolerancePct = decimal.NewFromFloat(0.02)

// ParsedInvoiceLine línea extraída de una factura recibida (OCR, CSV o
// factura electrónica UBL). LineType vacío significa "sin etiquetar": el
// conciliador la clasifica con ClassifyLine antes de usarla.
type ParsedInvoiceLine struct {
	Code      string
	Name      string
	Qty       decimal.Decimal
	UnitPrice *decimal.Decimal
	LineType  LineType
}

// OrderLine línea esperada del pedido contra la que se concilia la factura.
// SKU (o en su defecto ProductID) sirve de llave de código; Qty nil se trata
// como 0.
type OrderLine struct {
	ID        string
	ProductID string
	SKU       string
	Name      string
	Qty       *decimal.Decimal
	UnitCost  *decimal.Decimal
}

// ReconcileOptions opciones de conciliación. PriceTolerancePct nil aplica
// la tolerancia por defecto del 2 %; cero explícito exige precio exacto.
type ReconcileOptions struct {
	PriceTolerancePct *decimal.Decimal
}

// ReconcileMatch par factura-pedido emparejado, con la desviación de precio
// relativa ya calculada.
type ReconcileMatch struct {
	Invoice       ParsedInvoiceLine
	Order         OrderLine
	PriceDeltaPct decimal.Decimal
}

// ChargeTotals total por tipo de cargo no-producto más el gran total de cargos.
type ChargeTotals struct {
	Freight           decimal.Decimal
	Surcharge         decimal.Decimal
	Ullage            decimal.Decimal
	DepositReturnable decimal.Decimal
	Discount          decimal.Decimal
	Tax               decimal.Decimal
	Other             decimal.Decimal
	Total             decimal.Decimal
}

// ReconcileTotals subtotales de la conciliación. GrandTotal es exactamente
// ItemsSubTotal + ChargesTotal.
type ReconcileTotals struct {
	ItemsSubTotal decimal.Decimal
	ChargesTotal  decimal.Decimal
	GrandTotal    decimal.Decimal
}

// ReconcileFlags banderas de presencia para resaltado en UI.
type ReconcileFlags struct {
	HasDeposits bool
	HasUllage   bool
	HasFreight  bool
}

// ReconcileResult resultado completo de la conciliación factura-pedido.
// QtyVariance y PriceVariance no son excluyentes: un mismo par puede
// aparecer en ambos si difieren cantidad y precio a la vez.
type ReconcileResult struct {
	MatchedOK     []ReconcileMatch
	QtyVariance   []ReconcileMatch
	PriceVariance []ReconcileMatch
	UnknownItems  []ParsedInvoiceLine
	MissingItems  []OrderLine
	Charges       ChargeTotals
	Totals        ReconcileTotals
	Flags         ReconcileFlags
}

// ReconcileInvoice concilia las líneas de una factura recibida contra las
// líneas esperadas del pedido.
//
// Emparejamiento: primero por código (insensible a mayúsculas), si no hay
// código que coincida se intenta por nombre normalizado. Si varias líneas
// del pedido normalizan al mismo nombre, gana la primera indexada (las
// posteriores no sobreescriben la llave). Las líneas de producto sin pareja
// van a UnknownItems; las líneas del pedido que nunca se emparejaron ni
// aparecieron por nombre van a MissingItems.
func ReconcileInvoice(parsed []ParsedInvoiceLine, orderLines []OrderLine, opts ReconcileOptions) ReconcileResult {
	tolerance := DefaultPriceTolerancePct
	if opts.PriceTolerancePct != nil {
		tolerance = *opts.PriceTolerancePct
	}

	// 1. Clasificar líneas sin etiquetar y separar productos de cargos.
	var productLines []ParsedInvoiceLine
	var chargeLines []ParsedInvoiceLine
	for _, line := range parsed {
		if line.LineType == "" {
			line.LineType = ClassifyLine(line.Name)
		}
		if line.LineType == LineTypeProduct {
			productLines = append(productLines, line)
		} else {
			chargeLines = append(chargeLines, line)
		}
	}

	// 2. Índices del pedido: por código y por nombre normalizado.
	//    Primera línea indexada gana; no hay sobreescritura.
	byCode := make(map[string]int, len(orderLines))
	byName := make(map[string]int, len(orderLines))
	for i, ol := range orderLines {
		if code := orderLineCode(ol); code != "" {
			if _, exists := byCode[code]; !exists {
				byCode[code] = i
			}
		}
		if name := NormalizeName(ol.Name); name != "" {
			if _, exists := byName[name]; !exists {
				byName[name] = i
			}
		}
	}

	result := ReconcileResult{}
	matched := make(map[int]bool, len(orderLines))
	namesSeen := make(map[string]bool, len(productLines))

	// 3-5. Emparejar cada línea de producto y clasificar el par.
	for _, line := range productLines {
		namesSeen[NormalizeName(line.Name)] = true

		idx, ok := matchOrderLine(line, byCode, byName)
		if !ok {
			result.UnknownItems = append(result.UnknownItems, line)
			continue
		}
		ol := orderLines[idx]
		matched[idx] = true

		deltaPct := priceDeltaPct(line.UnitPrice, ol.UnitCost)
		pair := ReconcileMatch{Invoice: line, Order: ol, PriceDeltaPct: deltaPct}

		orderQty := decimal.Zero
		if ol.Qty != nil {
			orderQty = *ol.Qty
		}
		qtyOK := orderQty.Equal(line.Qty)
		priceOK := deltaPct.LessThanOrEqual(tolerance)

		switch {
		case qtyOK && priceOK:
			result.MatchedOK = append(result.MatchedOK, pair)
		default:
			if !qtyOK {
				result.QtyVariance = append(result.QtyVariance, pair)
			}
			if !priceOK {
				result.PriceVariance = append(result.PriceVariance, pair)
			}
		}
	}

	// 6. Líneas del pedido nunca emparejadas ni vistas por nombre.
	for i, ol := range orderLines {
		if matched[i] || namesSeen[NormalizeName(ol.Name)] {
			continue
		}
		result.MissingItems = append(result.MissingItems, ol)
	}

	// 7. Cargos por tipo (qty × unitPrice, 0 si falta alguno) y banderas.
	for _, line := range chargeLines {
		total := lineTotal(line)
		switch line.LineType {
		case LineTypeFreight:
			result.Charges.Freight = result.Charges.Freight.Add(total)
			result.Flags.HasFreight = true
		case LineTypeSurcharge:
			result.Charges.Surcharge = result.Charges.Surcharge.Add(total)
		case LineTypeUllage:
			result.Charges.Ullage = result.Charges.Ullage.Add(total)
			result.Flags.HasUllage = true
		case LineTypeDepositReturnable:
			result.Charges.DepositReturnable = result.Charges.DepositReturnable.Add(total)
			result.Flags.HasDeposits = true
		case LineTypeDiscount:
			result.Charges.Discount = result.Charges.Discount.Add(total)
		case LineTypeTax:
			result.Charges.Tax = result.Charges.Tax.Add(total)
		default:
			result.Charges.Other = result.Charges.Other.Add(total)
		}
		result.Charges.Total = result.Charges.Total.Add(total)
	}

	// 8. Totales.
	for _, line := range productLines {
		result.Totals.ItemsSubTotal = result.Totals.ItemsSubTotal.Add(lineTotal(line))
	}
	result.Totals.ChargesTotal = result.Charges.Total
	result.Totals.GrandTotal = result.Totals.ItemsSubTotal.Add(result.Totals.ChargesTotal)

	return result
}

// orderLineCode devuelve la llave de código de una línea de pedido:
// SKU si existe, si no ProductID, en minúsculas.
func orderLineCode(ol OrderLine) string {
	if ol.SKU != "" {
		return strings.ToLower(ol.SKU)
	}
	return strings.ToLower(ol.ProductID)
}

// matchOrderLine busca la línea del pedido para una línea de producto:
// primero por código, luego por nombre normalizado.
func matchOrderLine(line ParsedInvoiceLine, byCode, byName map[string]int) (int, bool) {
	if line.Code != "" {
		if idx, ok := byCode[strings.ToLower(line.Code)]; ok {
			return idx, true
		}
	}
	if idx, ok := byName[NormalizeName(line.Name)]; ok {
		return idx, true
	}
	return 0, false
}

// priceDeltaPct desviación relativa de precio |inv − pedido| / pedido.
// Con precio de pedido cero o ausente: cualquier precio positivo en la
// factura cuenta como desviación del 100 % (evita dividir por cero).
func priceDeltaPct(invPrice, orderPrice *decimal.Decimal) decimal.Decimal {
	inv := decimal.Zero
	if invPrice != nil {
		inv = *invPrice
	}
	order := decimal.Zero
	if orderPrice != nil {
		order = *orderPrice
	}
	if order.IsPositive() {
		return inv.Sub(order).Abs().Div(order)
	}
	if inv.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

// lineTotal total de una línea (qty × unitPrice, 0 si falta el precio).
func lineTotal(line ParsedInvoiceLine) decimal.Decimal {
	if line.UnitPrice == nil {
		return decimal.Zero
	}
	return line.Qty.Mul(*line.UnitPrice)
}
