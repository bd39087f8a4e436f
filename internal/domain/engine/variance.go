package engine

import "github.com/shopspring/decimal"

// CountRow fila de conteo físico para un SKU: stock en mano contra stock
// esperado. Expected nil se trata como 0 (el conteo inicial de una bodega
// no tiene línea base); UnitCost nil se propaga como valor desconocido,
// nunca como 0.
type CountRow struct {
	SKU          string
	Name         string
	DepartmentID string
	UnitCost     *decimal.Decimal
	OnHand       decimal.Decimal
	Expected     *decimal.Decimal
}

// QtyRow agregado de cantidad por SKU dentro de la ventana de análisis.
// Se usa tanto para ventas como para recepciones; varias filas del mismo
// SKU se suman antes de calcular.
type QtyRow struct {
	SKU string
	Qty decimal.Decimal
}

// UnifiedRow resultado por SKU del cálculo unificado de varianza y merma.
// Value es nil cuando no se conoce el costo unitario: ocultar el costo
// faltante detrás de un 0 enmascararía el problema de catálogo.
type UnifiedRow struct {
	SKU          string
	Name         string
	DepartmentID string
	UnitCost     *decimal.Decimal
	OnHand       decimal.Decimal
	Expected     decimal.Decimal
	Variance     decimal.Decimal
	Value        *decimal.Decimal
	SalesQty     decimal.Decimal
	InvoiceQty   decimal.Decimal
	Shrinkage    decimal.Decimal
	ShrinkUnits  decimal.Decimal
	ShrinkValue  decimal.Decimal

	// Escalera de costos: lista → desembarcado → real.
	// El costo desembarcado hoy es pasada directa del costo de lista
	// (la asignación de fletes queda reservada para una extensión futura).
	ListCostPerUnit   *decimal.Decimal
	LandedCostPerUnit *decimal.Decimal
	RealCostPerUnit   *decimal.Decimal
}

// UnifiedTotals agregados del resultado unificado, redondeados a 2 decimales
// en esta frontera (nunca a mitad de cálculo).
type UnifiedTotals struct {
	ShortageValue  decimal.Decimal
	ExcessValue    decimal.Decimal
	ShrinkageUnits decimal.Decimal
	ShrinkageValue decimal.Decimal
}

// UnifiedResult salida completa de ComputeUnified: una fila por SKU distinto
// del conteo más los totales de faltantes, sobrantes y merma.
type UnifiedResult struct {
	Rows   []UnifiedRow
	Totals UnifiedTotals
}

// ComputeUnified reconcilia el conteo físico contra el stock teórico y
// atribuye el impacto monetario, incluida la redistribución del costo de la
// merma sobre las unidades que quedan en mano.
//
// Por cada SKU del conteo:
//
//	variance  = onHand - expected
//	teorico   = expected + recepciones - ventas
//	shrinkage = teorico - onHand        (negativo ⇒ pérdida)
//
// Varianza y merma son señales independientes: un local puede tener varianza
// positiva y merma negativa a la vez si la línea base y la ventana de
// ventas/recepciones no están de acuerdo.
//
// Reasignación de costos: el costo de las unidades perdidas lo cargan las
// unidades que quedan (realCost = landed × (onHand + shrinkUnits) / onHand),
// no se castiga por separado.
//
// SKUs repetidos en el conteo: gana la primera fila, las siguientes se
// descartan (misma regla de "primera gana" que usa el conciliador).
func ComputeUnified(counts []CountRow, sales []QtyRow, receipts []QtyRow) UnifiedResult {
	salesBySKU := sumBySKU(sales)
	receiptsBySKU := sumBySKU(receipts)

	seen := make(map[string]bool, len(counts))
	rows := make([]UnifiedRow, 0, len(counts))

	var shortageValue, excessValue, shrinkageUnits, shrinkageValue decimal.Decimal

	for _, c := range counts {
		if seen[c.SKU] {
			continue
		}
		seen[c.SKU] = true

		expected := decimal.Zero
		if c.Expected != nil {
			expected = *c.Expected
		}
		s := salesBySKU[c.SKU]
		r := receiptsBySKU[c.SKU]

		variance := c.OnHand.Sub(expected)

		var value *decimal.Decimal
		if c.UnitCost != nil {
			v := variance.Mul(*c.UnitCost)
			value = &v
		}

		theoretical := expected.Add(r).Sub(s)
		shrinkage := theoretical.Sub(c.OnHand)

		shrinkUnits := decimal.Zero
		if shrinkage.IsNegative() {
			shrinkUnits = shrinkage.Neg()
		}
		shrinkValue := decimal.Zero
		if c.UnitCost != nil {
			shrinkValue = shrinkUnits.Mul(*c.UnitCost)
		}

		listCost := c.UnitCost
		landedCost := listCost
		realCost := landedCost
		if landedCost != nil && c.OnHand.IsPositive() && shrinkUnits.IsPositive() {
			rc := landedCost.Mul(c.OnHand.Add(shrinkUnits)).Div(c.OnHand)
			realCost = &rc
		}

		rows = append(rows, UnifiedRow{
			SKU:               c.SKU,
			Name:              c.Name,
			DepartmentID:      c.DepartmentID,
			UnitCost:          c.UnitCost,
			OnHand:            c.OnHand,
			Expected:          expected,
			Variance:          variance,
			Value:             value,
			SalesQty:          s,
			InvoiceQty:        r,
			Shrinkage:         shrinkage,
			ShrinkUnits:       shrinkUnits,
			ShrinkValue:       shrinkValue,
			ListCostPerUnit:   listCost,
			LandedCostPerUnit: landedCost,
			RealCostPerUnit:   realCost,
		})

		if value != nil {
			if variance.IsNegative() {
				shortageValue = shortageValue.Add(value.Abs())
			} else if variance.IsPositive() {
				excessValue = excessValue.Add(*value)
			}
		}
		if shrinkage.IsNegative() {
			shrinkageUnits = shrinkageUnits.Add(shrinkUnits)
			shrinkageValue = shrinkageValue.Add(shrinkValue)
		}
	}

	return UnifiedResult{
		Rows: rows,
		Totals: UnifiedTotals{
			ShortageValue:  shortageValue.Round(2),
			ExcessValue:    excessValue.Round(2),
			ShrinkageUnits: shrinkageUnits.Round(2),
			ShrinkageValue: shrinkageValue.Round(2),
		},
	}
}

// sumBySKU agrega las cantidades por SKU (varias filas del mismo SKU se suman).
func sumBySKU(rows []QtyRow) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.SKU] = out[row.SKU].Add(row.Qty)
	}
	return out
}
