package engine

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// UnassignedSupplierID llave del balde de productos sin proveedor asignado.
// Es un balde de primera clase: nunca se descarta.
const UnassignedSupplierID = "unassigned"

// ProductMeta metadatos de catálogo que necesita el sugeridor de pedidos.
// Par nil significa "PAR global no definido"; DeptPar lleva los overrides
// por departamento. Ningún campo ausente bloquea el cálculo: degrada a una
// bandera (NeedsPar / NeedsSupplier) en la línea emitida.
type ProductMeta struct {
	ID           string
	SKU          string
	Name         string
	Par          *decimal.Decimal
	DeptPar      map[string]decimal.Decimal
	SupplierID   string
	SupplierName string
	PackSize     *decimal.Decimal
	UnitCost     *decimal.Decimal
}

// SupplierMeta proveedor conocido, para resolver el nombre del balde.
type SupplierMeta struct {
	ID   string
	Name string
}

// DepartmentMeta departamento del local, para resolver nombres en las líneas.
type DepartmentMeta struct {
	ID   string
	Name string
}

// OnHandRow stock en mano de un producto dentro de un alcance.
// DepartmentID vacío representa el alcance implícito "local completo".
type OnHandRow struct {
	ProductID    string
	DepartmentID string
	Qty          decimal.Decimal
}

// SuggestOptions opciones del sugeridor. RoundToPack activa el redondeo al
// tamaño de empaque (techo); desactivado se redondea a la unidad más cercana
// sin piso de pedido mínimo. DefaultPar es el PAR de respaldo cuando el
// producto no tiene PAR global ni de departamento; nil equivale a 0.
type SuggestOptions struct {
	RoundToPack bool
	DefaultPar  *decimal.Decimal
}

// SuggestedLine línea de pedido sugerida para un producto en un alcance.
// Solo se emite cuando la necesidad calculada es positiva. QtyDept es la
// necesidad cruda del departamento antes del redondeo a empaque.
type SuggestedLine struct {
	ProductID     string
	ProductName   string
	Qty           decimal.Decimal
	UnitCost      *decimal.Decimal
	PackSize      *decimal.Decimal
	NeedsPar      bool
	NeedsSupplier bool
	Reason        string
	DeptID        string
	DeptName      string
	QtyDept       decimal.Decimal
}

// SuggestedBucket líneas sugeridas agrupadas por proveedor.
type SuggestedBucket struct {
	SupplierID   string
	SupplierName string
	Lines        []SuggestedLine
}

// SuggestResult baldes por proveedor más el balde de no asignados.
// Los baldes vienen ordenados por nombre de proveedor (desempate por ID) y
// las líneas por departamento, nombre de producto e ID: misma entrada,
// misma salida byte a byte.
type SuggestResult struct {
	Buckets    []SuggestedBucket
	Unassigned SuggestedBucket
}

// Mensajes de remediación de catálogo. Si faltan proveedor y PAR a la vez,
// el proveedor manda en el mensaje.
const (
	reasonNeedsSupplier = "producto sin proveedor asignado"
	reasonNeedsPar      = "PAR no definido; se usó el valor por defecto"
)

// BuildSuggestedOrders calcula las cantidades de reposición por producto y
// departamento y las agrupa por proveedor.
//
// Por cada departamento presente en el snapshot de stock (DepartmentID vacío
// = alcance "local completo") y cada producto contado en ese alcance:
//
//  1. PAR con precedencia deptPar[dept] → par global → DefaultPar.
//  2. needed = max(0, par − onHand); si no hay necesidad no se emite nada.
//  3. Redondeo según opciones (techo a empaque o unidad más cercana).
//  4. Enrutamiento al balde del proveedor o al balde "unassigned".
//
// Dentro de un balde el par (producto, departamento) aparece a lo sumo una
// vez: los duplicados posteriores del snapshot se descartan, no se suman.
// Los metadatos ausentes nunca son error: catálogo incompleto degrada a
// banderas para remediación, no bloquea la reposición.
func BuildSuggestedOrders(
	products []ProductMeta,
	onHand []OnHandRow,
	suppliers []SupplierMeta,
	departments []DepartmentMeta,
	opts SuggestOptions,
) SuggestResult {
	productsByID := make(map[string]ProductMeta, len(products))
	for _, p := range products {
		if _, exists := productsByID[p.ID]; !exists {
			productsByID[p.ID] = p
		}
	}
	supplierNames := make(map[string]string, len(suppliers))
	for _, s := range suppliers {
		supplierNames[s.ID] = s.Name
	}
	deptNames := make(map[string]string, len(departments))
	for _, d := range departments {
		deptNames[d.ID] = d.Name
	}

	defaultPar := decimal.Zero
	if opts.DefaultPar != nil {
		defaultPar = *opts.DefaultPar
	}

	buckets := make(map[string]*SuggestedBucket)
	unassigned := SuggestedBucket{SupplierID: UnassignedSupplierID, SupplierName: "Sin proveedor"}
	emitted := make(map[string]bool, len(onHand))

	for _, row := range onHand {
		p, ok := productsByID[row.ProductID]
		if !ok {
			// Producto contado que ya no existe en el catálogo: nada que sugerir.
			continue
		}
		dedupKey := row.ProductID + "\x00" + row.DepartmentID
		if emitted[dedupKey] {
			continue
		}
		emitted[dedupKey] = true

		par, needsPar := resolvePar(p, row.DepartmentID, defaultPar)
		needed := par.Sub(row.Qty)
		if !needed.IsPositive() {
			continue
		}

		qty := roundQty(needed, p.PackSize, opts.RoundToPack)
		if !qty.IsPositive() {
			continue
		}

		line := SuggestedLine{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Qty:           qty,
			UnitCost:      p.UnitCost,
			PackSize:      p.PackSize,
			NeedsPar:      needsPar,
			NeedsSupplier: p.SupplierID == "",
			DeptID:        row.DepartmentID,
			DeptName:      deptNames[row.DepartmentID],
			QtyDept:       needed,
		}
		switch {
		case line.NeedsSupplier:
			line.Reason = reasonNeedsSupplier
		case line.NeedsPar:
			line.Reason = reasonNeedsPar
		}

		if p.SupplierID == "" {
			unassigned.Lines = append(unassigned.Lines, line)
			continue
		}
		bucket, exists := buckets[p.SupplierID]
		if !exists {
			name := supplierNames[p.SupplierID]
			if name == "" {
				name = p.SupplierName
			}
			if name == "" {
				// Proveedor sin nombre conocido: el ID literal sirve de etiqueta.
				name = p.SupplierID
			}
			bucket = &SuggestedBucket{SupplierID: p.SupplierID, SupplierName: name}
			buckets[p.SupplierID] = bucket
		}
		bucket.Lines = append(bucket.Lines, line)
	}

	result := SuggestResult{Unassigned: unassigned}
	for _, b := range buckets {
		result.Buckets = append(result.Buckets, *b)
	}
	sort.Slice(result.Buckets, func(i, j int) bool {
		a, b := result.Buckets[i], result.Buckets[j]
		if an, bn := strings.ToLower(a.SupplierName), strings.ToLower(b.SupplierName); an != bn {
			return an < bn
		}
		return a.SupplierID < b.SupplierID
	})
	for i := range result.Buckets {
		sortLines(result.Buckets[i].Lines)
	}
	sortLines(result.Unassigned.Lines)

	return result
}

// resolvePar resuelve el PAR con precedencia: override de departamento →
// PAR global → valor por defecto. La segunda salida indica si se cayó al
// valor por defecto (NeedsPar).
func resolvePar(p ProductMeta, deptID string, defaultPar decimal.Decimal) (decimal.Decimal, bool) {
	if deptID != "" {
		if par, ok := p.DeptPar[deptID]; ok {
			return par, false
		}
	}
	if p.Par != nil {
		return *p.Par, false
	}
	return defaultPar, true
}

// roundQty redondea la necesidad al empaque (techo) cuando está activado y
// hay tamaño de empaque positivo; si no, a la unidad más cercana. No hay
// piso de pedido mínimo: esa política queda en el llamador.
func roundQty(needed decimal.Decimal, packSize *decimal.Decimal, roundToPack bool) decimal.Decimal {
	if roundToPack && packSize != nil && packSize.IsPositive() {
		return needed.Div(*packSize).Ceil().Mul(*packSize)
	}
	return needed.Round(0)
}

// sortLines ordena las líneas por departamento, nombre de producto e ID.
func sortLines(lines []SuggestedLine) {
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.DeptID != b.DeptID {
			return a.DeptID < b.DeptID
		}
		if an, bn := strings.ToLower(a.ProductName), strings.ToLower(b.ProductName); an != bn {
			return an < bn
		}
		return a.ProductID < b.ProductID
	})
}
