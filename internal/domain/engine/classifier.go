// Package engine contiene el núcleo puro de cálculo de inventario:
// clasificación de líneas de factura, varianza de conteos con reasignación
// de costos por merma, conciliación factura-pedido y sugerencias de
// reposición. Ninguna función de este paquete hace I/O ni depende de reloj
// o aleatoriedad: misma entrada, misma salida.
package engine

import "strings"

// LineType tipo de cargo asignado a una línea de factura.
type LineType string

// Tipos de línea reconocidos por el clasificador.
const (
	LineTypeProduct           LineType = "product"
	LineTypeFreight           LineType = "freight"
	LineTypeSurcharge         LineType = "surcharge"
	LineTypeUllage            LineType = "ullage"
	LineTypeDepositReturnable LineType = "deposit_returnable"
	LineTypeDiscount          LineType = "discount"
	LineTypeTax               LineType = "tax"
	LineTypeOther             LineType = "other"
)

// Reglas de palabras clave en orden de prioridad fija: la primera categoría
// que coincide gana. El orden importa ("fuel surcharge" debe caer en flete,
// no en recargo).
var classifierRules = []struct {
	lineType LineType
	keywords []string
}{
	{LineTypeFreight, []string{"freight", "delivery", "courier", "transport", "fuel surcharge", "fuel-surcharge", "logistics"}},
	{LineTypeSurcharge, []string{"surcharge", "card fee", "card-fee", "handling fee", "handling-fee"}},
	{LineTypeUllage, []string{"ullage", "breakage", "spillage", "wastage", "damaged"}},
	{LineTypeDepositReturnable, []string{"keg deposit", "keg-deposit", "deposit", "returnable", "pallet deposit", "pallet-deposit"}},
	{LineTypeDiscount, []string{"discount", "promo", "promotion", "rebate"}},
	{LineTypeTax, []string{"gst", "vat", "tax"}},
}

// ClassifyLine asigna un tipo de cargo a una línea de factura según su nombre
// visible. Función total: ninguna línea queda sin clasificar; si ninguna
// regla coincide la línea es un producto.
func ClassifyLine(name string) LineType {
	lower := strings.ToLower(name)
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.lineType
			}
		}
	}
	return LineTypeProduct
}
