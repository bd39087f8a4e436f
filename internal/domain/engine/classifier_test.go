package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
)

// TestClassifyLine_Categorias tabla de nombres reales de facturas de
// proveedores y la categoría que debe asignarles el clasificador.
func TestClassifyLine_Categorias(t *testing.T) {
	cases := []struct {
		name string
		want engine.LineType
	}{
		{"Freight - metro delivery", engine.LineTypeFreight},
		{"Courier fee", engine.LineTypeFreight},
		{"Fuel surcharge Q3", engine.LineTypeFreight},
		{"Logistics levy", engine.LineTypeFreight},
		{"Card fee 1.5%", engine.LineTypeSurcharge},
		{"Handling fee", engine.LineTypeSurcharge},
		{"Ullage credit", engine.LineTypeUllage},
		{"Breakage - 2 bottles", engine.LineTypeUllage},
		{"Damaged stock allowance", engine.LineTypeUllage},
		{"Keg deposit 50L", engine.LineTypeDepositReturnable},
		{"Pallet deposit", engine.LineTypeDepositReturnable},
		{"Returnable crate", engine.LineTypeDepositReturnable},
		{"Promo allowance", engine.LineTypeDiscount},
		{"Volume rebate", engine.LineTypeDiscount},
		{"GST 10%", engine.LineTypeTax},
		{"VAT", engine.LineTypeTax},
		{"Gordon's Gin 1L", engine.LineTypeProduct},
		{"Coca-Cola 24x330ml", engine.LineTypeProduct},
		{"", engine.LineTypeProduct},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, engine.ClassifyLine(tc.name), "línea %q", tc.name)
	}
}

// TestClassifyLine_PrioridadDeReglas la primera categoría que coincide gana:
// "fuel surcharge" es flete aunque contenga "surcharge", y un descuento
// sobre el flete sigue siendo flete porque flete se evalúa primero.
func TestClassifyLine_PrioridadDeReglas(t *testing.T) {
	assert.Equal(t, engine.LineTypeFreight, engine.ClassifyLine("Fuel Surcharge"))
	assert.Equal(t, engine.LineTypeFreight, engine.ClassifyLine("Delivery discount"))
	assert.Equal(t, engine.LineTypeUllage, engine.ClassifyLine("Wastage rebate"))
}

// TestClassifyLine_InsensibleAMayusculas la clasificación baja a minúsculas
// antes de comparar.
func TestClassifyLine_InsensibleAMayusculas(t *testing.T) {
	assert.Equal(t, engine.LineTypeTax, engine.ClassifyLine("gSt"))
	assert.Equal(t, engine.LineTypeDepositReturnable, engine.ClassifyLine("KEG DEPOSIT"))
}
