package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
)

// TestBuildSuggestedOrders_RedondeoAEmpaque PAR 24, 10 en mano, empaque de
// 12: necesidad 14 se redondea por techo a 24 unidades.
func TestBuildSuggestedOrders_RedondeoAEmpaque(t *testing.T) {
	products := []engine.ProductMeta{
		{ID: "p1", Name: "Cerveza Lager 330ml", Par: dp(24), PackSize: dp(12), SupplierID: "s1", UnitCost: dp(1.8)},
	}
	onHand := []engine.OnHandRow{{ProductID: "p1", Qty: d(10)}}
	suppliers := []engine.SupplierMeta{{ID: "s1", Name: "Distribuidora Norte"}}

	res := engine.BuildSuggestedOrders(products, onHand, suppliers, nil, engine.SuggestOptions{RoundToPack: true})
	require.Len(t, res.Buckets, 1)
	require.Len(t, res.Buckets[0].Lines, 1)

	line := res.Buckets[0].Lines[0]
	assert.True(t, line.Qty.Equal(d(24)), "ceil(14/12)×12")
	assert.True(t, line.QtyDept.Equal(d(14)), "necesidad cruda antes del redondeo")
	assert.False(t, line.NeedsPar)
	assert.False(t, line.NeedsSupplier)
	assert.Empty(t, line.Reason)
	assert.Equal(t, "Distribuidora Norte", res.Buckets[0].SupplierName)
}

// TestBuildSuggestedOrders_SinProveedorNiPAR sin proveedor y sin PAR (con
// valor por defecto 6, 2 en mano): va al balde "unassigned" con ambas
// banderas encendidas; el proveedor manda en el mensaje.
func TestBuildSuggestedOrders_SinProveedorNiPAR(t *testing.T) {
	products := []engine.ProductMeta{{ID: "p1", Name: "Sirope casero"}}
	onHand := []engine.OnHandRow{{ProductID: "p1", Qty: d(2)}}

	res := engine.BuildSuggestedOrders(products, onHand, nil, nil, engine.SuggestOptions{DefaultPar: dp(6)})
	assert.Empty(t, res.Buckets)
	require.Len(t, res.Unassigned.Lines, 1)

	line := res.Unassigned.Lines[0]
	assert.True(t, line.Qty.Equal(d(4)))
	assert.True(t, line.NeedsPar)
	assert.True(t, line.NeedsSupplier)
	assert.Equal(t, "producto sin proveedor asignado", line.Reason)
	assert.Equal(t, engine.UnassignedSupplierID, res.Unassigned.SupplierID)
}

// TestBuildSuggestedOrders_PrecedenciaPAR el override de departamento manda
// sobre el PAR global, y el global sobre el valor por defecto.
func TestBuildSuggestedOrders_PrecedenciaPAR(t *testing.T) {
	products := []engine.ProductMeta{
		{
			ID: "p1", Name: "Vodka 700ml", SupplierID: "s1",
			Par:     dp(10),
			DeptPar: map[string]decimal.Decimal{"bar": d(18)},
		},
	}
	onHand := []engine.OnHandRow{
		{ProductID: "p1", DepartmentID: "bar", Qty: d(4)},
		{ProductID: "p1", DepartmentID: "bodega", Qty: d(4)},
	}
	departments := []engine.DepartmentMeta{{ID: "bar", Name: "Barra"}, {ID: "bodega", Name: "Bodega"}}

	res := engine.BuildSuggestedOrders(products, onHand, nil, departments, engine.SuggestOptions{})
	require.Len(t, res.Buckets, 1)
	require.Len(t, res.Buckets[0].Lines, 2)

	var barLine, bodegaLine engine.SuggestedLine
	for _, l := range res.Buckets[0].Lines {
		switch l.DeptID {
		case "bar":
			barLine = l
		case "bodega":
			bodegaLine = l
		}
	}
	assert.True(t, barLine.Qty.Equal(d(14)), "deptPar 18 − 4 en mano")
	assert.Equal(t, "Barra", barLine.DeptName)
	assert.True(t, bodegaLine.Qty.Equal(d(6)), "PAR global 10 − 4 en mano")
	assert.False(t, barLine.NeedsPar)
	assert.False(t, bodegaLine.NeedsPar)
}

// TestBuildSuggestedOrders_SinNecesidadNoEmite stock en o sobre PAR no
// genera línea; ninguna línea emitida lleva cantidad <= 0.
func TestBuildSuggestedOrders_SinNecesidadNoEmite(t *testing.T) {
	products := []engine.ProductMeta{
		{ID: "p1", Name: "Al día", Par: dp(10), SupplierID: "s1"},
		{ID: "p2", Name: "Sobrestock", Par: dp(5), SupplierID: "s1"},
		{ID: "p3", Name: "Corto", Par: dp(9), SupplierID: "s1"},
	}
	onHand := []engine.OnHandRow{
		{ProductID: "p1", Qty: d(10)},
		{ProductID: "p2", Qty: d(8)},
		{ProductID: "p3", Qty: d(4)},
	}

	res := engine.BuildSuggestedOrders(products, onHand, nil, nil, engine.SuggestOptions{})
	require.Len(t, res.Buckets, 1)
	require.Len(t, res.Buckets[0].Lines, 1)
	assert.Equal(t, "p3", res.Buckets[0].Lines[0].ProductID)
	for _, l := range res.Buckets[0].Lines {
		assert.True(t, l.Qty.IsPositive(), "ninguna línea con cantidad <= 0")
	}
}

// TestBuildSuggestedOrders_RedondeoAUnidad con el redondeo a empaque
// desactivado se redondea a la unidad más cercana aunque haya PackSize.
func TestBuildSuggestedOrders_RedondeoAUnidad(t *testing.T) {
	products := []engine.ProductMeta{
		{ID: "p1", Name: "Vino tinto", Par: dp(7.4), PackSize: dp(6), SupplierID: "s1"},
	}
	onHand := []engine.OnHandRow{{ProductID: "p1", Qty: d(3)}}

	res := engine.BuildSuggestedOrders(products, onHand, nil, nil, engine.SuggestOptions{RoundToPack: false})
	require.Len(t, res.Buckets, 1)
	require.Len(t, res.Buckets[0].Lines, 1)
	assert.True(t, res.Buckets[0].Lines[0].Qty.Equal(d(4)), "round(4.4) sin piso de empaque")
}

// TestBuildSuggestedOrders_DuplicadosSeDescartan dentro de un balde el par
// (producto, departamento) aparece a lo sumo una vez: los duplicados
// posteriores del snapshot se descartan, no se suman.
func TestBuildSuggestedOrders_DuplicadosSeDescartan(t *testing.T) {
	products := []engine.ProductMeta{{ID: "p1", Name: "Ron añejo", Par: dp(12), SupplierID: "s1"}}
	onHand := []engine.OnHandRow{
		{ProductID: "p1", DepartmentID: "bar", Qty: d(2)},
		{ProductID: "p1", DepartmentID: "bar", Qty: d(9)},
	}

	res := engine.BuildSuggestedOrders(products, onHand, nil, nil, engine.SuggestOptions{})
	require.Len(t, res.Buckets, 1)
	require.Len(t, res.Buckets[0].Lines, 1)
	assert.True(t, res.Buckets[0].Lines[0].Qty.Equal(d(10)), "gana la primera fila (12 − 2)")
}

// TestBuildSuggestedOrders_ProveedorSinNombre si el índice de proveedores no
// trae nombre, el ID literal sirve de etiqueta del balde.
func TestBuildSuggestedOrders_ProveedorSinNombre(t *testing.T) {
	products := []engine.ProductMeta{{ID: "p1", Name: "Agua mineral", Par: dp(10), SupplierID: "sup-999"}}
	onHand := []engine.OnHandRow{{ProductID: "p1", Qty: d(1)}}

	res := engine.BuildSuggestedOrders(products, onHand, nil, nil, engine.SuggestOptions{})
	require.Len(t, res.Buckets, 1)
	assert.Equal(t, "sup-999", res.Buckets[0].SupplierName)
}

// TestBuildSuggestedOrders_OrdenDeterminista baldes por nombre de proveedor
// y líneas por departamento/nombre: dos corridas, salida idéntica.
func TestBuildSuggestedOrders_OrdenDeterminista(t *testing.T) {
	products := []engine.ProductMeta{
		{ID: "p1", Name: "Zumo", Par: dp(10), SupplierID: "s-b"},
		{ID: "p2", Name: "Agua", Par: dp(10), SupplierID: "s-a"},
		{ID: "p3", Name: "Café", Par: dp(10), SupplierID: "s-a"},
	}
	onHand := []engine.OnHandRow{
		{ProductID: "p3", Qty: d(1)},
		{ProductID: "p1", Qty: d(1)},
		{ProductID: "p2", Qty: d(1)},
	}
	suppliers := []engine.SupplierMeta{{ID: "s-a", Name: "Alfa"}, {ID: "s-b", Name: "Beta"}}

	res := engine.BuildSuggestedOrders(products, onHand, suppliers, nil, engine.SuggestOptions{})
	require.Len(t, res.Buckets, 2)
	assert.Equal(t, "Alfa", res.Buckets[0].SupplierName)
	assert.Equal(t, "Agua", res.Buckets[0].Lines[0].ProductName)
	assert.Equal(t, "Café", res.Buckets[0].Lines[1].ProductName)

	again := engine.BuildSuggestedOrders(products, onHand, suppliers, nil, engine.SuggestOptions{})
	assert.Equal(t, res, again)
}
