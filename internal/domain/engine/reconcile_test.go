package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
)

// TestReconcileInvoice_CoincidenciaExacta línea igual en cantidad y precio
// dentro de la tolerancia por defecto cae en MatchedOK.
func TestReconcileInvoice_CoincidenciaExacta(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", Name: "Lime", Qty: dp(10), UnitCost: dp(2.00)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Name: "Lime", Qty: d(10), UnitPrice: dp(2.00)},
	}

	res := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	require.Len(t, res.MatchedOK, 1)
	assert.Empty(t, res.QtyVariance)
	assert.Empty(t, res.PriceVariance)
	assert.Empty(t, res.UnknownItems)
	assert.Empty(t, res.MissingItems)
	assert.True(t, res.Totals.ItemsSubTotal.Equal(d(20)))
	assert.True(t, res.Totals.GrandTotal.Equal(d(20)))
}

// TestReconcileInvoice_DesviacionDePrecio 2.10 contra 2.00 es un 5 % de
// desviación: excede la tolerancia por defecto del 2 % y va a PriceVariance.
func TestReconcileInvoice_DesviacionDePrecio(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", Name: "Lime", Qty: dp(10), UnitCost: dp(2.00)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Name: "Lime", Qty: d(10), UnitPrice: dp(2.10)},
	}

	res := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	require.Len(t, res.PriceVariance, 1)
	assert.Empty(t, res.MatchedOK)
	assert.Empty(t, res.QtyVariance)
	assert.True(t, res.PriceVariance[0].PriceDeltaPct.Equal(d(0.05)))
}

// TestReconcileInvoice_VarianzaDobleNoExcluyente cantidad y precio
// desviados a la vez: el mismo par aparece en ambos baldes por diseño.
func TestReconcileInvoice_VarianzaDobleNoExcluyente(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", Name: "Lemon", Qty: dp(10), UnitCost: dp(1.00)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Name: "Lemon", Qty: d(8), UnitPrice: dp(1.50)},
	}

	res := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	assert.Len(t, res.QtyVariance, 1)
	assert.Len(t, res.PriceVariance, 1)
	assert.Empty(t, res.MatchedOK)
}

// TestReconcileInvoice_EmparejaPorCodigoPrimero el código manda sobre el
// nombre: aunque el nombre no coincida, el SKU empareja (insensible a
// mayúsculas).
func TestReconcileInvoice_EmparejaPorCodigoPrimero(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", SKU: "GIN-1L", Name: "Ginebra Premium 1L", Qty: dp(6), UnitCost: dp(30)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Code: "gin-1l", Name: "GIN PREM 1000ML", Qty: d(6), UnitPrice: dp(30)},
	}

	res := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	require.Len(t, res.MatchedOK, 1)
	// Emparejada por código: no debe reportarse como faltante aunque el
	// nombre normalizado de la factura nunca coincida con el del pedido.
	assert.Empty(t, res.MissingItems)
}

// TestReconcileInvoice_NombreNormalizado espacios dobles, mayúsculas y
// acentos no impiden el emparejamiento por nombre.
func TestReconcileInvoice_NombreNormalizado(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", Name: "Jalapeño  en  Escabeche", Qty: dp(4), UnitCost: dp(3)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Name: "JALAPENO EN ESCABECHE", Qty: d(4), UnitPrice: dp(3)},
	}

	res := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	assert.Len(t, res.MatchedOK, 1)
	assert.Empty(t, res.UnknownItems)
}

// TestReconcileInvoice_NombreDuplicadoGanaPrimero si dos líneas del pedido
// normalizan al mismo nombre, la primera indexada gana; la segunda queda
// cubierta por el nombre visto y no se reporta como faltante.
func TestReconcileInvoice_NombreDuplicadoGanaPrimero(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", Name: "Lime", Qty: dp(10), UnitCost: dp(2)},
		{ID: "ol-2", Name: "LIME", Qty: dp(5), UnitCost: dp(9)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Name: "Lime", Qty: d(10), UnitPrice: dp(2)},
	}

	res := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	require.Len(t, res.MatchedOK, 1)
	assert.Equal(t, "ol-1", res.MatchedOK[0].Order.ID)
	assert.Empty(t, res.MissingItems)
}

// TestReconcileInvoice_DesconocidosYFaltantes líneas de factura sin pareja
// van a UnknownItems; líneas de pedido nunca vistas van a MissingItems.
func TestReconcileInvoice_DesconocidosYFaltantes(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", Name: "Lime", Qty: dp(10), UnitCost: dp(2)},
		{ID: "ol-2", Name: "Mint bunch", Qty: dp(3), UnitCost: dp(1.5)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Name: "Lime", Qty: d(10), UnitPrice: dp(2)},
		{Name: "Dragonfruit", Qty: d(2), UnitPrice: dp(8)},
	}

	res := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	require.Len(t, res.UnknownItems, 1)
	assert.Equal(t, "Dragonfruit", res.UnknownItems[0].Name)
	require.Len(t, res.MissingItems, 1)
	assert.Equal(t, "ol-2", res.MissingItems[0].ID)
}

// TestReconcileInvoice_PrecioPedidoCero precio de pedido en cero con precio
// positivo en factura cuenta como desviación del 100 % (guardia de división
// por cero), y cero contra cero como 0 %.
func TestReconcileInvoice_PrecioPedidoCero(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", Name: "Muestra gratis", Qty: dp(1), UnitCost: dp(0)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Name: "Muestra gratis", Qty: d(1), UnitPrice: dp(4)},
	}

	res := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	require.Len(t, res.PriceVariance, 1)
	assert.True(t, res.PriceVariance[0].PriceDeltaPct.Equal(d(1)))

	parsed[0].UnitPrice = dp(0)
	res = engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	require.Len(t, res.MatchedOK, 1)
	assert.True(t, res.MatchedOK[0].PriceDeltaPct.Equal(decimal.Zero))
}

// TestReconcileInvoice_CargosYBanderas los cargos no-producto se acumulan por
// tipo, el gran total cierra exacto y las banderas de UI se encienden.
func TestReconcileInvoice_CargosYBanderas(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", Name: "Lime", Qty: dp(10), UnitCost: dp(2)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Name: "Lime", Qty: d(10), UnitPrice: dp(2)},
		{Name: "Freight - metro delivery", Qty: d(1), UnitPrice: dp(15)},
		{Name: "Keg deposit 50L", Qty: d(2), UnitPrice: dp(30)},
		{Name: "Ullage credit", Qty: d(1), UnitPrice: dp(-12)},
		{Name: "GST 10%", Qty: d(1), UnitPrice: dp(6.3)},
		{Name: "Sin precio etiquetado", Qty: d(1), LineType: engine.LineTypeOther},
	}

	res := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})

	assert.True(t, res.Charges.Freight.Equal(d(15)))
	assert.True(t, res.Charges.DepositReturnable.Equal(d(60)))
	assert.True(t, res.Charges.Ullage.Equal(d(-12)))
	assert.True(t, res.Charges.Tax.Equal(d(6.3)))
	assert.True(t, res.Charges.Other.Equal(decimal.Zero), "sin precio ⇒ total de línea 0")
	assert.True(t, res.Charges.Total.Equal(d(69.3)))

	assert.True(t, res.Totals.ItemsSubTotal.Equal(d(20)))
	assert.True(t, res.Totals.ChargesTotal.Equal(d(69.3)))
	assert.True(t, res.Totals.GrandTotal.Equal(res.Totals.ItemsSubTotal.Add(res.Totals.ChargesTotal)))

	assert.True(t, res.Flags.HasFreight)
	assert.True(t, res.Flags.HasDeposits)
	assert.True(t, res.Flags.HasUllage)
}

// TestReconcileInvoice_ToleranciaExplicitaCero tolerancia cero explícita no
// se confunde con "sin tolerancia configurada": exige precio exacto.
func TestReconcileInvoice_ToleranciaExplicitaCero(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", Name: "Lime", Qty: dp(10), UnitCost: dp(2.00)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Name: "Lime", Qty: d(10), UnitPrice: dp(2.02)},
	}

	// Con el 2 % por defecto 2.02 pasa; con tolerancia cero no.
	res := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	assert.Len(t, res.MatchedOK, 1)

	zero := decimal.Zero
	res = engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{PriceTolerancePct: &zero})
	assert.Len(t, res.PriceVariance, 1)
}

// TestReconcileInvoice_Idempotente misma entrada, misma salida.
func TestReconcileInvoice_Idempotente(t *testing.T) {
	order := []engine.OrderLine{
		{ID: "ol-1", Name: "Lime", Qty: dp(10), UnitCost: dp(2)},
		{ID: "ol-2", Name: "Mint bunch", Qty: dp(3), UnitCost: dp(1.5)},
	}
	parsed := []engine.ParsedInvoiceLine{
		{Name: "Lime", Qty: d(8), UnitPrice: dp(2.2)},
		{Name: "Freight", Qty: d(1), UnitPrice: dp(10)},
	}

	first := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	second := engine.ReconcileInvoice(parsed, order, engine.ReconcileOptions{})
	assert.Equal(t, first, second)
}
