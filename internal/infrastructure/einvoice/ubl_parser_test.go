package einvoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
)

const facturaUBL = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
         xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
         xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>INV-001</cbc:ID>
  <cac:AllowanceCharge>
    <cbc:ChargeIndicator>true</cbc:ChargeIndicator>
    <cbc:AllowanceChargeReason>Freight delivery</cbc:AllowanceChargeReason>
    <cbc:Amount currencyID="AUD">15.00</cbc:Amount>
  </cac:AllowanceCharge>
  <cac:TaxTotal>
    <cbc:TaxAmount currencyID="AUD">24.50</cbc:TaxAmount>
  </cac:TaxTotal>
  <cac:InvoiceLine>
    <cbc:ID>1</cbc:ID>
    <cbc:InvoicedQuantity unitCode="EA">24</cbc:InvoicedQuantity>
    <cbc:LineExtensionAmount currencyID="AUD">60.00</cbc:LineExtensionAmount>
    <cac:Item>
      <cbc:Description>Corona Extra 355ml</cbc:Description>
      <cac:SellersItemIdentification>
        <cbc:ID>COR-355</cbc:ID>
      </cac:SellersItemIdentification>
    </cac:Item>
    <cac:Price>
      <cbc:PriceAmount currencyID="AUD">2.50</cbc:PriceAmount>
    </cac:Price>
  </cac:InvoiceLine>
  <cac:InvoiceLine>
    <cbc:ID>2</cbc:ID>
    <cbc:InvoicedQuantity unitCode="EA">1</cbc:InvoicedQuantity>
    <cac:Item>
      <cbc:Name>Keg deposit 50L</cbc:Name>
    </cac:Item>
    <cac:Price>
      <cbc:PriceAmount currencyID="AUD">50.00</cbc:PriceAmount>
    </cac:Price>
  </cac:InvoiceLine>
</Invoice>`

func TestParse_FacturaUBLCompleta(t *testing.T) {
	lines, err := NewUBLParser().Parse([]byte(facturaUBL))
	require.NoError(t, err)
	require.Len(t, lines, 4) // 2 detalles + 1 cargo + 1 impuesto

	corona := lines[0]
	assert.Equal(t, "COR-355", corona.Code)
	assert.Equal(t, "Corona Extra 355ml", corona.Name)
	assert.True(t, corona.Qty.Equal(decimal.NewFromInt(24)))
	require.NotNil(t, corona.UnitPrice)
	assert.True(t, corona.UnitPrice.Equal(decimal.RequireFromString("2.50")))
	assert.Empty(t, corona.LineType) // sin etiquetar: clasifica el conciliador

	deposito := lines[1]
	assert.Equal(t, "Keg deposit 50L", deposito.Name)
	assert.Empty(t, deposito.Code)

	flete := lines[2]
	assert.Equal(t, "Freight delivery", flete.Name)
	require.NotNil(t, flete.UnitPrice)
	assert.True(t, flete.UnitPrice.Equal(decimal.NewFromInt(15)))
	assert.Empty(t, flete.LineType) // el nombre ya lo delata como flete

	impuesto := lines[3]
	assert.Equal(t, engine.LineTypeTax, impuesto.LineType)
	require.NotNil(t, impuesto.UnitPrice)
	assert.True(t, impuesto.UnitPrice.Equal(decimal.RequireFromString("24.50")))
}

func TestParse_DescuentoAllowance(t *testing.T) {
	// Factura conforme a UBL 2.1: el Amount del descuento viene positivo y
	// el ChargeIndicator=false es lo que señala la resta.
	const factura = `<Invoice>
	  <InvoiceLine>
	    <ID>1</ID>
	    <InvoicedQuantity>6</InvoicedQuantity>
	    <Item><Name>Vodka 700ml</Name></Item>
	    <Price><PriceAmount>30.00</PriceAmount></Price>
	  </InvoiceLine>
	  <AllowanceCharge>
	    <ChargeIndicator>false</ChargeIndicator>
	    <AllowanceChargeReason>Volumen mensual</AllowanceChargeReason>
	    <Amount>20.00</Amount>
	  </AllowanceCharge>
	</Invoice>`

	lines, err := NewUBLParser().Parse([]byte(factura))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, engine.LineTypeDiscount, lines[1].LineType)
	require.NotNil(t, lines[1].UnitPrice)
	assert.True(t, lines[1].UnitPrice.Equal(decimal.NewFromInt(-20)),
		"el descuento debe salir negado, salió %s", lines[1].UnitPrice)
}

func TestParse_DescuentoConMontoNegativoNoSeNiegaDosVeces(t *testing.T) {
	// Algunos emisores no conformes ya mandan el Amount negativo: se
	// respeta el signo tal cual.
	const factura = `<Invoice>
	  <InvoiceLine>
	    <ID>1</ID>
	    <InvoicedQuantity>1</InvoicedQuantity>
	    <Item><Name>Gin 700ml</Name></Item>
	    <Price><PriceAmount>45.00</PriceAmount></Price>
	  </InvoiceLine>
	  <AllowanceCharge>
	    <ChargeIndicator>false</ChargeIndicator>
	    <AllowanceChargeReason>Promo apertura</AllowanceChargeReason>
	    <Amount>-5.00</Amount>
	  </AllowanceCharge>
	</Invoice>`

	lines, err := NewUBLParser().Parse([]byte(factura))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.NotNil(t, lines[1].UnitPrice)
	assert.True(t, lines[1].UnitPrice.Equal(decimal.NewFromInt(-5)))
}

func TestParse_DescuentoReduceElGranTotalAlConciliar(t *testing.T) {
	const factura = `<Invoice>
	  <InvoiceLine>
	    <ID>1</ID>
	    <InvoicedQuantity>6</InvoicedQuantity>
	    <Item><Name>Vodka 700ml</Name></Item>
	    <Price><PriceAmount>30.00</PriceAmount></Price>
	  </InvoiceLine>
	  <AllowanceCharge>
	    <ChargeIndicator>false</ChargeIndicator>
	    <AllowanceChargeReason>Volumen mensual</AllowanceChargeReason>
	    <Amount>20.00</Amount>
	  </AllowanceCharge>
	</Invoice>`

	parsed, err := NewUBLParser().Parse([]byte(factura))
	require.NoError(t, err)

	orderQty := decimal.NewFromInt(6)
	orderPrice := decimal.RequireFromString("30.00")
	result := engine.ReconcileInvoice(parsed, []engine.OrderLine{
		{ID: "ol-1", Name: "Vodka 700ml", Qty: &orderQty, UnitCost: &orderPrice},
	}, engine.ReconcileOptions{})

	assert.True(t, result.Charges.Discount.Equal(decimal.NewFromInt(-20)))
	assert.True(t, result.Charges.Total.Equal(decimal.NewFromInt(-20)))
	assert.True(t, result.Totals.ItemsSubTotal.Equal(decimal.NewFromInt(180)))
	assert.True(t, result.Totals.GrandTotal.Equal(decimal.NewFromInt(160)),
		"el descuento debe restar del gran total, quedó %s", result.Totals.GrandTotal)
}

func TestParse_Malformada(t *testing.T) {
	casos := map[string]string{
		"xml roto":        `<Invoice><InvoiceLine>`,
		"raíz equivocada": `<CreditNote></CreditNote>`,
		"sin líneas":      `<Invoice><ID>X</ID></Invoice>`,
		"cantidad no numérica": `<Invoice><InvoiceLine>
			<InvoicedQuantity>dos</InvoicedQuantity>
			<Item><Name>Ron</Name></Item>
		</InvoiceLine></Invoice>`,
		"línea sin nombre": `<Invoice><InvoiceLine>
			<InvoicedQuantity>1</InvoicedQuantity>
		</InvoiceLine></Invoice>`,
	}
	for nombre, xml := range casos {
		t.Run(nombre, func(t *testing.T) {
			_, err := NewUBLParser().Parse([]byte(xml))
			assert.ErrorIs(t, err, domain.ErrMalformedEInvoice)
		})
	}
}
