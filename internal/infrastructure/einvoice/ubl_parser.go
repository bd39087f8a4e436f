// Package einvoice extrae líneas de facturas electrónicas UBL 2.1 para
// alimentar la conciliación. Solo lectura: no valida firmas ni totales
// declarados, eso queda en manos del conciliador.
package einvoice

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
)

// UBLParser parsea facturas UBL (Invoice) con etree, tolerante a prefijos
// de namespace distintos (cac:/cbc: o sin prefijo según el emisor).
type UBLParser struct{}

// NewUBLParser construye el parser.
func NewUBLParser() *UBLParser { return &UBLParser{} }

// Parse extrae las líneas de detalle, los cargos/descuentos a nivel de
// documento y el total de impuestos de una factura UBL.
// Las líneas de detalle quedan sin etiquetar (LineType vacío): el
// conciliador las clasifica por nombre antes de usarlas.
func (p *UBLParser) Parse(xmlBytes []byte) ([]engine.ParsedInvoiceLine, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedEInvoice, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: documento sin raíz", domain.ErrMalformedEInvoice)
	}
	if root.Tag != "Invoice" {
		return nil, fmt.Errorf("%w: raíz %q, se esperaba Invoice", domain.ErrMalformedEInvoice, root.Tag)
	}

	var lines []engine.ParsedInvoiceLine

	for _, el := range childrenByTag(root, "InvoiceLine") {
		line, err := parseInvoiceLine(el)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: factura sin líneas de detalle", domain.ErrMalformedEInvoice)
	}

	// Cargos y descuentos a nivel de documento (flete, recargos, promos).
	for _, el := range childrenByTag(root, "AllowanceCharge") {
		ac, ok, err := parseAllowanceCharge(el)
		if err != nil {
			return nil, err
		}
		if ok {
			lines = append(lines, ac)
		}
	}

	// Total de impuestos declarado: una línea tax por cada TaxTotal.
	for _, el := range childrenByTag(root, "TaxTotal") {
		amount, err := childDecimal(el, "TaxAmount")
		if err != nil {
			return nil, err
		}
		if amount == nil || amount.IsZero() {
			continue
		}
		lines = append(lines, engine.ParsedInvoiceLine{
			Name:      "Tax",
			Qty:       decimal.NewFromInt(1),
			UnitPrice: amount,
			LineType:  engine.LineTypeTax,
		})
	}

	return lines, nil
}

func parseInvoiceLine(el *etree.Element) (engine.ParsedInvoiceLine, error) {
	var line engine.ParsedInvoiceLine

	qty, err := childDecimal(el, "InvoicedQuantity")
	if err != nil {
		return line, err
	}
	if qty != nil {
		line.Qty = *qty
	}

	if item := childByTag(el, "Item"); item != nil {
		line.Name = childText(item, "Description")
		if line.Name == "" {
			line.Name = childText(item, "Name")
		}
		if sellers := childByTag(item, "SellersItemIdentification"); sellers != nil {
			line.Code = childText(sellers, "ID")
		}
		if line.Code == "" {
			if std := childByTag(item, "StandardItemIdentification"); std != nil {
				line.Code = childText(std, "ID")
			}
		}
	}
	if line.Name == "" {
		return line, fmt.Errorf("%w: línea %s sin nombre de producto",
			domain.ErrMalformedEInvoice, childText(el, "ID"))
	}

	if price := childByTag(el, "Price"); price != nil {
		unitPrice, err := childDecimal(price, "PriceAmount")
		if err != nil {
			return line, err
		}
		line.UnitPrice = unitPrice
	}
	return line, nil
}

// parseAllowanceCharge traduce un cac:AllowanceCharge a una línea de cargo.
// ChargeIndicator false marca un descuento: en UBL 2.1 el Amount viene
// positivo por esquema y el indicador es lo que señala la resta, así que
// aquí se niega para que el motor lo descuente del total de cargos. Si un
// emisor no conforme ya manda el monto negativo, se respeta el signo en vez
// de negarlo dos veces.
func parseAllowanceCharge(el *etree.Element) (engine.ParsedInvoiceLine, bool, error) {
	var line engine.ParsedInvoiceLine

	amount, err := childDecimal(el, "Amount")
	if err != nil {
		return line, false, err
	}
	if amount == nil {
		return line, false, nil
	}

	reason := childText(el, "AllowanceChargeReason")
	if reason == "" {
		reason = "Charge"
	}
	line.Name = reason
	line.Qty = decimal.NewFromInt(1)
	line.UnitPrice = amount

	isCharge := strings.EqualFold(childText(el, "ChargeIndicator"), "true")
	if !isCharge {
		line.LineType = engine.LineTypeDiscount
		if amount.IsPositive() {
			neg := amount.Neg()
			line.UnitPrice = &neg
		}
	}
	return line, true, nil
}

// ── helpers etree ─────────────────────────────────────────────────────────────

// childByTag busca el primer hijo directo con ese Tag, sin importar el
// prefijo de namespace.
func childByTag(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

func childrenByTag(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
	}
	return out
}

func childText(el *etree.Element, tag string) string {
	child := childByTag(el, tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func childDecimal(el *etree.Element, tag string) (*decimal.Decimal, error) {
	raw := childText(el, tag)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q no es numérico", domain.ErrMalformedEInvoice, tag, raw)
	}
	return &d, nil
}
