package stock

import (
	"context"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/dto"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/repository"
)

// ReconcileUseCase concilia las líneas extraídas de una factura recibida
// contra las líneas esperadas de un pedido del local.
type ReconcileUseCase struct {
	orderRepo repository.OrderRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(orderRepo repository.OrderRepository) *ReconcileUseCase {
	return &ReconcileUseCase{orderRepo: orderRepo}
}

// Reconcile valida el pedido, ejecuta el motor de conciliación y traduce el
// resultado. Las líneas llegan ya extraídas por el colaborador de turno
// (OCR, CSV o factura electrónica UBL); este caso de uso no sabe de dónde
// salieron.
func (uc *ReconcileUseCase) Reconcile(
	ctx context.Context,
	venueID, orderID string,
	req dto.ReconcileRequest,
) (*dto.ReconcileResponse, error) {
	if venueID == "" || orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.VenueID != venueID {
		return nil, domain.ErrForbidden
	}

	lines, err := uc.orderRepo.ListLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrOrderHasNoLines
	}

	orderLines := make([]engine.OrderLine, 0, len(lines))
	for _, l := range lines {
		orderLines = append(orderLines, engine.OrderLine{
			ID:        l.ID,
			ProductID: l.ProductID,
			SKU:       l.SKU,
			Name:      l.Name,
			Qty:       l.Qty,
			UnitCost:  l.UnitCost,
		})
	}

	parsed := make([]engine.ParsedInvoiceLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		parsed = append(parsed, engine.ParsedInvoiceLine{
			Code:      l.Code,
			Name:      l.Name,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
			LineType:  parseLineType(l.LineType),
		})
	}

	result := engine.ReconcileInvoice(parsed, orderLines, engine.ReconcileOptions{
		PriceTolerancePct: req.PriceTolerancePct,
	})

	return toReconcileResponse(orderID, result), nil
}

// parseLineType acepta solo los tipos conocidos; cualquier otra etiqueta se
// descarta para que el motor reclasifique por palabras clave.
func parseLineType(s string) engine.LineType {
	switch t := engine.LineType(s); t {
	case engine.LineTypeProduct, engine.LineTypeFreight, engine.LineTypeSurcharge,
		engine.LineTypeUllage, engine.LineTypeDepositReturnable,
		engine.LineTypeDiscount, engine.LineTypeTax, engine.LineTypeOther:
		return t
	}
	return ""
}

// toReconcileResponse traduce el resultado del motor al DTO HTTP.
func toReconcileResponse(orderID string, r engine.ReconcileResult) *dto.ReconcileResponse {
	resp := &dto.ReconcileResponse{
		OrderID:       orderID,
		MatchedOK:     toMatchDTOs(r.MatchedOK),
		QtyVariance:   toMatchDTOs(r.QtyVariance),
		PriceVariance: toMatchDTOs(r.PriceVariance),
		Charges: dto.ChargesDTO{
			Freight:           r.Charges.Freight,
			Surcharge:         r.Charges.Surcharge,
			Ullage:            r.Charges.Ullage,
			DepositReturnable: r.Charges.DepositReturnable,
			Discount:          r.Charges.Discount,
			Tax:               r.Charges.Tax,
			Other:             r.Charges.Other,
			Total:             r.Charges.Total,
		},
		ItemsSubTotal: r.Totals.ItemsSubTotal,
		ChargesTotal:  r.Totals.ChargesTotal,
		GrandTotal:    r.Totals.GrandTotal,
		HasDeposits:   r.Flags.HasDeposits,
		HasUllage:     r.Flags.HasUllage,
		HasFreight:    r.Flags.HasFreight,
	}
	for _, line := range r.UnknownItems {
		resp.UnknownItems = append(resp.UnknownItems, dto.ParsedLineDTO{
			Code:      line.Code,
			Name:      line.Name,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			LineType:  string(line.LineType),
		})
	}
	for _, ol := range r.MissingItems {
		resp.MissingItems = append(resp.MissingItems, dto.OrderLineDTO{
			ID:       ol.ID,
			SKU:      ol.SKU,
			Name:     ol.Name,
			Qty:      ol.Qty,
			UnitCost: ol.UnitCost,
		})
	}
	return resp
}

func toMatchDTOs(pairs []engine.ReconcileMatch) []dto.ReconcileMatchDTO {
	out := make([]dto.ReconcileMatchDTO, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, dto.ReconcileMatchDTO{
			OrderLineID:   p.Order.ID,
			Name:          p.Invoice.Name,
			InvoiceQty:    p.Invoice.Qty,
			OrderQty:      p.Order.Qty,
			InvoicePrice:  p.Invoice.UnitPrice,
			OrderPrice:    p.Order.UnitCost,
			PriceDeltaPct: p.PriceDeltaPct,
		})
	}
	return out
}
