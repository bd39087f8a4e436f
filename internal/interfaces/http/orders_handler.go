package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/dto"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/stock"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
)

// invoiceParser es el contrato mínimo del parser de factura electrónica.
// Lo implementa *einvoice.UBLParser; la interfaz evita acoplar el handler
// a la infraestructura concreta.
type invoiceParser interface {
	Parse(xmlBytes []byte) ([]engine.ParsedInvoiceLine, error)
}

// OrdersHandler maneja la conciliación factura-pedido.
type OrdersHandler struct {
	reconcileUC *stock.ReconcileUseCase
	parser      invoiceParser
}

// NewOrdersHandler construye el handler de pedidos.
func NewOrdersHandler(reconcileUC *stock.ReconcileUseCase, parser invoiceParser) *OrdersHandler {
	return &OrdersHandler{reconcileUC: reconcileUC, parser: parser}
}

// Reconcile godoc
// @Summary      Conciliar líneas de factura contra un pedido
// @Description  Las líneas llegan ya extraídas (OCR, CSV). line_type vacío se clasifica por palabras clave
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del pedido"
// @Param        body  body  dto.ReconcileRequest  true  "líneas extraídas y tolerancia opcional"
// @Success      200   {object}  dto.ReconcileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reconcile [post]
func (h *OrdersHandler) Reconcile(c *fiber.Ctx) error {
	var req dto.ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.reconcileUC.Reconcile(c.Context(), GetVenueID(c), c.Params("id"), req)
	if err != nil {
		return reconcileError(c, err)
	}
	return c.JSON(result)
}

// ReconcileEInvoice godoc
// @Summary      Conciliar una factura electrónica UBL contra un pedido
// @Description  Recibe el XML UBL crudo en el body, extrae las líneas y concilia. Requiere el módulo einvoice activo.
// @Tags         orders
// @Security     Bearer
// @Accept       application/xml
// @Produce      json
// @Param        id                   path   string  true   "ID del pedido"
// @Param        price_tolerance_pct  query  number  false  "tolerancia de precio (fracción; default 0.02)"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reconcile/einvoice [post]
func (h *OrdersHandler) ReconcileEInvoice(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se esperaba el XML de la factura en el body"})
	}

	parsed, err := h.parser.Parse(body)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedEInvoice) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MALFORMED_EINVOICE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	req := dto.ReconcileRequest{Lines: make([]dto.ParsedLineDTO, 0, len(parsed))}
	for _, l := range parsed {
		req.Lines = append(req.Lines, dto.ParsedLineDTO{
			Code:      l.Code,
			Name:      l.Name,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
			LineType:  string(l.LineType),
		})
	}
	if raw := c.Query("price_tolerance_pct"); raw != "" {
		tol, err := decimal.NewFromString(raw)
		if err != nil || tol.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "price_tolerance_pct debe ser un número no negativo"})
		}
		req.PriceTolerancePct = &tol
	}

	result, err := h.reconcileUC.Reconcile(c.Context(), GetVenueID(c), c.Params("id"), req)
	if err != nil {
		return reconcileError(c, err)
	}
	return c.JSON(result)
}

// reconcileError traduce errores de dominio de conciliación a HTTP.
func reconcileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORDER_NOT_FOUND", Message: "el pedido no existe"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el pedido pertenece a otro local"})
	case errors.Is(err, domain.ErrOrderHasNoLines):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "ORDER_EMPTY", Message: "el pedido no tiene líneas para conciliar"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
