package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/dto"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/reports"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/stock"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
)

// StockHandler maneja varianza de inventario y pedidos sugeridos.
// suggestDefaults son los valores del despliegue; los query params de cada
// petición los pueden sobreescribir.
type StockHandler struct {
	varianceUC      *stock.VarianceUseCase
	suggestUC       *stock.SuggestUseCase
	reportUC        *reports.ReportUseCase
	suggestDefaults stock.SuggestOptions
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(
	varianceUC *stock.VarianceUseCase,
	suggestUC *stock.SuggestUseCase,
	reportUC *reports.ReportUseCase,
	suggestDefaults stock.SuggestOptions,
) *StockHandler {
	return &StockHandler{
		varianceUC:      varianceUC,
		suggestUC:       suggestUC,
		reportUC:        reportUC,
		suggestDefaults: suggestDefaults,
	}
}

// Variance godoc
// @Summary      Reporte unificado de varianza y merma
// @Description  Compara el último conteo contra la cantidad esperada (conteo anterior + recepciones - ventas)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        from           query  string  true   "inicio de ventana (RFC3339)"
// @Param        to             query  string  true   "fin de ventana (RFC3339)"
// @Param        department_id  query  string  false  "restringir a un departamento"
// @Success      200  {object}  dto.VarianceReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/variance [get]
func (h *StockHandler) Variance(c *fiber.Ctx) error {
	from, to, err := parseWindow(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	report, err := h.varianceUC.ComputeWindow(c.Context(), GetVenueID(c), c.Query("department_id"), from, to)
	if err != nil {
		return varianceError(c, err)
	}
	return c.JSON(report)
}

// VariancePDF godoc
// @Summary      Reporte de varianza en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        from           query  string  true   "inicio de ventana (RFC3339)"
// @Param        to             query  string  true   "fin de ventana (RFC3339)"
// @Param        department_id  query  string  false  "restringir a un departamento"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/variance/pdf [get]
func (h *StockHandler) VariancePDF(c *fiber.Ctx) error {
	from, to, err := parseWindow(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	pdfBytes, filename, err := h.reportUC.DownloadVariancePDF(c.Context(), GetVenueID(c), c.Query("department_id"), from, to)
	if err != nil {
		return varianceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// SuggestedOrders godoc
// @Summary      Pedidos sugeridos agrupados por proveedor
// @Description  Calcula qué pedir para volver al nivel PAR según el último conteo. Los huecos de catálogo degradan a banderas needs_par y needs_supplier
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        round_to_pack  query  bool    false  "redondear al tamaño de empaque (default true)"
// @Param        default_par    query  number  false  "PAR por defecto para productos sin nivel"
// @Success      200  {object}  dto.SuggestedOrdersDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/suggested [get]
func (h *StockHandler) SuggestedOrders(c *fiber.Ctx) error {
	opts := h.suggestDefaults
	opts.RoundToPack = c.QueryBool("round_to_pack", h.suggestDefaults.RoundToPack)
	if raw := c.Query("default_par"); raw != "" {
		par, err := decimal.NewFromString(raw)
		if err != nil || par.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "default_par debe ser un número no negativo"})
		}
		opts.DefaultPar = &par
	}
	result, err := h.suggestUC.Suggest(c.Context(), GetVenueID(c), opts)
	if err != nil {
		return varianceError(c, err)
	}
	return c.JSON(result)
}

// parseWindow lee y valida los query params from/to en RFC3339.
func parseWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from debe ser una fecha RFC3339")
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to debe ser una fecha RFC3339")
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, errors.New("to debe ser posterior a from")
	}
	return from, to, nil
}

// varianceError traduce errores de dominio de stock a HTTP.
func varianceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNoCountAvailable):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_COUNT", Message: "el local no tiene conteos cerrados"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el recurso pertenece a otro local"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
