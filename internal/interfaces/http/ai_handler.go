package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/dto"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/usecase"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
)

// AIHandler maneja la explicación de varianza asistida por IA.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// ExplainVariance godoc
// @Summary      Explicar el reporte de varianza con IA
// @Description  Calcula la varianza de la ventana pedida y devuelve una explicación en lenguaje natural. Requiere el módulo variance_ai activo.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExplainVarianceRequest  true  "from, to (RFC3339) y department_id opcional"
// @Success      200   {object}  dto.AIExplanationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/ai/explain-variance [post]
func (h *AIHandler) ExplainVariance(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "token inválido",
		})
	}

	var req dto.ExplainVarianceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}

	result, err := h.uc.ExplainVariance(c.Context(), GetVenueID(c), req)
	if err != nil {
		// Timeout del contexto → 408 Request Timeout
		if errors.Is(err, c.Context().Err()) || isTimeout(err) {
			return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
				Code: "TIMEOUT", Message: "el servicio de IA tardó demasiado; intenta de nuevo",
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "from y to son requeridos y to debe ser posterior a from",
			})
		}
		if errors.Is(err, domain.ErrNoCountAvailable) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NO_COUNT", Message: "el local no tiene conteos cerrados",
			})
		}
		// API key no configurada
		if strings.Contains(err.Error(), "API_KEY") {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "AI_UNAVAILABLE", Message: "el servicio de explicación IA no está configurado",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(result)
}

// isTimeout detecta errores de timeout/cancelación de contexto en el mensaje de error.
func isTimeout(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "cancelación")
}
