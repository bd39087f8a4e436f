package ports

import (
	"context"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/dto"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz.
// Siguiendo el principio de inversión de dependencias (DIP), el dominio/aplicación
// solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// ExplainVarianceReport analiza un reporte de varianza de inventario y
	// produce una explicación en lenguaje natural con los hallazgos clave.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	ExplainVarianceReport(
		ctx context.Context,
		report *dto.VarianceReportDTO,
	) (*dto.AIExplanationDTO, error)
}
