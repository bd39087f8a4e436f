package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/dto"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/ports"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/stock"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
)

// AIUseCase orquesta la explicación de varianzas asistida por IA.
// Aplica un timeout de 10 segundos en cada llamada al LLM para evitar
// que las latencias externas bloqueen los goroutines del servidor.
type AIUseCase struct {
	llm      ports.LLMService
	variance *stock.VarianceUseCase
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService
// y el caso de uso de varianza que genera el reporte a explicar.
func NewAIUseCase(llm ports.LLMService, variance *stock.VarianceUseCase) *AIUseCase {
	return &AIUseCase{llm: llm, variance: variance}
}

// ExplainVariance calcula el reporte de varianza de la ventana pedida y
// delega la explicación al servicio de LLM. Envuelve el contexto con un
// timeout de 10 s para respetar los SLAs de la API.
func (uc *AIUseCase) ExplainVariance(
	ctx context.Context,
	venueID string,
	req dto.ExplainVarianceRequest,
) (*dto.AIExplanationDTO, error) {
	if req.From.IsZero() || req.To.IsZero() || !req.To.After(req.From) {
		return nil, domain.ErrInvalidInput
	}

	report, err := uc.variance.ComputeWindow(ctx, venueID, req.DepartmentID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	// Timeout de 10 s: las llamadas a LLMs pueden demorar varios segundos.
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := uc.llm.ExplainVarianceReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("explicación IA: %w", err)
	}

	return result, nil
}
