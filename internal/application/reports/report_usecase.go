package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/dto"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/stock"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/repository"
)

// VariancePDFGenerator es el puerto de salida hacia el generador de PDF.
// La capa de infraestructura provee la implementación concreta (Maroto).
type VariancePDFGenerator interface {
	GenerateVarianceReport(
		ctx context.Context,
		venue *entity.Venue,
		report *dto.VarianceReportDTO,
	) ([]byte, error)
}

// ReportUseCase genera la representación en PDF del reporte de varianza.
type ReportUseCase struct {
	variance  *stock.VarianceUseCase
	venueRepo repository.VenueRepository
	generator VariancePDFGenerator
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	variance *stock.VarianceUseCase,
	venueRepo repository.VenueRepository,
	generator VariancePDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		variance:  variance,
		venueRepo: venueRepo,
		generator: generator,
	}
}

// DownloadVariancePDF calcula el reporte de varianza de la ventana pedida
// y lo renderiza a PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el venue no existe.
//   - domain.ErrNoCountAvailable si no hay conteo cerrado en el venue.
func (uc *ReportUseCase) DownloadVariancePDF(
	ctx context.Context,
	venueID, departmentID string,
	from, to time.Time,
) (pdfBytes []byte, filename string, err error) {
	venue, err := uc.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener venue: %w", err)
	}
	if venue == nil {
		return nil, "", domain.ErrNotFound
	}

	report, err := uc.variance.ComputeWindow(ctx, venueID, departmentID, from, to)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateVarianceReport(ctx, venue, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("varianza_%s_%s.pdf",
		from.Format("20060102"), to.Format("20060102"))
	return pdfBytes, filename, nil
}
