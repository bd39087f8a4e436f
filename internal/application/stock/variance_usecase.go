// Package stock orquesta el motor puro de cálculo (internal/domain/engine)
// con los repositorios: arma los snapshots, invoca el motor y traduce el
// resultado a DTOs. Toda la política de I/O (timeouts, reintentos) vive
// aquí o más afuera; el motor recibe datos planos y devuelve en
// microsegundos.
package stock

import (
	"context"
	"time"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/dto"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/repository"
)

// VarianceUseCase calcula el reporte unificado de varianza y merma de un
// local sobre una ventana de ventas/recepciones.
type VarianceUseCase struct {
	countRepo repository.StockCountRepository
}

// NewVarianceUseCase construye el caso de uso.
func NewVarianceUseCase(countRepo repository.StockCountRepository) *VarianceUseCase {
	return &VarianceUseCase{countRepo: countRepo}
}

// ComputeWindow arma los snapshots del último conteo más la ventana de
// movimientos, ejecuta el motor y traduce a DTO. departmentID vacío =
// todo el local.
func (uc *VarianceUseCase) ComputeWindow(
	ctx context.Context,
	venueID, departmentID string,
	from, to time.Time,
) (*dto.VarianceReportDTO, error) {
	result, err := uc.ComputeWindowRaw(ctx, venueID, departmentID, from, to)
	if err != nil {
		return nil, err
	}

	report := &dto.VarianceReportDTO{
		VenueID:      venueID,
		DepartmentID: departmentID,
		WindowFrom:   from,
		WindowTo:     to,
		Rows:         make([]dto.VarianceRow, 0, len(result.Rows)),
		Totals: dto.VarianceTotals{
			ShortageValue:  result.Totals.ShortageValue,
			ExcessValue:    result.Totals.ExcessValue,
			ShrinkageUnits: result.Totals.ShrinkageUnits,
			ShrinkageValue: result.Totals.ShrinkageValue,
		},
	}
	for _, row := range result.Rows {
		report.Rows = append(report.Rows, dto.VarianceRow{
			SKU:               row.SKU,
			Name:              row.Name,
			DepartmentID:      row.DepartmentID,
			UnitCost:          row.UnitCost,
			OnHand:            row.OnHand,
			Expected:          row.Expected,
			Variance:          row.Variance,
			Value:             row.Value,
			SalesQty:          row.SalesQty,
			InvoiceQty:        row.InvoiceQty,
			Shrinkage:         row.Shrinkage,
			ShrinkUnits:       row.ShrinkUnits,
			ShrinkValue:       row.ShrinkValue,
			ListCostPerUnit:   row.ListCostPerUnit,
			LandedCostPerUnit: row.LandedCostPerUnit,
			RealCostPerUnit:   row.RealCostPerUnit,
		})
	}
	return report, nil
}

// ComputeWindowRaw ejecuta el motor y devuelve su resultado sin traducir,
// para consumidores internos (reporte PDF, explicación con IA) que
// necesitan la estructura completa.
func (uc *VarianceUseCase) ComputeWindowRaw(
	ctx context.Context,
	venueID, departmentID string,
	from, to time.Time,
) (*engine.UnifiedResult, error) {
	if venueID == "" || from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	countLines, err := uc.countRepo.GetLatestCountLines(ctx, venueID, departmentID)
	if err != nil {
		return nil, err
	}
	salesRows, err := uc.countRepo.GetSalesWindow(ctx, venueID, departmentID, from, to)
	if err != nil {
		return nil, err
	}
	receiptRows, err := uc.countRepo.GetReceiptsWindow(ctx, venueID, departmentID, from, to)
	if err != nil {
		return nil, err
	}

	counts := make([]engine.CountRow, 0, len(countLines))
	for _, line := range countLines {
		counts = append(counts, engine.CountRow{
			SKU:          line.SKU,
			Name:         line.ProductName,
			DepartmentID: line.DepartmentID,
			UnitCost:     line.UnitCost,
			OnHand:       line.OnHand,
			Expected:     line.Expected,
		})
	}

	result := engine.ComputeUnified(counts, toQtyRows(salesRows), toQtyRows(receiptRows))
	return &result, nil
}

// toQtyRows traduce los agregados del repositorio a filas del motor.
func toQtyRows(rows []entity.MovementAggregate) []engine.QtyRow {
	out := make([]engine.QtyRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, engine.QtyRow{SKU: r.SKU, Qty: r.Qty})
	}
	return out
}
