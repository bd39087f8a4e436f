package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/dto"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/repository"
)

// SuggestOptions opciones del cálculo de pedidos sugeridos a nivel
// aplicación. DefaultPar nil usa el valor configurado del servicio.
type SuggestOptions struct {
	RoundToPack bool
	DefaultPar  *decimal.Decimal
}

// SuggestUseCase calcula los pedidos sugeridos de un local agrupados por
// proveedor, a partir del catálogo y del último conteo por departamento.
type SuggestUseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	countRepo    repository.StockCountRepository
	venueRepo    repository.VenueRepository
}

// NewSuggestUseCase construye el caso de uso.
func NewSuggestUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	countRepo repository.StockCountRepository,
	venueRepo repository.VenueRepository,
) *SuggestUseCase {
	return &SuggestUseCase{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		countRepo:    countRepo,
		venueRepo:    venueRepo,
	}
}

// Suggest arma catálogo, snapshot de stock y proveedores, y ejecuta el
// motor de reposición. El catálogo incompleto nunca es error: degrada a
// banderas needs_par / needs_supplier en las líneas.
func (uc *SuggestUseCase) Suggest(
	ctx context.Context,
	venueID string,
	opts SuggestOptions,
) (*dto.SuggestedOrdersDTO, error) {
	if venueID == "" {
		return nil, domain.ErrInvalidInput
	}

	products, err := uc.productRepo.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.supplierRepo.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	departments, err := uc.venueRepo.ListDepartments(ctx, venueID)
	if err != nil {
		return nil, err
	}
	onHand, err := uc.countRepo.GetOnHandByDepartment(ctx, venueID)
	if err != nil {
		return nil, err
	}

	metas := make([]engine.ProductMeta, 0, len(products))
	for _, p := range products {
		metas = append(metas, engine.ProductMeta{
			ID:         p.ID,
			SKU:        p.SKU,
			Name:       p.Name,
			Par:        p.Par,
			DeptPar:    p.DeptPar,
			SupplierID: p.SupplierID,
			PackSize:   p.PackSize,
			UnitCost:   p.UnitCost,
		})
	}
	supplierMetas := make([]engine.SupplierMeta, 0, len(suppliers))
	for _, s := range suppliers {
		supplierMetas = append(supplierMetas, engine.SupplierMeta{ID: s.ID, Name: s.Name})
	}
	deptMetas := make([]engine.DepartmentMeta, 0, len(departments))
	for _, d := range departments {
		deptMetas = append(deptMetas, engine.DepartmentMeta{ID: d.ID, Name: d.Name})
	}
	onHandRows := make([]engine.OnHandRow, 0, len(onHand))
	for _, row := range onHand {
		onHandRows = append(onHandRows, engine.OnHandRow{
			ProductID:    row.ProductID,
			DepartmentID: row.DepartmentID,
			Qty:          row.Qty,
		})
	}

	result := engine.BuildSuggestedOrders(metas, onHandRows, supplierMetas, deptMetas, engine.SuggestOptions{
		RoundToPack: opts.RoundToPack,
		DefaultPar:  opts.DefaultPar,
	})

	resp := &dto.SuggestedOrdersDTO{
		Buckets:    make([]dto.SuggestedBucketDTO, 0, len(result.Buckets)),
		Unassigned: toBucketDTO(result.Unassigned),
	}
	for _, b := range result.Buckets {
		resp.Buckets = append(resp.Buckets, toBucketDTO(b))
	}
	return resp, nil
}

// toBucketDTO traduce un balde del motor al DTO HTTP.
func toBucketDTO(b engine.SuggestedBucket) dto.SuggestedBucketDTO {
	out := dto.SuggestedBucketDTO{
		SupplierID:   b.SupplierID,
		SupplierName: b.SupplierName,
		Lines:        make([]dto.SuggestedLineDTO, 0, len(b.Lines)),
	}
	for _, l := range b.Lines {
		out.Lines = append(out.Lines, dto.SuggestedLineDTO{
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			Qty:           l.Qty,
			UnitCost:      l.UnitCost,
			PackSize:      l.PackSize,
			NeedsPar:      l.NeedsPar,
			NeedsSupplier: l.NeedsSupplier,
			Reason:        l.Reason,
			DeptID:        l.DeptID,
			DeptName:      l.DeptName,
			QtyDept:       l.QtyDept,
		})
	}
	return out
}
