package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// Los overrides de PAR por departamento viven en una columna JSONB.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	id, venue_id, sku, name, COALESCE(supplier_id, ''), unit_cost, par, dept_par,
	pack_size, COALESCE(unit, ''), created_at, updated_at`

// Create persiste un nuevo producto. ErrDuplicate si el SKU ya existe en el venue.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	deptPar, err := marshalDeptPar(p.DeptPar)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO products (id, venue_id, sku, name, supplier_id, unit_cost, par, dept_par, pack_size, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.VenueID, p.SKU, p.Name, p.SupplierID, p.UnitCost, p.Par, deptPar,
		p.PackSize, p.Unit, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return p, nil
}

// ListByVenue lista el catálogo completo de un venue ordenado por nombre.
func (r *ProductRepo) ListByVenue(ctx context.Context, venueID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE venue_id = $1 ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var deptPar []byte
	err := row.Scan(
		&p.ID, &p.VenueID, &p.SKU, &p.Name, &p.SupplierID, &p.UnitCost, &p.Par, &deptPar,
		&p.PackSize, &p.Unit, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(deptPar) > 0 {
		if err := json.Unmarshal(deptPar, &p.DeptPar); err != nil {
			return nil, fmt.Errorf("dept_par inválido: %w", err)
		}
	}
	return &p, nil
}

func marshalDeptPar(m map[string]decimal.Decimal) ([]byte, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("serializar dept_par: %w", err)
	}
	return b, nil
}
