package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/repository"
)

var _ repository.StockCountRepository = (*StockCountRepo)(nil)

// StockCountRepo implementación del puerto StockCountRepository sobre
// PostgreSQL. Solo lectura: materializa los snapshots que consume el motor.
type StockCountRepo struct {
	q Querier
}

// NewStockCountRepository construye el adaptador de lectura de conteos.
func NewStockCountRepository(q Querier) *StockCountRepo {
	return &StockCountRepo{q: q}
}

// GetLatestCountLines devuelve las líneas del conteo cerrado más reciente
// del venue, opcionalmente restringido a un departamento.
// ErrNoCountAvailable si el venue nunca ha contado.
func (r *StockCountRepo) GetLatestCountLines(ctx context.Context, venueID, departmentID string) ([]entity.CountLine, error) {
	var countID string
	err := r.q.QueryRow(ctx, `
		SELECT id FROM stock_counts
		WHERE venue_id = $1 AND ($2 = '' OR COALESCE(department_id, '') = $2)
		ORDER BY counted_at DESC LIMIT 1`, venueID, departmentID).Scan(&countID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoCountAvailable
		}
		return nil, fmt.Errorf("latest count: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT count_id, sku, COALESCE(product_name, ''), COALESCE(department_id, ''), on_hand, expected, unit_cost
		FROM count_lines WHERE count_id = $1 ORDER BY sku`, countID)
	if err != nil {
		return nil, fmt.Errorf("count lines: %w", err)
	}
	defer rows.Close()
	var list []entity.CountLine
	for rows.Next() {
		var l entity.CountLine
		if err := rows.Scan(&l.CountID, &l.SKU, &l.ProductName, &l.DepartmentID, &l.OnHand, &l.Expected, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan count line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetSalesWindow agrega las ventas por SKU dentro de la ventana [from, to].
func (r *StockCountRepo) GetSalesWindow(ctx context.Context, venueID, departmentID string, from, to time.Time) ([]entity.MovementAggregate, error) {
	return r.movementsWindow(ctx, venueID, departmentID, "sale", from, to)
}

// GetReceiptsWindow agrega las recepciones de proveedor por SKU dentro de la ventana [from, to].
func (r *StockCountRepo) GetReceiptsWindow(ctx context.Context, venueID, departmentID string, from, to time.Time) ([]entity.MovementAggregate, error) {
	return r.movementsWindow(ctx, venueID, departmentID, "receipt", from, to)
}

func (r *StockCountRepo) movementsWindow(ctx context.Context, venueID, departmentID, movType string, from, to time.Time) ([]entity.MovementAggregate, error) {
	query := `
		SELECT sku, SUM(qty)
		FROM stock_movements
		WHERE venue_id = $1 AND ($2 = '' OR COALESCE(department_id, '') = $2)
		  AND type = $3 AND moved_at >= $4 AND moved_at <= $5
		GROUP BY sku ORDER BY sku`
	rows, err := r.q.Query(ctx, query, venueID, departmentID, movType, from, to)
	if err != nil {
		return nil, fmt.Errorf("movements window (%s): %w", movType, err)
	}
	defer rows.Close()
	var list []entity.MovementAggregate
	for rows.Next() {
		var m entity.MovementAggregate
		if err := rows.Scan(&m.SKU, &m.Qty); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetOnHandByDepartment devuelve el stock en mano del último conteo de cada
// departamento del venue, resuelto a product_id vía el catálogo.
func (r *StockCountRepo) GetOnHandByDepartment(ctx context.Context, venueID string) ([]repository.OnHandResult, error) {
	query := `
		SELECT p.id, COALESCE(cl.department_id, ''), cl.on_hand
		FROM count_lines cl
		JOIN stock_counts sc ON sc.id = cl.count_id
		JOIN products p ON p.venue_id = sc.venue_id AND p.sku = cl.sku
		WHERE cl.count_id IN (
			SELECT DISTINCT ON (COALESCE(department_id, '')) id
			FROM stock_counts WHERE venue_id = $1
			ORDER BY COALESCE(department_id, ''), counted_at DESC)
		  AND sc.venue_id = $1
		ORDER BY p.id, cl.department_id`
	rows, err := r.q.Query(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("on hand by department: %w", err)
	}
	defer rows.Close()
	var list []repository.OnHandResult
	for rows.Next() {
		var o repository.OnHandResult
		if err := rows.Scan(&o.ProductID, &o.DepartmentID, &o.Qty); err != nil {
			return nil, fmt.Errorf("scan on hand: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
