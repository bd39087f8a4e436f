package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
)

// OnHandResult stock en mano por producto y departamento según el último
// conteo. DepartmentID vacío = conteo de todo el local.
type OnHandResult struct {
	ProductID    string
	DepartmentID string
	Qty          decimal.Decimal
}

// StockCountRepository puerto de lectura de conteos y movimientos de la
// ventana de análisis (DIP). El motor de cálculo nunca toca la base de
// datos: estos métodos materializan los snapshots que consume.
type StockCountRepository interface {
	// GetLatestCountLines devuelve las líneas del conteo más reciente del
	// local, opcionalmente restringido a un departamento.
	// ErrNoCountAvailable si el local nunca ha contado.
	GetLatestCountLines(ctx context.Context, venueID, departmentID string) ([]entity.CountLine, error)

	// GetSalesWindow agrega las ventas por SKU dentro de la ventana [from, to].
	GetSalesWindow(ctx context.Context, venueID, departmentID string, from, to time.Time) ([]entity.MovementAggregate, error)

	// GetReceiptsWindow agrega las recepciones de proveedor por SKU dentro
	// de la ventana [from, to].
	GetReceiptsWindow(ctx context.Context, venueID, departmentID string, from, to time.Time) ([]entity.MovementAggregate, error)

	// GetOnHandByDepartment devuelve el stock en mano del último conteo de
	// cada departamento, para el cálculo de reposición.
	GetOnHandByDepartment(ctx context.Context, venueID string) ([]OnHandResult, error)
}
