package entity

import "time"

// Venue un local (bar, restaurante, hotel) dueño de su catálogo, conteos y
// pedidos. Modules lleva los módulos SaaS contratados con su vencimiento;
// la verificación vive en VenueRepository.HasActiveModule.
type Venue struct {
	ID        string
	Name      string
	Timezone  string
	Currency  string               // ISO 4217
	Modules   map[string]time.Time // módulo → fecha de vencimiento
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos SaaS conocidos.
const (
	ModuleVarianceAI = "variance_ai" // explicación de varianza con IA
	ModuleEInvoice   = "einvoice"    // ingesta de factura electrónica UBL
)
