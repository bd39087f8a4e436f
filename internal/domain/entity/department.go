package entity

import "time"

// Department área contable de un local (barra, bodega, cocina).
// Los conteos y los PAR pueden definirse por departamento.
type Department struct {
	ID        string
	VenueID   string
	Name      string
	CreatedAt time.Time
}
