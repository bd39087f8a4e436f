package entity

import "time"

// Supplier proveedor de un local.
type Supplier struct {
	ID        string
	VenueID   string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
