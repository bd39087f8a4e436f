package entity

import "time"

// Roles de usuario dentro de un local.
const (
	RoleAdmin   = "admin"
	RoleGerente = "gerente"
	RoleStaff   = "staff"
)

// User usuario de la aplicación, atado a un local.
type User struct {
	ID           string
	VenueID      string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | gerente | staff
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
