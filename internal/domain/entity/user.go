package entity

import "time"

// User representa un empleado con acceso al sistema.
// El rol determina qué dashboards puede ver (ver internal/domain/access).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Name         string
	Role         string // Management, Sales, Warehouse, Procurement, Finance, Logistics
	Department   string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
