package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// UserSettings preferencias de la pantalla de configuración.
type UserSettings struct {
	Currency      string // ISO 4217
	Notifications bool
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Business     string
	Role         string
	Settings     UserSettings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
