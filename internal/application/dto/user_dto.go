package dto

import "time"

// RegisterRequest entrada para crear cuenta.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Business string `json:"business"`
	Role     string `json:"-"` // solo lo fija el seed
}

// LoginRequest entrada para login: usuario o email.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SettingsDTO preferencias del usuario.
type SettingsDTO struct {
	Currency      string `json:"currency"`
	Notifications bool   `json:"notifications"`
}

// UpdateSettingsRequest campos nil no cambian.
type UpdateSettingsRequest struct {
	Currency      *string `json:"currency"`
	Notifications *bool   `json:"notifications"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Business  string      `json:"business"`
	Role      string      `json:"role"`
	Settings  SettingsDTO `json:"settings"`
	CreatedAt time.Time   `json:"created_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
