package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperadmin = "superadmin" // gestión de usuarios + todo lo demás
	RoleAdmin      = "admin"      // edición del catálogo de artículos
	RoleOperario   = "operario"   // registrar movimientos y consultar
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Username     string // nombre visible, denormalizado en las entradas del ledger
	Role         string // superadmin, admin, operario
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
