package users

import "time"

// Role define los roles del sistema.
// @Enum administrador, usuario, invitado
type Role string

const (
	RoleAdmin Role = "administrador"
	RoleUser  Role = "usuario"
	RoleGuest Role = "invitado"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	default:
		return false
	}
}

// ReservedAdminUsername es el usuario semilla que el bootstrap garantiza
// y que queda protegido contra cambios de rol/estado.
const ReservedAdminUsername = "administrador"

// Credencial placeholder del bootstrap. NO es un control de seguridad:
// sirve solo para que el primer arranque tenga un admin con el que entrar.
const (
	DefaultAdminPassword = "admin123"
	DefaultAdminEmail    = "admin@refugio.local"
)

// User es una cuenta del sistema.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`

	// Password se guarda y compara en texto plano, heredado del diseño
	// original. No apto para producción.
	Password string `json:"password,omitempty"`

	Email        string    `json:"email"`
	Role         Role      `json:"rol"`
	Active       bool      `json:"activo"`
	RegisteredAt time.Time `json:"fecha_registro"`
}

// Session es el registro de inicio de sesión que se apendea en cada login.
type Session struct {
	ID        int64     `json:"id,omitempty"`
	UserID    int64     `json:"usuario_id"`
	Username  string    `json:"username"`
	StartedAt time.Time `json:"fecha_inicio"`
	IPAddress string    `json:"ip_address"`
}
