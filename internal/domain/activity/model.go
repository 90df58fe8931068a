package activity

import "time"

// Activity es una entrada inmutable del log de auditoría; se apendea junto
// a cada mutación significativa y nunca se edita.
type Activity struct {
	ID        int64     `json:"id,omitempty"`
	UserID    int64     `json:"usuario_id"`
	Username  string    `json:"username"`
	Action    string    `json:"accion"`
	Details   string    `json:"detalles"`
	Timestamp time.Time `json:"fecha"`
	IPAddress string    `json:"ip_address"`
}
