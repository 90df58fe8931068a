package adoptions

import "time"

// StateCompleted es el estado con el que se inserta toda adopción.
// En este diseño las adopciones no se editan ni se borran.
const StateCompleted = "Completada"

type Adoption struct {
	ID             int64     `json:"id,omitempty"`
	AnimalID       int64     `json:"animal_id"`
	AdopterName    string    `json:"adoptante_nombre"`
	AdopterPhone   string    `json:"adoptante_telefono"`
	AdopterEmail   string    `json:"adoptante_email"`
	AdoptedAt      time.Time `json:"fecha_adopcion"`
	RegisteredByID int64     `json:"usuario_registro_id"`
	State          string    `json:"estado"`
}

// Record es una adopción con el nombre del animal resuelto, para listados.
type Record struct {
	Adoption
	AnimalName string `json:"animal_nombre"`
}
