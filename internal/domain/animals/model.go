package animals

import "time"

// Estados del animal.
// @Enum Disponible, En tratamiento, Adoptado
const (
	StateAvailable   = "Disponible"
	StateInTreatment = "En tratamiento"
	StateAdopted     = "Adoptado"
)

// Species es una especie del catálogo (solo lectura en esta app).
type Species struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// Breed pertenece a una especie.
type Breed struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"nombre"`
	SpeciesID int64  `json:"especie_id"`
}

// HealthStatus es un estado de salud del catálogo.
type HealthStatus struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"nombre"`
}

// Animal es un animal registrado en el refugio.
// edad, genero y vacunado son texto libre, tal como los guarda el servicio
// original (vienen de inputs de formulario).
type Animal struct {
	ID             int64      `json:"id,omitempty"`
	Name           string     `json:"nombre"`
	SpeciesID      int64      `json:"especie_id"`
	BreedID        int64      `json:"raza_id"`
	Age            string     `json:"edad"`
	Gender         string     `json:"genero"`
	Color          string     `json:"color"`
	State          string     `json:"estado"`
	HealthStatusID int64      `json:"estado_salud_id"`
	Description    string     `json:"descripcion"`
	Vaccinated     string     `json:"vacunado"`
	CreatorUserID  int64      `json:"usuario_creador_id"`
	IntakeAt       time.Time  `json:"fecha_ingreso"`
	UpdatedAt      *time.Time `json:"fecha_actualizacion,omitempty"`
}

// Catalog es el snapshot completo de los catálogos de referencia,
// reemplazado entero en cada carga.
type Catalog struct {
	Species  []Species
	Breeds   []Breed
	Statuses []HealthStatus
}

// SpeciesName resuelve el nombre de una especie por id.
func (c Catalog) SpeciesName(id int64) string {
	for _, s := range c.Species {
		if s.ID == id {
			return s.Name
		}
	}
	return "Desconocida"
}

func (c Catalog) BreedName(id int64) string {
	for _, b := range c.Breeds {
		if b.ID == id {
			return b.Name
		}
	}
	return "Desconocida"
}

func (c Catalog) HealthStatusName(id int64) string {
	for _, h := range c.Statuses {
		if h.ID == id {
			return h.Name
		}
	}
	return "No especificado"
}

// BreedsBySpecies filtra las razas de una especie, sin mutar el catálogo.
func (c Catalog) BreedsBySpecies(speciesID int64) []Breed {
	out := make([]Breed, 0)
	for _, b := range c.Breeds {
		if b.SpeciesID == speciesID {
			out = append(out, b)
		}
	}
	return out
}
