package users

// Action identifica una operación mutadora o vista restringida.
type Action string

const (
	ActionCreateAnimal Action = "animal:create"
	ActionEditAnimal   Action = "animal:edit"
	ActionDeleteAnimal Action = "animal:delete"
	ActionAdoptAnimal  Action = "animal:adopt"
	ActionManageUsers  Action = "users:manage"
	ActionViewActivity Action = "activity:view"
)

// capabilities concentra qué puede hacer cada rol, en lugar de
// comparaciones de rol repartidas por cada operación.
var capabilities = map[Role]map[Action]struct{}{
	RoleAdmin: {
		ActionCreateAnimal: {},
		ActionEditAnimal:   {},
		ActionDeleteAnimal: {},
		ActionAdoptAnimal:  {},
		ActionManageUsers:  {},
		ActionViewActivity: {},
	},
	RoleUser: {
		ActionCreateAnimal: {},
		ActionEditAnimal:   {},
		ActionAdoptAnimal:  {},
	},
	// el invitado solo mira, pero sí puede registrar adopciones
	// (el original muestra el botón de adoptar a cualquier sesión)
	RoleGuest: {
		ActionAdoptAnimal: {},
	},
}

// CanPerform valida si un rol puede ejecutar una acción.
func CanPerform(role Role, action Action) bool {
	acts, ok := capabilities[role]
	if !ok {
		return false
	}
	_, ok = acts[action]
	return ok
}
