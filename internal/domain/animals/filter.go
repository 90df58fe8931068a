package animals

import "strings"

// FilterOptions combina filtros en AND. Los vacíos no filtran.
type FilterOptions struct {
	// Text matchea por substring, sin distinguir mayúsculas,
	// contra nombre O descripción.
	Text string

	// Species compara contra el nombre resuelto de la especie.
	Species string

	// State compara igualdad exacta de estado.
	State string
}

// Filter aplica los filtros sobre el snapshot y devuelve una secuencia
// nueva; nunca muta la entrada. Es pura y síncrona: el snapshot ya está
// completo en memoria.
func Filter(snapshot []Animal, cat Catalog, opts FilterOptions) []Animal {
	out := make([]Animal, 0, len(snapshot))

	text := strings.ToLower(strings.TrimSpace(opts.Text))

	for _, a := range snapshot {
		if text != "" {
			name := strings.ToLower(a.Name)
			desc := strings.ToLower(a.Description)
			if !strings.Contains(name, text) && !strings.Contains(desc, text) {
				continue
			}
		}
		if opts.Species != "" && cat.SpeciesName(a.SpeciesID) != opts.Species {
			continue
		}
		if opts.State != "" && a.State != opts.State {
			continue
		}
		out = append(out, a)
	}

	return out
}
