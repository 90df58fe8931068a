package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"animal-shelter/internal/config"
	"animal-shelter/internal/domain/users"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/router"
	"animal-shelter/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Config: &config.Settings{},
		Logger: logger.Nop(),
		Store:  store,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_ShelterFlow(t *testing.T) {
	ts := newTestServer(t)

	// 1) Health sin sesión
	{
		st, body := doReq(t, ts.URL, "GET", "/health", nil)
		if st != http.StatusOK || string(body) != "ok" {
			t.Fatalf("health: got %d body=%s", st, string(body))
		}
	}

	// 2) Sin sesión, los listados exigen autenticación
	{
		st, _ := doReq(t, ts.URL, "GET", "/animales", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without session, got %d", st)
		}
	}

	// 3) El bootstrap dejó el admin reservado listo para entrar
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/login", map[string]any{
			"username": users.ReservedAdminUsername,
			"password": users.DefaultAdminPassword,
		})
		if st != http.StatusOK {
			t.Fatalf("admin login: got %d body=%s", st, string(body))
		}
		var u struct {
			Role string `json:"rol"`
		}
		_ = json.Unmarshal(body, &u)
		if u.Role != string(users.RoleAdmin) {
			t.Fatalf("expected administrador role, got %q", u.Role)
		}
	}

	// 4) Crear animal (catálogo semilla: especie 1, raza 1, estado salud 1)
	var animalID int64
	{
		st, body := doReq(t, ts.URL, "POST", "/animales", map[string]any{
			"nombre":          "Rocky",
			"especie_id":      1,
			"raza_id":         1,
			"edad":            "2 años",
			"genero":          "Macho",
			"color":           "Marrón",
			"estado_salud_id": 1,
			"descripcion":     "Juguetón",
			"vacunado":        "Sí",
		})
		if st != http.StatusCreated {
			t.Fatalf("create animal: got %d body=%s", st, string(body))
		}
		var resp struct {
			ID          int64  `json:"id"`
			State       string `json:"estado"`
			SpeciesName string `json:"especie_nombre"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == 0 {
			t.Fatalf("create animal: missing id body=%s", string(body))
		}
		if resp.State != "Disponible" {
			t.Fatalf("expected default Disponible, got %q", resp.State)
		}
		if resp.SpeciesName != "Perro" {
			t.Fatalf("expected resolved species Perro, got %q", resp.SpeciesName)
		}
		animalID = resp.ID
	}

	// 5) El filtro por estado lo encuentra
	{
		st, body := doReq(t, ts.URL, "GET", "/animales?estado=Disponible&q=rocky", nil)
		if st != http.StatusOK {
			t.Fatalf("list animals: got %d body=%s", st, string(body))
		}
		var list []struct {
			ID int64 `json:"id"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 || list[0].ID != animalID {
			t.Fatalf("expected filtered hit for %d, got %s", animalID, string(body))
		}
	}

	// 6) Adopción sin nombre de adoptante => 400 y nada cambia
	{
		st, _ := doReq(t, ts.URL, "POST", "/animales/"+itoa(animalID)+"/adoptar", map[string]any{
			"adoptante_nombre": "   ",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for blank adopter, got %d", st)
		}
	}

	// 7) Adopción completa
	{
		st, body := doReq(t, ts.URL, "POST", "/animales/"+itoa(animalID)+"/adoptar", map[string]any{
			"adoptante_nombre":   "Ana Pérez",
			"adoptante_telefono": "555-1234",
			"adoptante_email":    "ana@test.local",
		})
		if st != http.StatusCreated {
			t.Fatalf("adopt: got %d body=%s", st, string(body))
		}
		var resp struct {
			State string `json:"estado"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.State != "Completada" {
			t.Fatalf("expected Completada, got %q", resp.State)
		}
	}

	// 8) El animal quedó Adoptado
	{
		st, body := doReq(t, ts.URL, "GET", "/animales/"+itoa(animalID), nil)
		if st != http.StatusOK {
			t.Fatalf("get animal: got %d body=%s", st, string(body))
		}
		var resp struct {
			State string `json:"estado"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.State != "Adoptado" {
			t.Fatalf("expected Adoptado, got %q", resp.State)
		}
	}

	// 9) El listado de adopciones resuelve el nombre del animal
	{
		st, body := doReq(t, ts.URL, "GET", "/adopciones", nil)
		if st != http.StatusOK {
			t.Fatalf("list adoptions: got %d body=%s", st, string(body))
		}
		var list []struct {
			AnimalName  string `json:"animal_nombre"`
			AdopterName string `json:"adoptante_nombre"`
		}
		_ = json.Unmarshal(body, &list)
		if len(list) != 1 || list[0].AnimalName != "Rocky" || list[0].AdopterName != "Ana Pérez" {
			t.Fatalf("unexpected adoptions: %s", string(body))
		}
	}

	// 10) La bitácora registró la secuencia
	{
		st, body := doReq(t, ts.URL, "GET", "/actividades", nil)
		if st != http.StatusOK {
			t.Fatalf("list activity: got %d body=%s", st, string(body))
		}
		var list []struct {
			Action string `json:"accion"`
		}
		_ = json.Unmarshal(body, &list)
		seen := map[string]bool{}
		for _, a := range list {
			seen[a.Action] = true
		}
		for _, want := range []string{"Inicio de sesión", "Crear animal", "Adopción registrada"} {
			if !seen[want] {
				t.Fatalf("expected activity %q in %s", want, string(body))
			}
		}
	}

	// 11) Alta de un segundo usuario: ya no es el primero, rol usuario
	var mariaID int64
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/register", map[string]any{
			"username": "maria",
			"email":    "maria@test.local",
			"password": "clave123",
		})
		if st != http.StatusCreated {
			t.Fatalf("register: got %d body=%s", st, string(body))
		}
		var resp struct {
			ID   int64  `json:"id"`
			Role string `json:"rol"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Role != string(users.RoleUser) {
			t.Fatalf("expected rol usuario, got %q", resp.Role)
		}
		mariaID = resp.ID
	}

	// 12) El admin cambia el rol de maria; el reservado queda protegido
	{
		st, body := doReq(t, ts.URL, "PATCH", "/usuarios/"+itoa(mariaID)+"/rol", map[string]any{
			"rol": "administrador",
		})
		if st != http.StatusOK {
			t.Fatalf("change role: got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/usuarios/1/rol", map[string]any{
			"rol": "usuario",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for reserved admin, got %d", st)
		}
	}

	// 13) Logout corta la sesión
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/logout", nil)
		if st != http.StatusNoContent {
			t.Fatalf("logout: got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/animales", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", st)
		}
	}
}

func TestHTTP_GuestCannotMutateButCanAdopt(t *testing.T) {
	ts := newTestServer(t)

	// admin prepara un animal y un invitado
	login(t, ts.URL, users.ReservedAdminUsername, users.DefaultAdminPassword)

	var animalID int64
	{
		st, body := doReq(t, ts.URL, "POST", "/animales", map[string]any{
			"nombre":          "Luna",
			"especie_id":      2,
			"raza_id":         2,
			"edad":            "1 año",
			"estado_salud_id": 1,
		})
		if st != http.StatusCreated {
			t.Fatalf("create animal: got %d body=%s", st, string(body))
		}
		var resp struct {
			ID int64 `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		animalID = resp.ID
	}

	var guestID int64
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/register", map[string]any{
			"username": "visita",
			"email":    "visita@test.local",
			"password": "clave123",
		})
		if st != http.StatusCreated {
			t.Fatalf("register guest: got %d body=%s", st, string(body))
		}
		var resp struct {
			ID int64 `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		guestID = resp.ID
	}
	{
		st, body := doReq(t, ts.URL, "PATCH", "/usuarios/"+itoa(guestID)+"/rol", map[string]any{
			"rol": "invitado",
		})
		if st != http.StatusOK {
			t.Fatalf("demote to guest: got %d body=%s", st, string(body))
		}
	}

	login(t, ts.URL, "visita", "clave123")

	// el invitado no crea ni borra
	{
		st, _ := doReq(t, ts.URL, "POST", "/animales", map[string]any{
			"nombre":          "Max",
			"especie_id":      1,
			"raza_id":         1,
			"edad":            "3 años",
			"estado_salud_id": 1,
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 guest create, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/animales/"+itoa(animalID), nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 guest delete, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/actividades", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 guest activity view, got %d", st)
		}
	}

	// pero sí registra adopciones
	{
		st, body := doReq(t, ts.URL, "POST", "/animales/"+itoa(animalID)+"/adoptar", map[string]any{
			"adoptante_nombre": "Beto",
		})
		if st != http.StatusCreated {
			t.Fatalf("guest adopt: got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_Login_SpanishErrorMessages(t *testing.T) {
	ts := newTestServer(t)

	{
		st, body := doReq(t, ts.URL, "POST", "/auth/login", map[string]any{
			"username": "nadie",
			"password": "loquesea",
		})
		if st != http.StatusUnauthorized || string(bytes.TrimSpace(body)) != "Usuario no encontrado" {
			t.Fatalf("unknown user: got %d body=%q", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/login", map[string]any{
			"username": users.ReservedAdminUsername,
			"password": "incorrecta",
		})
		if st != http.StatusUnauthorized || string(bytes.TrimSpace(body)) != "Contraseña incorrecta" {
			t.Fatalf("wrong password: got %d body=%q", st, string(body))
		}
	}
}

func login(t *testing.T, baseURL, username, password string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/login", map[string]any{
		"username": username,
		"password": password,
	})
	if st != http.StatusOK {
		t.Fatalf("login %s: got %d body=%s", username, st, string(body))
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
