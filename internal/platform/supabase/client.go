package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	// restPrefix es el prefijo del API de tablas de Supabase (PostgREST).
	restPrefix = "/rest/v1"
)

// Config del cliente de datos.
// URL y Key normalmente vienen de config/env en quien lo instancia.
type Config struct {
	URL string // URL base del proyecto, ej: https://xyz.supabase.co
	Key string // anon/service key; va como apikey y como Bearer

	Timeout time.Duration
}

// Client habla con el servicio de tablas remoto usando la convención
// de query params de PostgREST (col=eq.v, order=col.dir, limit=n).
type Client struct {
	HTTP    *http.Client
	restURL string
	key     string
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return nil, errors.New("supabase: empty url")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("supabase: invalid url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		restURL: base + restPrefix,
		key:     strings.TrimSpace(cfg.Key),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.restURL != "" && c.key != ""
}

// RequestError representa una respuesta no-2xx del servicio remoto.
// El body se conserva como texto plano para mostrarlo al usuario.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("supabase: status=%d", e.Status)
	}
	return fmt.Sprintf("supabase: status=%d body=%s", e.Status, e.Body)
}

// SelectOptions arma la query de un Select.
// Los filtros Eq se combinan en AND; Order es "campo.direccion" con
// direccion asc (default) o desc.
type SelectOptions struct {
	Eq    map[string]string
	Order string
	Limit int
}

// Select trae las filas de una tabla que cumplen todos los filtros.
// out debe ser puntero a slice del tipo de fila esperado.
func (c *Client) Select(ctx context.Context, table string, opts SelectOptions, out any) error {
	endpoint := table

	params := url.Values{}
	// claves en orden estable para que la URL sea determinista
	keys := make([]string, 0, len(opts.Eq))
	for k := range opts.Eq {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		params.Set(k, "eq."+opts.Eq[k])
	}
	if strings.TrimSpace(opts.Order) != "" {
		params.Set("order", strings.TrimSpace(opts.Order))
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	if enc := params.Encode(); enc != "" {
		endpoint += "?" + enc
	}
	return c.request(ctx, http.MethodGet, endpoint, nil, out)
}

// Insert agrega una fila (o varias, si record ya es slice) y devuelve en out
// las filas almacenadas con sus ids asignados por el servidor.
// No hace chequeos de unicidad: eso es responsabilidad del caller.
func (c *Client) Insert(ctx context.Context, table string, record any, out any) error {
	body := record
	if rv := reflect.ValueOf(record); rv.Kind() != reflect.Slice {
		// PostgREST espera array JSON en el POST
		body = []any{record}
	}
	return c.request(ctx, http.MethodPost, table, body, out)
}

// Update aplica un PATCH parcial a la fila cuyo id coincide.
func (c *Client) Update(ctx context.Context, table string, id int64, partial any, out any) error {
	return c.request(ctx, http.MethodPatch, rowEndpoint(table, id), partial, out)
}

// Delete borra la fila cuyo id coincide. Repetirlo sobre un id ya borrado
// produce la misma clase de fallo, nunca un crash.
func (c *Client) Delete(ctx context.Context, table string, id int64) error {
	return c.request(ctx, http.MethodDelete, rowEndpoint(table, id), nil, nil)
}

func rowEndpoint(table string, id int64) string {
	return fmt.Sprintf("%s?id=eq.%d", table, id)
}

// request es la primitiva compartida por los cuatro verbos:
// headers fijos de autenticación, bodies JSON, y body vacío = resultado
// nulo (distinto de un error).
func (c *Client) request(ctx context.Context, method, endpoint string, in, out any) error {
	if !c.IsConfigured() {
		return errors.New("supabase: client not configured")
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("supabase: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.restURL+"/"+endpoint, body)
	if err != nil {
		return fmt.Errorf("supabase: new request: %w", err)
	}

	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "return=representation")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := readAtMost(resp.Body, 1<<20) // 1MB max

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("supabase: unmarshal json: %w", err)
	}
	return nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = 1 << 20
	}
	return io.ReadAll(io.LimitReader(r, max))
}
