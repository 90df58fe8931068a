package router

import (
	"context"
	"database/sql"
	"net/http"

	mem "animal-shelter/internal/adapters/storage/memory"
	pg "animal-shelter/internal/adapters/storage/postgres"
	sb "animal-shelter/internal/adapters/storage/supabase"
	"animal-shelter/internal/config"
	"animal-shelter/internal/domain/activity"
	"animal-shelter/internal/domain/adoptions"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/users"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"
	rest "animal-shelter/internal/platform/supabase"
	"animal-shelter/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	Config *config.Settings
	Logger logger.Logger
	Store  *session.Store

	// Opcional: si viene, usa Postgres directo (tests/handoff).
	DB *sql.DB
}

// repos agrupa un backend de almacenamiento completo.
type repos struct {
	users     users.Repository
	sessions  users.SessionRepository
	animals   animals.Repository
	catalog   animals.CatalogRepository
	adoptions adoptions.Repository
	activity  activity.Repository
}

// NewRouter arma el backend de almacenamiento y monta todas las rutas.
// Prioridad de backends: Supabase (si está configurado) > Postgres (DSN
// o DB explícita) > in-memory (dev).
func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Settings{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = session.NewStore("")
	}

	rp := buildRepos(cfg, log, opts.DB)

	// Recorder de actividad compartido por todos los módulos
	rec := activity.NewRecorder(rp.activity, log)

	usersSvc := users.NewService(rp.users, rp.sessions, store, rec, log)
	animalsSvc := animals.NewService(rp.animals, rp.catalog, rec, log)
	adoptionsSvc := adoptions.NewService(rp.adoptions, animalsSvc, rec, log)
	activitySvc := activity.NewService(rp.activity)

	// Bootstrap: garantiza el admin reservado; si el storage remoto no
	// responde todavía, el server igual levanta.
	if err := usersSvc.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Warn("default admin bootstrap failed", map[string]any{"error": err.Error()})
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.SessionContext(store))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	animals.RegisterRoutes(r, animalsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	activity.RegisterRoutes(r, activitySvc)

	return r
}

func buildRepos(cfg *config.Settings, log logger.Logger, db *sql.DB) repos {
	if cfg.Supabase.URL != "" && cfg.Supabase.Key != "" {
		client, err := rest.New(rest.Config{
			URL:     cfg.Supabase.URL,
			Key:     cfg.Supabase.Key,
			Timeout: cfg.Supabase.Timeout,
		})
		if err == nil {
			log.Info("storage backend: supabase", nil)
			return repos{
				users:     sb.NewUsersRepo(client),
				sessions:  sb.NewSessionsRepo(client),
				animals:   sb.NewAnimalsRepo(client),
				catalog:   sb.NewCatalogRepo(client),
				adoptions: sb.NewAdoptionsRepo(client),
				activity:  sb.NewActivityRepo(client),
			}
		}
		log.Warn("supabase config invalid, falling back", map[string]any{"error": err.Error()})
	}

	// Si no te pasan DB explícita, intenta por DSN (para dev/handoff)
	if db == nil && cfg.Postgres.DSN != "" {
		opened, err := pg.Open(cfg.Postgres.DSN)
		if err == nil {
			db = opened
		} else {
			log.Warn("postgres open failed, falling back", map[string]any{"error": err.Error()})
		}
	}

	if db != nil {
		log.Info("storage backend: postgres", nil)
		return repos{
			users:     pg.NewUsersRepo(db),
			sessions:  pg.NewSessionsRepo(db),
			animals:   pg.NewAnimalsRepo(db),
			catalog:   pg.NewCatalogRepo(db),
			adoptions: pg.NewAdoptionsRepo(db),
			activity:  pg.NewActivityRepo(db),
		}
	}

	log.Info("storage backend: in-memory", nil)
	return repos{
		users:     mem.NewUsersRepo(),
		sessions:  mem.NewSessionsRepo(),
		animals:   mem.NewAnimalsRepo(),
		catalog:   mem.NewCatalogRepo(),
		adoptions: mem.NewAdoptionsRepo(),
		activity:  mem.NewActivityRepo(),
	}
}
