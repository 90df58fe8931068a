package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-shelter/internal/domain/users"
	"animal-shelter/internal/platform/logger"
)

var ErrForbidden = errors.New("forbidden")

// DefaultListLimit es cuántas actividades recientes trae el listado.
const DefaultListLimit = 100

// Recorder apendea actividades en nombre del usuario de la sesión.
// Nunca propaga errores: un fallo del log de actividades no debe bloquear
// ni revertir la mutación que documenta.
type Recorder struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewRecorder(repo Repository, log logger.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Record es no-op si no hay usuario (sesión inactiva).
func (r *Recorder) Record(ctx context.Context, userID int64, username, action, details string) {
	if userID <= 0 || strings.TrimSpace(username) == "" {
		return
	}

	a := Activity{
		UserID:    userID,
		Username:  username,
		Action:    action,
		Details:   details,
		Timestamp: r.now(),
		IPAddress: "N/A",
	}

	if err := r.repo.Create(ctx, a); err != nil {
		r.log.Warn("activity record failed", map[string]any{
			"accion": action,
			"error":  err.Error(),
		})
	}
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List devuelve las últimas actividades; solo para administradores.
func (s *Service) List(ctx context.Context, actor users.User) ([]Activity, error) {
	if !users.CanPerform(actor.Role, users.ActionViewActivity) {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx, DefaultListLimit)
}
