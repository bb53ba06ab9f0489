package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/metrics"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrNotPending         = errors.New("request is not pending")
	ErrStorageDisabled    = errors.New("object storage is not configured")
)

// domainErrors son los errores que se le pueden mostrar al cliente tal cual.
var domainErrors = []error{
	ErrNotFound, ErrForbidden, ErrConflict, ErrInvalidInput, ErrInvalidCredentials,
	ErrEmailTaken, ErrUsernameTaken, ErrNotPending, ErrStorageDisabled,
	models.ErrInvalidTransition, models.ErrNotParticipant, models.ErrOnlyOpponent,
	models.ErrStaleAnswer, models.ErrNegativeScore, models.ErrPlayerFinished,
	models.ErrMatchExpired, models.ErrMatchInProgress,
}

// IsDomainError indica si err viene de una regla de negocio y no de la
// infraestructura (Mongo, Redis, MinIO...).
func IsDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

const maxConflictRetries = 3

// retryOnConflict reejecuta fn (read-modify-write) mientras el repo reporte
// ErrVersionConflict, hasta maxConflictRetries veces.
func retryOnConflict(entity string, fn func() error) error {
	for i := 0; i < maxConflictRetries; i++ {
		err := fn()
		if !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
		metrics.VersionConflicts.WithLabelValues(entity).Inc()
	}
	return fmt.Errorf("%w: %s modified concurrently, retry", ErrConflict, entity)
}

// publish no corta el flujo: el estado ya está persistido.
func publish(ctx context.Context, events EventPublisher, key string, payload any) {
	if err := events.Publish(ctx, key, payload); err != nil {
		log.Printf("[events] %s: %v", key, err)
	}
}
