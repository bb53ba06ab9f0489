package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/events"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TutorApplicationService struct {
	repo   TutorApplicationStore
	users  UserStore
	events EventPublisher
	now    func() time.Time
}

func NewTutorApplicationService(repo TutorApplicationStore, users UserStore, pub EventPublisher) *TutorApplicationService {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &TutorApplicationService{repo: repo, users: users, events: pub, now: time.Now}
}

// Apply crea la solicitud (user) y pasa al usuario a pendingTutor.
func (s *TutorApplicationService) Apply(
	ctx context.Context,
	userID primitive.ObjectID,
	req *models.TutorApplicationRequest,
) (*models.TutorApplication, error) {

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	if u.UserType != models.UserTypeTrainee && u.UserType != models.UserTypePendingTutor {
		return nil, invalid("only trainees can apply to become tutors")
	}

	open, err := s.repo.FindPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrConflict
	}

	now := s.now().UTC()
	app := &models.TutorApplication{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Status:     models.TutorApplicationPending,
		Motivation: strings.TrimSpace(req.Motivation),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	// el índice único parcial cubre dos Apply simultáneos
	if err := s.repo.Insert(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if u.UserType != models.UserTypePendingTutor {
		if err := s.users.UpdateByID(ctx, userID, map[string]any{
			"userType":  models.UserTypePendingTutor,
			"updatedAt": now,
		}); err != nil {
			return app, err
		}
	}
	return app, nil
}

func (s *TutorApplicationService) ListMine(
	ctx context.Context,
	userID primitive.ObjectID,
	status string,
	limit, offset int,
) ([]models.TutorApplication, error) {

	return s.repo.FindByUser(ctx, userID, status, limit, offset)
}

func (s *TutorApplicationService) ListAll(
	ctx context.Context,
	status string,
	limit, offset int,
) ([]models.TutorApplication, error) {

	return s.repo.FindAll(ctx, status, limit, offset)
}

// Approve: la solicitud pasa a approved y el usuario a trainer.
func (s *TutorApplicationService) Approve(
	ctx context.Context,
	adminID, id primitive.ObjectID,
) (*models.TutorApplication, error) {

	return s.review(ctx, adminID, id, models.TutorApplicationApproved, "", models.UserTypeTrainer, events.TutorApproved)
}

// Reject: la solicitud pasa a rejected y el usuario vuelve a trainee.
func (s *TutorApplicationService) Reject(
	ctx context.Context,
	adminID, id primitive.ObjectID,
	reason string,
) (*models.TutorApplication, error) {

	return s.review(ctx, adminID, id, models.TutorApplicationRejected, strings.TrimSpace(reason), models.UserTypeTrainee, events.TutorRejected)
}

// review devuelve la solicitud sin cambios + ErrNotPending si ya fue revisada.
func (s *TutorApplicationService) review(
	ctx context.Context,
	adminID, id primitive.ObjectID,
	status, reason, userType, eventKey string,
) (*models.TutorApplication, error) {

	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}
	if app.Status != models.TutorApplicationPending {
		return app, ErrNotPending
	}

	prev := *app
	now := s.now().UTC()
	app.Status = status
	app.Reason = reason
	app.ReviewedBy = &adminID
	app.UpdatedAt = now

	ok, err := s.repo.UpdateIfPending(ctx, app)
	if err != nil {
		return nil, err
	}
	if !ok {
		// otro admin la revisó entre el find y el update
		current, err := s.repo.FindByID(ctx, id)
		if err != nil || current == nil {
			return &prev, ErrNotPending
		}
		return current, ErrNotPending
	}

	if err := s.users.UpdateByID(ctx, app.UserID, map[string]any{
		"userType":  userType,
		"updatedAt": now,
	}); err != nil {
		log.Printf("[tutors] no se pudo actualizar userType de %s: %v", app.UserID.Hex(), err)
		return app, err
	}

	publish(ctx, s.events, eventKey, map[string]any{
		"applicationId": app.ID.Hex(),
		"userId":        app.UserID.Hex(),
	})
	return app, nil
}
