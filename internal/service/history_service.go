package service

import (
	"context"
	"log"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/events"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryService corrige intentos de examen y mantiene el historial + progreso.
type HistoryService struct {
	exams   *ExamService
	history HistoryStore
	users   UserStore
	events  EventPublisher
	now     func() time.Time
}

func NewHistoryService(exams *ExamService, history HistoryStore, users UserStore, pub EventPublisher) *HistoryService {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &HistoryService{
		exams:   exams,
		history: history,
		users:   users,
		events:  pub,
		now:     time.Now,
	}
}

// SubmitAttempt corrige un examen de práctica, guarda el History y sube el
// progreso de la skill (nunca lo baja).
func (s *HistoryService) SubmitAttempt(
	ctx context.Context,
	userID primitive.ObjectID,
	kind models.ExamKind,
	examID primitive.ObjectID,
	answers []string,
) (*models.AttemptResult, error) {

	exam, err := s.exams.load(ctx, kind, examID)
	if err != nil {
		return nil, err
	}
	if len(answers) > len(exam.Questions) {
		return nil, invalid("more answers than questions")
	}

	score, maxScore, per := ScoreExam(exam, answers)
	entry := models.HistoryEntry{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		TestModelName: kind.ModelName(),
		TestID:        exam.ID,
		Skill:         string(kind),
		Score:         score,
		MaxScore:      maxScore,
		Percent:       percent(score, maxScore),
		CreatedAt:     s.now().UTC(),
	}

	if err := s.history.Insert(ctx, &entry); err != nil {
		return nil, err
	}
	if err := s.users.RaiseProgress(ctx, userID, entry.Skill, entry.Percent); err != nil {
		log.Printf("[history] progreso de %s no actualizado: %v", userID.Hex(), err)
	}

	publish(ctx, s.events, events.ExamCompleted, map[string]any{
		"userId":        userID.Hex(),
		"testModelName": entry.TestModelName,
		"testId":        entry.TestID.Hex(),
		"percent":       entry.Percent,
	})

	return &models.AttemptResult{History: entry, PerAnswer: per}, nil
}

func (s *HistoryService) List(
	ctx context.Context,
	userID primitive.ObjectID,
	testModelName string,
	limit, offset int,
) ([]models.HistoryEntry, error) {

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.history.FindByUser(ctx, userID, testModelName, limit, offset)
}
