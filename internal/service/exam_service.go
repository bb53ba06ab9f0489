package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/cache"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	examCacheTTL     = 10 * time.Minute
	examListCacheTTL = 5 * time.Minute
)

// ExamService expone los bancos de preguntas (solo lectura para alumnos).
type ExamService struct {
	stores map[models.ExamKind]ExamStore
}

func NewExamService(stores map[models.ExamKind]ExamStore) *ExamService {
	return &ExamService{stores: stores}
}

func (s *ExamService) store(kind models.ExamKind) (ExamStore, error) {
	st, ok := s.stores[kind]
	if !ok || !kind.Valid() {
		return nil, invalid(fmt.Sprintf("unknown exam kind %q", kind))
	}
	return st, nil
}

func examKey(kind models.ExamKind, id primitive.ObjectID) string {
	return cache.Key("exam", kind, id.Hex())
}

// List devuelve exámenes sin respuestas.
func (s *ExamService) List(ctx context.Context, kind models.ExamKind, level string, limit, offset int) ([]models.Exam, error) {
	st, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	key := cache.Key("exams", kind, level, limit, offset)
	var cached []models.Exam
	if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	exams, err := st.List(ctx, level, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]models.Exam, 0, len(exams))
	for _, e := range exams {
		out = append(out, e.Public())
	}

	if err := cache.SetJSON(ctx, key, out, examListCacheTTL); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}
	return out, nil
}

// Get devuelve la vista pública del examen.
func (s *ExamService) Get(ctx context.Context, kind models.ExamKind, id primitive.ObjectID) (*models.Exam, error) {
	e, err := s.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	pub := e.Public()
	return &pub, nil
}

// load trae el examen completo (con respuestas) para corregir.
func (s *ExamService) load(ctx context.Context, kind models.ExamKind, id primitive.ObjectID) (*models.Exam, error) {
	st, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	key := examKey(kind, id)
	var cached models.Exam
	if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return &cached, nil
	}

	e, err := st.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	e.Kind = kind

	if err := cache.SetJSON(ctx, key, e, examCacheTTL); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}
	return e, nil
}

// Create carga un examen nuevo al banco (admin).
func (s *ExamService) Create(ctx context.Context, kind models.ExamKind, e *models.Exam) (*models.Exam, error) {
	st, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return nil, invalid("title is required")
	}
	if len(e.Questions) == 0 {
		return nil, invalid("an exam needs at least one question")
	}
	if e.Level != "" && !models.ValidLanguageLevel(e.Level) {
		return nil, invalid("level must be one of A1..C2")
	}
	for i, q := range e.Questions {
		if strings.TrimSpace(q.Prompt) == "" && q.ImageURL == "" {
			return nil, invalid(fmt.Sprintf("question %d has no prompt", i))
		}
		if q.Points < 0 {
			return nil, invalid(fmt.Sprintf("question %d has negative points", i))
		}
		if kind.Objective() && q.Answer == "" {
			return nil, invalid(fmt.Sprintf("question %d needs an answer", i))
		}
	}

	e.ID = primitive.NewObjectID()
	e.Kind = kind
	e.CreatedAt = time.Now().UTC()
	if err := st.Insert(ctx, e); err != nil {
		return nil, err
	}
	// los listados cacheados de este tipo ya no sirven
	if err := cache.DeletePrefix(ctx, cache.Key("exams", kind)+":"); err != nil {
		log.Printf("[cache] invalidando listados %s: %v", kind, err)
	}
	return e, nil
}
