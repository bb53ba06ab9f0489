package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const transcriptURLTTL = 24 * time.Hour

type TranscriptService struct {
	users    UserStore
	history  HistoryStore
	archives TranscriptStore
	objects  ObjectStore
	now      func() time.Time
}

// NewTranscriptService: objects puede ser nil (MinIO no configurado); en ese
// caso Build funciona y Archive devuelve ErrStorageDisabled.
func NewTranscriptService(users UserStore, history HistoryStore, archives TranscriptStore, objects ObjectStore) *TranscriptService {
	return &TranscriptService{
		users:    users,
		history:  history,
		archives: archives,
		objects:  objects,
		now:      time.Now,
	}
}

// EstimateLevel mapea el promedio general (0-100) a un nivel CEFR.
func EstimateLevel(overall float64) string {
	switch {
	case overall < 20:
		return "A1"
	case overall < 35:
		return "A2"
	case overall < 50:
		return "B1"
	case overall < 65:
		return "B2"
	case overall < 80:
		return "C1"
	default:
		return "C2"
	}
}

// Build arma el transcript a partir de todo el historial del usuario.
func (s *TranscriptService) Build(ctx context.Context, userID primitive.ObjectID) (*models.Transcript, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	entries, err := s.history.AllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	type acc struct {
		attempts int
		best     float64
		sum      float64
	}
	bySkill := map[string]*acc{}
	var record models.MatchRecord
	var total float64
	var n int

	for _, h := range entries {
		if h.Outcome != "" {
			record.Played++
			switch h.Outcome {
			case models.OutcomeWin:
				record.Wins++
			case models.OutcomeDraw:
				record.Draws++
			case models.OutcomeLoss:
				record.Losses++
			}
		}

		a, ok := bySkill[h.Skill]
		if !ok {
			a = &acc{}
			bySkill[h.Skill] = a
		}
		a.attempts++
		a.sum += h.Percent
		if h.Percent > a.best {
			a.best = h.Percent
		}
		total += h.Percent
		n++
	}

	skills := make([]models.SkillSummary, 0, len(bySkill))
	for skill, a := range bySkill {
		skills = append(skills, models.SkillSummary{
			Skill:          skill,
			Attempts:       a.attempts,
			BestPercent:    round2(a.best),
			AveragePercent: round2(a.sum / float64(a.attempts)),
		})
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Skill < skills[j].Skill })

	var overall float64
	if n > 0 {
		overall = round2(total / float64(n))
	}

	return &models.Transcript{
		UserID:         u.ID,
		Username:       u.Username,
		LanguageLevel:  u.LanguageLevel,
		Skills:         skills,
		Matches:        record,
		OverallPercent: overall,
		EstimatedLevel: EstimateLevel(overall),
		GeneratedAt:    s.now().UTC(),
	}, nil
}

// Archive guarda el transcript como JSON en el bucket y devuelve el registro
// con una URL firmada.
func (s *TranscriptService) Archive(ctx context.Context, userID primitive.ObjectID) (*models.TranscriptArchive, error) {
	if s.objects == nil {
		return nil, ErrStorageDisabled
	}

	t, err := s.Build(ctx, userID)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s/%s.json", userID.Hex(), t.GeneratedAt.Format("20060102T150405Z"))
	if err := s.objects.Put(ctx, name, "application/json", data); err != nil {
		return nil, err
	}

	a := &models.TranscriptArchive{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		ObjectName: name,
		Size:       int64(len(data)),
		CreatedAt:  t.GeneratedAt,
	}
	if err := s.archives.Insert(ctx, a); err != nil {
		return nil, err
	}

	a.URL, err = s.objects.PresignedURL(ctx, name, transcriptURLTTL)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *TranscriptService) ListArchives(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.TranscriptArchive, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	out, err := s.archives.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if s.objects == nil {
		return out, nil
	}
	for i := range out {
		u, err := s.objects.PresignedURL(ctx, out[i].ObjectName, transcriptURLTTL)
		if err != nil {
			log.Printf("[transcripts] url de %s: %v", out[i].ObjectName, err)
			continue
		}
		out[i].URL = u
	}
	return out, nil
}
