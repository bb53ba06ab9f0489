package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/events"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/metrics"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// puntos de leaderboard por resultado
const (
	winPoints  = 3
	drawPoints = 1
)

type MatchSettings struct {
	Duration  time.Duration
	InviteTTL time.Duration
}

// MatchService maneja los duelos H2H (writing / image).
type MatchService struct {
	matches     map[models.MatchKind]MatchStore
	exams       *ExamService
	users       UserStore
	history     HistoryStore
	leaderboard LeaderboardStore
	events      EventPublisher
	notifier    Notifier
	settings    MatchSettings
	now         func() time.Time
}

func NewMatchService(
	matches map[models.MatchKind]MatchStore,
	exams *ExamService,
	users UserStore,
	history HistoryStore,
	leaderboard LeaderboardStore,
	pub EventPublisher,
	notifier Notifier,
	settings MatchSettings,
) *MatchService {
	if pub == nil {
		pub = nopPublisher{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if settings.Duration <= 0 {
		settings.Duration = 10 * time.Minute
	}
	if settings.InviteTTL <= 0 {
		settings.InviteTTL = 24 * time.Hour
	}
	return &MatchService{
		matches:     matches,
		exams:       exams,
		users:       users,
		history:     history,
		leaderboard: leaderboard,
		events:      pub,
		notifier:    notifier,
		settings:    settings,
		now:         time.Now,
	}
}

func (s *MatchService) store(kind models.MatchKind) (MatchStore, error) {
	st, ok := s.matches[kind]
	if !ok || !kind.Valid() {
		return nil, invalid(fmt.Sprintf("unknown match kind %q", kind))
	}
	return st, nil
}

// Create invita a un oponente. El match queda pending hasta que acepte.
func (s *MatchService) Create(
	ctx context.Context,
	kind models.MatchKind,
	initiatorID, opponentID, examID primitive.ObjectID,
) (*models.Match, error) {

	st, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	if initiatorID == opponentID {
		return nil, invalid("cannot challenge yourself")
	}

	opponent, err := s.users.FindByID(ctx, opponentID)
	if err != nil {
		return nil, err
	}
	if opponent == nil {
		return nil, fmt.Errorf("%w: opponent", ErrNotFound)
	}

	exam, err := s.exams.load(ctx, kind.ExamKind(), examID)
	if err != nil {
		return nil, err
	}
	if len(exam.Questions) == 0 {
		return nil, invalid("exam has no questions")
	}

	m := models.NewMatch(kind, initiatorID, opponentID, exam.ID, len(exam.Questions),
		s.settings.Duration, s.settings.InviteTTL, s.now().UTC())
	if err := st.Insert(ctx, m); err != nil {
		return nil, err
	}

	metrics.MatchTransitions.WithLabelValues(string(kind), models.MatchStatusPending).Inc()
	publish(ctx, s.events, events.MatchCreated, matchPayload(m))
	s.notifier.Notify(m.Room(), "match-updated", m)
	return m, nil
}

func (s *MatchService) Get(
	ctx context.Context,
	kind models.MatchKind,
	userID primitive.ObjectID,
	isAdmin bool,
	id primitive.ObjectID,
) (*models.Match, error) {

	st, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	m, err := st.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	if !isAdmin && !m.IsParticipant(userID) {
		return nil, ErrForbidden
	}
	return m, nil
}

func (s *MatchService) List(
	ctx context.Context,
	kind models.MatchKind,
	userID primitive.ObjectID,
	status string,
	limit, offset int,
) ([]models.Match, error) {

	st, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	return st.FindByUser(ctx, userID, status, limit, offset)
}

func (s *MatchService) Accept(ctx context.Context, kind models.MatchKind, userID, id primitive.ObjectID) (*models.Match, error) {
	return s.mutate(ctx, kind, id, func(m *models.Match, now time.Time) error {
		return m.Accept(userID, now)
	})
}

// Withdraw: el oponente rechaza o el iniciador cancela la invitación.
func (s *MatchService) Withdraw(ctx context.Context, kind models.MatchKind, userID, id primitive.ObjectID) (*models.Match, error) {
	return s.mutate(ctx, kind, id, func(m *models.Match, now time.Time) error {
		return m.Withdraw(userID, now)
	})
}

// SubmitAnswer corrige la respuesta del jugador para questionIndex y la suma.
func (s *MatchService) SubmitAnswer(
	ctx context.Context,
	kind models.MatchKind,
	userID, id primitive.ObjectID,
	questionIndex int,
	answer string,
) (*models.Match, error) {

	return s.mutate(ctx, kind, id, func(m *models.Match, now time.Time) error {
		exam, err := s.exams.load(ctx, kind.ExamKind(), m.ExamID)
		if err != nil {
			return err
		}
		var points float64
		if questionIndex >= 0 && questionIndex < len(exam.Questions) {
			points = ScoreAnswer(exam.Kind, exam.Questions[questionIndex], answer)
		}
		return m.RecordAnswer(userID, questionIndex, answer, points, now)
	})
}

// Finish lo llama el cliente cuando su timer termina.
func (s *MatchService) Finish(ctx context.Context, kind models.MatchKind, userID, id primitive.ObjectID) (*models.Match, error) {
	return s.mutate(ctx, kind, id, func(m *models.Match, now time.Time) error {
		return m.Finish(userID, now)
	})
}

// ExpireDue cierra matches vencidos de todos los tipos (lo llama el sweeper).
func (s *MatchService) ExpireDue(ctx context.Context) (expired, timedOut, conflicts int, err error) {
	now := s.now().UTC()

	for _, kind := range models.MatchKinds {
		st, ok := s.matches[kind]
		if !ok {
			continue
		}
		due, err := st.FindExpired(ctx, now, sweepBatch)
		if err != nil {
			return expired, timedOut, conflicts, err
		}

		for i := range due {
			m := &due[i]
			prev := m.Status
			if !m.Expire(now) {
				continue
			}
			if err := st.Update(ctx, m); err != nil {
				// otro request lo cerró o avanzó primero; la próxima pasada lo reevalúa
				if errors.Is(err, repository.ErrVersionConflict) {
					conflicts++
					continue
				}
				return expired, timedOut, conflicts, err
			}
			if m.CompletionReason == models.CompletionTimeout {
				timedOut++
			} else {
				expired++
			}
			s.afterTransition(ctx, prev, m)
		}
	}
	return expired, timedOut, conflicts, nil
}

func (s *MatchService) mutate(
	ctx context.Context,
	kind models.MatchKind,
	id primitive.ObjectID,
	fn func(m *models.Match, now time.Time) error,
) (*models.Match, error) {

	st, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	var (
		out  *models.Match
		prev string
	)
	err = retryOnConflict("match", func() error {
		m, err := st.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return ErrNotFound
		}
		before := m.Status
		if err := fn(m, s.now().UTC()); err != nil {
			return err
		}
		if err := st.Update(ctx, m); err != nil {
			return err
		}
		out, prev = m, before
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, prev, out)
	return out, nil
}

// afterTransition corre una sola vez por transición: solo el writer que ganó
// el update condicionado llega acá.
func (s *MatchService) afterTransition(ctx context.Context, prev string, m *models.Match) {
	if prev != m.Status {
		label := m.Status
		if m.Status == models.MatchStatusCompleted {
			label = m.CompletionReason
		}
		metrics.MatchTransitions.WithLabelValues(string(m.Kind), label).Inc()

		switch m.Status {
		case models.MatchStatusActive:
			publish(ctx, s.events, events.MatchActivated, matchPayload(m))
		case models.MatchStatusCompleted:
			s.onCompleted(ctx, m)
		}
	}
	s.notifier.Notify(m.Room(), "match-updated", m)
}

func (s *MatchService) onCompleted(ctx context.Context, m *models.Match) {
	publish(ctx, s.events, events.MatchCompleted, matchPayload(m))
	if !m.Played() {
		return
	}

	maxScore := float64(m.QuestionCount)
	if exam, err := s.exams.load(ctx, m.Kind.ExamKind(), m.ExamID); err == nil {
		maxScore = 0
		for _, q := range exam.Questions {
			maxScore += QuestionPoints(exam.Kind, q)
		}
	}

	now := s.now().UTC()
	players := []struct {
		id    primitive.ObjectID
		score float64
	}{
		{m.InitiatorID, m.InitiatorScore},
		{m.OpponentID, m.OpponentScore},
	}
	for _, p := range players {
		outcome := models.OutcomeDraw
		if m.WinnerID != nil {
			outcome = models.OutcomeLoss
			if *m.WinnerID == p.id {
				outcome = models.OutcomeWin
			}
		}

		entry := &models.HistoryEntry{
			ID:            primitive.NewObjectID(),
			UserID:        p.id,
			TestModelName: m.Kind.ModelName(),
			TestID:        m.ID,
			Skill:         string(m.Kind.ExamKind()),
			Score:         p.score,
			MaxScore:      maxScore,
			Percent:       percent(p.score, maxScore),
			Outcome:       outcome,
			CreatedAt:     now,
		}
		if err := s.history.Insert(ctx, entry); err != nil {
			log.Printf("[matches] history de %s en %s: %v", p.id.Hex(), m.ID.Hex(), err)
		}

		var pts float64
		switch outcome {
		case models.OutcomeWin:
			pts = winPoints
		case models.OutcomeDraw:
			pts = drawPoints
		}
		if pts > 0 && s.leaderboard != nil {
			if err := s.leaderboard.AddPoints(ctx, p.id.Hex(), pts); err != nil {
				log.Printf("[matches] leaderboard %s: %v", p.id.Hex(), err)
			}
		}
	}
}

func matchPayload(m *models.Match) map[string]any {
	payload := map[string]any{
		"matchId":        m.ID.Hex(),
		"kind":           m.Kind,
		"status":         m.Status,
		"initiatorId":    m.InitiatorID.Hex(),
		"opponentId":     m.OpponentID.Hex(),
		"initiatorScore": m.InitiatorScore,
		"opponentScore":  m.OpponentScore,
	}
	if m.CompletionReason != "" {
		payload["reason"] = m.CompletionReason
	}
	if m.WinnerID != nil {
		payload["winnerId"] = m.WinnerID.Hex()
	}
	return payload
}
