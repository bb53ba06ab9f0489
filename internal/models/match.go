package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MatchKind string

const (
	MatchWriting MatchKind = "writing"
	MatchImage   MatchKind = "image"
)

var MatchKinds = []MatchKind{MatchWriting, MatchImage}

func (k MatchKind) Valid() bool {
	return k == MatchWriting || k == MatchImage
}

// ExamKind es el banco de preguntas que usa cada tipo de match.
func (k MatchKind) ExamKind() ExamKind {
	if k == MatchImage {
		return ExamImage
	}
	return ExamWriting
}

func (k MatchKind) ModelName() string {
	if k == MatchImage {
		return "ImageMatch"
	}
	return "WritingMatch"
}

func (k MatchKind) Collection() string {
	if k == MatchImage {
		return "image_matches"
	}
	return "writing_matches"
}

const (
	MatchStatusPending   = "pending"
	MatchStatusActive    = "active"
	MatchStatusCompleted = "completed"
)

// motivos de cierre
const (
	CompletionFinished  = "finished"
	CompletionTimeout   = "timeout"
	CompletionExpired   = "expired"
	CompletionDeclined  = "declined"
	CompletionCancelled = "cancelled"
)

type MatchAnswer struct {
	PlayerID      primitive.ObjectID `json:"playerId" bson:"playerId"`
	QuestionIndex int                `json:"questionIndex" bson:"questionIndex"`
	Answer        string             `json:"answer" bson:"answer"`
	Points        float64            `json:"points" bson:"points"`
	SubmittedAt   time.Time          `json:"submittedAt" bson:"submittedAt"`
}

// Match es un duelo H2H (writing o image).
//
//	pending --Accept--> active --(ambos terminan | deadline)--> completed
//	pending --Withdraw | invitación vencida--> completed
//
// ExpiresAt es el vencimiento de la invitación mientras está pending y el
// deadline de la partida mientras está active.
type Match struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kind          MatchKind          `json:"kind" bson:"kind"`
	InitiatorID   primitive.ObjectID `json:"initiatorId" bson:"initiatorId"`
	OpponentID    primitive.ObjectID `json:"opponentId" bson:"opponentId"`
	ExamID        primitive.ObjectID `json:"examId" bson:"examId"`
	QuestionCount int                `json:"questionCount" bson:"questionCount"`

	InitiatorCurrentQuestion int     `json:"initiatorCurrentQuestion" bson:"initiatorCurrentQuestion"`
	OpponentCurrentQuestion  int     `json:"opponentCurrentQuestion" bson:"opponentCurrentQuestion"`
	InitiatorScore           float64 `json:"initiatorScore" bson:"initiatorScore"`
	OpponentScore            float64 `json:"opponentScore" bson:"opponentScore"`

	Answers []MatchAnswer `json:"answers" bson:"answers"`

	Status           string              `json:"status" bson:"status"`
	CompletionReason string              `json:"completionReason,omitempty" bson:"completionReason,omitempty"`
	WinnerID         *primitive.ObjectID `json:"winnerId,omitempty" bson:"winnerId,omitempty"`

	DurationSeconds int        `json:"durationSeconds" bson:"durationSeconds"`
	ExpiresAt       time.Time  `json:"expiresAt" bson:"expiresAt"`
	StartedAt       *time.Time `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updatedAt"`
	Version         int64      `json:"version" bson:"version"`
}

func NewMatch(
	kind MatchKind,
	initiator, opponent, examID primitive.ObjectID,
	questionCount int,
	duration, inviteTTL time.Duration,
	now time.Time,
) *Match {
	return &Match{
		ID:              primitive.NewObjectID(),
		Kind:            kind,
		InitiatorID:     initiator,
		OpponentID:      opponent,
		ExamID:          examID,
		QuestionCount:   questionCount,
		Answers:         []MatchAnswer{},
		Status:          MatchStatusPending,
		DurationSeconds: int(duration / time.Second),
		ExpiresAt:       now.Add(inviteTTL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (m *Match) Room() string {
	return string(m.Kind) + "-match:" + m.ID.Hex()
}

func (m *Match) IsParticipant(userID primitive.ObjectID) bool {
	return userID == m.InitiatorID || userID == m.OpponentID
}

func (m *Match) TotalScore() float64 {
	return m.InitiatorScore + m.OpponentScore
}

// PlayerDone indica si el jugador ya respondió todas las preguntas.
func (m *Match) PlayerDone(userID primitive.ObjectID) bool {
	switch userID {
	case m.InitiatorID:
		return m.InitiatorCurrentQuestion >= m.QuestionCount
	case m.OpponentID:
		return m.OpponentCurrentQuestion >= m.QuestionCount
	}
	return false
}

func (m *Match) bothDone() bool {
	return m.PlayerDone(m.InitiatorID) && m.PlayerDone(m.OpponentID)
}

func (m *Match) pastDeadline(now time.Time) bool {
	return !now.Before(m.ExpiresAt)
}

// Accept: solo el oponente invitado, solo si la invitación sigue vigente.
func (m *Match) Accept(by primitive.ObjectID, now time.Time) error {
	if m.Status != MatchStatusPending {
		return ErrInvalidTransition
	}
	if by != m.OpponentID {
		if by == m.InitiatorID {
			return ErrOnlyOpponent
		}
		return ErrNotParticipant
	}
	if m.pastDeadline(now) {
		return ErrMatchExpired
	}

	m.Status = MatchStatusActive
	m.StartedAt = &now
	m.ExpiresAt = now.Add(time.Duration(m.DurationSeconds) * time.Second)
	m.UpdatedAt = now
	return nil
}

// Withdraw: el oponente rechaza o el iniciador cancela una invitación pendiente.
func (m *Match) Withdraw(by primitive.ObjectID, now time.Time) error {
	if m.Status != MatchStatusPending {
		return ErrInvalidTransition
	}
	switch by {
	case m.OpponentID:
		m.complete(CompletionDeclined, now)
	case m.InitiatorID:
		m.complete(CompletionCancelled, now)
	default:
		return ErrNotParticipant
	}
	return nil
}

// RecordAnswer suma los puntos de la respuesta `questionIndex` del jugador `by`.
// questionIndex tiene que ser exactamente el índice actual del jugador, así un
// reenvío duplicado no suma dos veces.
func (m *Match) RecordAnswer(by primitive.ObjectID, questionIndex int, answer string, points float64, now time.Time) error {
	if m.Status != MatchStatusActive {
		return ErrInvalidTransition
	}
	if !m.IsParticipant(by) {
		return ErrNotParticipant
	}
	if m.pastDeadline(now) {
		return ErrMatchExpired
	}
	if points < 0 {
		return ErrNegativeScore
	}

	index, score := &m.InitiatorCurrentQuestion, &m.InitiatorScore
	if by == m.OpponentID {
		index, score = &m.OpponentCurrentQuestion, &m.OpponentScore
	}
	if *index >= m.QuestionCount {
		return ErrPlayerFinished
	}
	if questionIndex != *index {
		return ErrStaleAnswer
	}

	*score += points
	*index++
	m.Answers = append(m.Answers, MatchAnswer{
		PlayerID:      by,
		QuestionIndex: questionIndex,
		Answer:        answer,
		Points:        points,
		SubmittedAt:   now,
	})
	m.UpdatedAt = now

	if m.bothDone() {
		m.complete(CompletionFinished, now)
	}
	return nil
}

// Finish lo pide un jugador cuando su timer llega a cero. El servidor solo
// cierra si de verdad terminó (ambos respondieron o pasó el deadline).
func (m *Match) Finish(by primitive.ObjectID, now time.Time) error {
	if !m.IsParticipant(by) {
		return ErrNotParticipant
	}
	if m.Status != MatchStatusActive {
		return ErrInvalidTransition
	}
	switch {
	case m.bothDone():
		m.complete(CompletionFinished, now)
	case m.pastDeadline(now):
		m.complete(CompletionTimeout, now)
	default:
		return ErrMatchInProgress
	}
	return nil
}

// Expire cierra un match vencido. Devuelve false si no correspondía.
func (m *Match) Expire(now time.Time) bool {
	if !m.pastDeadline(now) {
		return false
	}
	switch m.Status {
	case MatchStatusPending:
		m.complete(CompletionExpired, now)
	case MatchStatusActive:
		m.complete(CompletionTimeout, now)
	default:
		return false
	}
	return true
}

// Played indica si el match llegó a jugarse (hay resultado que registrar).
func (m *Match) Played() bool {
	return m.Status == MatchStatusCompleted &&
		(m.CompletionReason == CompletionFinished || m.CompletionReason == CompletionTimeout)
}

func (m *Match) complete(reason string, now time.Time) {
	m.Status = MatchStatusCompleted
	m.CompletionReason = reason
	m.CompletedAt = &now
	m.UpdatedAt = now
	m.WinnerID = nil

	if reason != CompletionFinished && reason != CompletionTimeout {
		return
	}
	switch {
	case m.InitiatorScore > m.OpponentScore:
		w := m.InitiatorID
		m.WinnerID = &w
	case m.OpponentScore > m.InitiatorScore:
		w := m.OpponentID
		m.WinnerID = &w
	}
}
