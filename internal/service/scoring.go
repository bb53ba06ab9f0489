package service

import (
	"math"
	"strings"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
)

const (
	defaultObjectivePoints = 1.0
	defaultOpenPoints      = 10.0
)

// QuestionPoints: puntaje máximo de una pregunta.
func QuestionPoints(kind models.ExamKind, q models.Question) float64 {
	if q.Points > 0 {
		return q.Points
	}
	if kind.Objective() {
		return defaultObjectivePoints
	}
	return defaultOpenPoints
}

// ScoreAnswer corrige una respuesta.
//
// reading / listening / image: la opción elegida contra Answer, sin mayúsculas.
// writing / speaking (transcripción): mitad por largo dentro de [MinWords, MaxWords],
// mitad por cobertura de Keywords. Sin keywords cuenta solo el largo.
func ScoreAnswer(kind models.ExamKind, q models.Question, answer string) float64 {
	points := QuestionPoints(kind, q)
	answer = strings.TrimSpace(answer)

	if kind.Objective() {
		if q.Answer != "" && strings.EqualFold(answer, strings.TrimSpace(q.Answer)) {
			return points
		}
		return 0
	}

	words := strings.Fields(answer)
	if len(words) == 0 {
		return 0
	}

	length := lengthScore(len(words), q.MinWords, q.MaxWords)
	coverage := length
	if len(q.Keywords) > 0 {
		lower := strings.ToLower(answer)
		hits := 0
		for _, kw := range q.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(lower, kw) {
				hits++
			}
		}
		coverage = float64(hits) / float64(len(q.Keywords))
	}

	return round2(points * (0.5*length + 0.5*coverage))
}

func lengthScore(n, lo, hi int) float64 {
	switch {
	case lo > 0 && n < lo:
		return float64(n) / float64(lo)
	case hi > 0 && n > hi:
		return float64(hi) / float64(n)
	}
	return 1
}

// ScoreExam corrige un intento completo; las preguntas sin respuesta valen 0.
func ScoreExam(exam *models.Exam, answers []string) (score, maxScore float64, perAnswer []float64) {
	perAnswer = make([]float64, len(exam.Questions))
	for i, q := range exam.Questions {
		maxScore += QuestionPoints(exam.Kind, q)
		if i < len(answers) {
			perAnswer[i] = ScoreAnswer(exam.Kind, q, answers[i])
			score += perAnswer[i]
		}
	}
	return round2(score), round2(maxScore), perAnswer
}

func percent(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return round2(score / maxScore * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
