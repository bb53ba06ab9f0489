package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/events"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func readingExam() models.Exam {
	return models.Exam{
		ID:    primitive.NewObjectID(),
		Kind:  models.ExamReading,
		Title: "Compréhension écrite 1",
		Level: "B1",
		Questions: []models.Question{
			{Prompt: "Où va Paul ?", Options: []string{"gare", "école"}, Answer: "gare"},
			{Prompt: "Quand ?", Options: []string{"lundi", "mardi"}, Answer: "mardi"},
			{Prompt: "Avec qui ?", Options: []string{"Anne", "Luc"}, Answer: "Anne", Points: 2},
		},
	}
}

func TestSubmitAttempt(t *testing.T) {
	ctx := context.Background()
	exam := readingExam()
	marie := newTestUser("marie", models.UserTypeTrainee)

	users := newFakeUsers(marie)
	history := &fakeHistory{}
	pub := &recordingPublisher{}
	exams := NewExamService(map[models.ExamKind]ExamStore{models.ExamReading: newFakeExams(exam)})
	svc := NewHistoryService(exams, history, users, pub)

	// 1 + 0 + 2 de 4 puntos
	res, err := svc.SubmitAttempt(ctx, marie.ID, models.ExamReading, exam.ID, []string{" GARE ", "lundi", "anne"})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if res.History.Score != 3 || res.History.MaxScore != 4 || res.History.Percent != 75 {
		t.Fatalf("unexpected score: %+v", res.History)
	}
	if res.History.TestModelName != "TCFReading" || res.History.Skill != "reading" {
		t.Fatalf("unexpected labels: %+v", res.History)
	}
	if want := []float64{1, 0, 2}; len(res.PerAnswer) != 3 || res.PerAnswer[0] != want[0] || res.PerAnswer[1] != want[1] || res.PerAnswer[2] != want[2] {
		t.Fatalf("perAnswer = %v", res.PerAnswer)
	}
	if pub.count(events.ExamCompleted) != 1 {
		t.Fatal("expected exam.completed event")
	}

	// un intento peor no baja el progreso
	if _, err := svc.SubmitAttempt(ctx, marie.ID, models.ExamReading, exam.ID, []string{"école"}); err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	u, _ := users.FindByID(ctx, marie.ID)
	if u.Progress["reading"] != 75 {
		t.Fatalf("progress = %v, want 75", u.Progress["reading"])
	}

	list, err := svc.List(ctx, marie.ID, "TCFReading", 0, 0)
	if err != nil || len(list) != 2 {
		t.Fatalf("List = %d entries, err %v", len(list), err)
	}
}

func TestSubmitAttemptErrors(t *testing.T) {
	ctx := context.Background()
	exam := readingExam()
	marie := newTestUser("marie", models.UserTypeTrainee)
	exams := NewExamService(map[models.ExamKind]ExamStore{models.ExamReading: newFakeExams(exam)})
	svc := NewHistoryService(exams, &fakeHistory{}, newFakeUsers(marie), nil)

	tests := []struct {
		name    string
		kind    models.ExamKind
		examID  primitive.ObjectID
		answers []string
		want    error
	}{
		{"examen inexistente", models.ExamReading, primitive.NewObjectID(), nil, ErrNotFound},
		{"kind sin store", models.ExamWriting, exam.ID, nil, ErrInvalidInput},
		{"kind inválido", models.ExamKind("poetry"), exam.ID, nil, ErrInvalidInput},
		{"más respuestas que preguntas", models.ExamReading, exam.ID, []string{"a", "b", "c", "d"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitAttempt(ctx, marie.ID, tt.kind, tt.examID, tt.answers)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExamServiceHidesAnswers(t *testing.T) {
	ctx := context.Background()
	exam := readingExam()
	exams := NewExamService(map[models.ExamKind]ExamStore{models.ExamReading: newFakeExams(exam)})

	got, err := exams.Get(ctx, models.ExamReading, exam.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for i, q := range got.Questions {
		if q.Answer != "" {
			t.Fatalf("question %d leaks its answer", i)
		}
	}

	list, err := exams.List(ctx, models.ExamReading, "B1", 0, 0)
	if err != nil || len(list) != 1 || list[0].Questions[0].Answer != "" {
		t.Fatalf("List = %+v, err %v", list, err)
	}
}

func TestExamServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	exams := NewExamService(map[models.ExamKind]ExamStore{
		models.ExamReading: newFakeExams(),
		models.ExamWriting: newFakeExams(),
	})

	tests := []struct {
		name    string
		kind    models.ExamKind
		exam    models.Exam
		wantErr bool
	}{
		{"ok", models.ExamReading, models.Exam{Title: "R1", Questions: []models.Question{{Prompt: "?", Answer: "a"}}}, false},
		{"escritura sin respuesta", models.ExamWriting, models.Exam{Title: "W1", Questions: []models.Question{{Prompt: "Décrivez…", MinWords: 50}}}, false},
		{"sin título", models.ExamReading, models.Exam{Questions: []models.Question{{Prompt: "?", Answer: "a"}}}, true},
		{"sin preguntas", models.ExamReading, models.Exam{Title: "R2"}, true},
		{"nivel inválido", models.ExamReading, models.Exam{Title: "R3", Level: "Z9", Questions: []models.Question{{Prompt: "?", Answer: "a"}}}, true},
		{"objetiva sin respuesta", models.ExamReading, models.Exam{Title: "R4", Questions: []models.Question{{Prompt: "?"}}}, true},
		{"puntos negativos", models.ExamReading, models.Exam{Title: "R5", Questions: []models.Question{{Prompt: "?", Answer: "a", Points: -1}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.exam
			_, err := exams.Create(ctx, tt.kind, &e)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
