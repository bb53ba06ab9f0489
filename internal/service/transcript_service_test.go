package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEstimateLevel(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{0, "A1"},
		{19.99, "A1"},
		{20, "A2"},
		{49, "B1"},
		{64.5, "B2"},
		{79, "C1"},
		{80, "C2"},
		{100, "C2"},
	}
	for _, tt := range tests {
		if got := EstimateLevel(tt.overall); got != tt.want {
			t.Errorf("EstimateLevel(%v) = %s, want %s", tt.overall, got, tt.want)
		}
	}
}

func TestTranscriptBuild(t *testing.T) {
	ctx := context.Background()
	u := newTestUser("nora", models.UserTypeTrainee)
	history := &fakeHistory{}
	entries := []models.HistoryEntry{
		{UserID: u.ID, Skill: "reading", Percent: 40},
		{UserID: u.ID, Skill: "reading", Percent: 80},
		{UserID: u.ID, Skill: "writing", Percent: 60, Outcome: models.OutcomeWin},
		{UserID: u.ID, Skill: "writing", Percent: 20, Outcome: models.OutcomeLoss},
		{UserID: primitive.NewObjectID(), Skill: "reading", Percent: 100},
	}
	for i := range entries {
		history.Insert(ctx, &entries[i])
	}

	svc := NewTranscriptService(newFakeUsers(u), history, &fakeArchives{}, nil)
	tr, err := svc.Build(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}

	if len(tr.Skills) != 2 || tr.Skills[0].Skill != "reading" {
		t.Fatalf("skills = %+v", tr.Skills)
	}
	reading := tr.Skills[0]
	if reading.Attempts != 2 || reading.BestPercent != 80 || reading.AveragePercent != 60 {
		t.Errorf("reading = %+v", reading)
	}
	if tr.Matches != (models.MatchRecord{Played: 2, Wins: 1, Losses: 1}) {
		t.Errorf("matches = %+v", tr.Matches)
	}
	if tr.OverallPercent != 50 || tr.EstimatedLevel != "B2" {
		t.Errorf("overall=%v level=%s, want 50 B2", tr.OverallPercent, tr.EstimatedLevel)
	}
}

func TestTranscriptArchive(t *testing.T) {
	ctx := context.Background()
	u := newTestUser("omar", models.UserTypeTrainee)

	t.Run("storage disabled", func(t *testing.T) {
		svc := NewTranscriptService(newFakeUsers(u), &fakeHistory{}, &fakeArchives{}, nil)
		if _, err := svc.Archive(ctx, u.ID); !errors.Is(err, ErrStorageDisabled) {
			t.Errorf("err = %v, want ErrStorageDisabled", err)
		}
	})

	t.Run("stores json and signs url", func(t *testing.T) {
		objects := &fakeObjects{}
		archives := &fakeArchives{}
		svc := NewTranscriptService(newFakeUsers(u), &fakeHistory{}, archives, objects)

		a, err := svc.Archive(ctx, u.ID)
		if err != nil {
			t.Fatal(err)
		}
		data, ok := objects.objects[a.ObjectName]
		if !ok || !strings.Contains(string(data), `"username": "omar"`) {
			t.Fatalf("object %s = %s", a.ObjectName, data)
		}
		if !strings.HasPrefix(a.ObjectName, u.ID.Hex()+"/") || a.URL == "" || a.Size != int64(len(data)) {
			t.Errorf("archive = %+v", a)
		}

		list, err := svc.ListArchives(ctx, u.ID, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 1 || list[0].URL != a.URL {
			t.Errorf("archives = %+v", list)
		}
	})
}
