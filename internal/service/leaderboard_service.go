package service

import (
	"context"
	"log"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/cache"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100

	leaderboardCacheTTL = 30 * time.Second
)

type LeaderboardService struct {
	board LeaderboardStore
	users UserStore
}

func NewLeaderboardService(board LeaderboardStore, users UserStore) *LeaderboardService {
	return &LeaderboardService{board: board, users: users}
}

func leaderboardCacheKey(limit int) string {
	return cache.Key("leaderboard", "top", limit)
}

// Top devuelve el ranking H2H con usernames resueltos.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	} else if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	var cached []models.LeaderboardEntry
	if ok, err := cache.GetJSON(ctx, leaderboardCacheKey(limit), &cached); err == nil && ok {
		return cached, nil
	}

	entries, err := s.board.Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, e := range entries {
		if oid, err := primitive.ObjectIDFromHex(e.UserID); err == nil {
			ids = append(ids, oid)
		}
	}
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		names := make(map[string]string, len(users))
		for _, u := range users {
			names[u.ID.Hex()] = u.Username
		}
		for i := range entries {
			entries[i].Username = names[entries[i].UserID]
		}
	}

	if err := cache.SetJSON(ctx, leaderboardCacheKey(limit), entries, leaderboardCacheTTL); err != nil {
		log.Printf("[leaderboard] error cacheando en Redis: %v", err)
	}
	return entries, nil
}
