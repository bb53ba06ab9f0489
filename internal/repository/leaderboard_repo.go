package repository

import (
	"context"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:h2h"

// LeaderboardRepository es un sorted set en Redis: member = userId, score = puntos H2H.
type LeaderboardRepository struct {
	rdb *redis.Client
}

func NewLeaderboardRepository(rdb *redis.Client) *LeaderboardRepository {
	return &LeaderboardRepository{rdb: rdb}
}

func (r *LeaderboardRepository) AddPoints(ctx context.Context, userID string, points float64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.ZIncrBy(ctx, leaderboardKey, points, userID).Err()
}

func (r *LeaderboardRepository) Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	if r.rdb == nil || n <= 0 {
		return []models.LeaderboardEntry{}, nil
	}

	zs, err := r.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]models.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		member, _ := z.Member.(string)
		out = append(out, models.LeaderboardEntry{
			Rank:   i + 1,
			UserID: member,
			Points: z.Score,
		})
	}
	return out, nil
}
