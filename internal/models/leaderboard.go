package models

type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	UserID   string  `json:"userId"`
	Username string  `json:"username,omitempty"`
	Points   float64 `json:"points"`
}
