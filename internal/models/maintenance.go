package models

import "time"

// MaintenanceSummary: conteos por estado para el panel admin.
type MaintenanceSummary struct {
	Bookings    map[string]int64            `json:"bookings"`
	Matches     map[string]map[string]int64 `json:"matches"`
	GeneratedAt time.Time                   `json:"generatedAt"`
}

// SweepResult es lo que hizo una pasada del sweeper.
type SweepResult struct {
	ExpiredMatches    int           `json:"expiredMatches"`
	TimedOutMatches   int           `json:"timedOutMatches"`
	CompletedBookings int           `json:"completedBookings"`
	Conflicts         int           `json:"conflicts"`
	Elapsed           time.Duration `json:"elapsed"`
}
