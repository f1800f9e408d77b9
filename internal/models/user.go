package models

import "time"

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusBlocked  ConnectionStatus = "blocked"
)

func (s ConnectionStatus) Valid() bool {
	switch s {
	case ConnectionStatusPending, ConnectionStatusAccepted, ConnectionStatusBlocked:
		return true
	}
	return false
}

type User struct {
	ID               string
	Name             string
	PhoneNumber      string // canonical E.164
	PasswordHash     string
	UsageGoalMinutes int
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Connection is a directed edge between two users. Edges are created in
// pairs; user_id and other_user_id are never equal.
type Connection struct {
	UserID      string
	OtherUserID string
	Status      ConnectionStatus
	CreatedAt   time.Time
}

// UsageDaily holds accumulated usage for one (user, calendar date) pair.
// Only the date part of Date is significant.
type UsageDaily struct {
	ID      string
	UserID  string
	Date    time.Time
	TotalMS int64
}
