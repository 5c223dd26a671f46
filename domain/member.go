package domain

import "time"

type MemberJoin struct {
	GuildID  string
	UserID   string
	Username string
	Mention  string
	JoinedAt time.Time
}

type JoinRecord struct {
	GuildID      string    `json:"guild_id"`
	UserID       string    `json:"user_id"`
	JoinedAt     time.Time `json:"joined_at"`
	HandledAt    time.Time `json:"handled_at"`
	Welcomed     bool      `json:"welcomed"`
	RoleAssigned bool      `json:"role_assigned"`
	Error        string    `json:"error,omitempty"`
}
