package models

import (
	"time"

	"github.com/google/uuid"
)

// ActionEntry is one logged eco-action and the points it earned.
type ActionEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserPoints is the per-user points tally backing the leaderboard.
type UserPoints struct {
	UserID string `json:"userId"`
	Points int    `json:"points"`
}

// TrackerSummary is the aggregate view of a user's logged actions.
type TrackerSummary struct {
	UserID      string `json:"userId"`
	TotalPoints int    `json:"totalPoints"`
	Level       string `json:"level"`
}

// Level thresholds, lowest first.
var levels = []struct {
	name      string
	threshold int
}{
	{"Newbie", 0},
	{"Eco Starter", 50},
	{"Green Hero", 200},
	{"Eco Master", 500},
}

// Badge thresholds, lowest first.
var badges = []struct {
	name      string
	threshold int
}{
	{"Eco-Newbie", 0},
	{"Green Warrior", 100},
	{"Planet Protector", 500},
}

// LevelForPoints maps a points total to the user's level name.
func LevelForPoints(points int) string {
	name := levels[0].name
	for _, l := range levels {
		if points >= l.threshold {
			name = l.name
		}
	}
	return name
}

// BadgeForPoints maps a points total to the highest badge reached.
func BadgeForPoints(points int) string {
	name := badges[0].name
	for _, b := range badges {
		if points >= b.threshold {
			name = b.name
		}
	}
	return name
}
