package models

import "time"

// WinnerPolicy selects how an ended giveaway resolves its winners.
type WinnerPolicy string

const (
	// WinnerSingleRandom draws one participant uniformly at random.
	WinnerSingleRandom WinnerPolicy = "random"
	// WinnerAllParticipants provisions one prize per participant.
	WinnerAllParticipants WinnerPolicy = "all"
)

// Valid reports whether the policy is one of the known values.
func (p WinnerPolicy) Valid() bool {
	return p == WinnerSingleRandom || p == WinnerAllParticipants
}

// GiveawayStatus is the lifecycle state of a giveaway.
type GiveawayStatus string

const (
	GiveawayActive GiveawayStatus = "active"
	GiveawayEnded  GiveawayStatus = "ended"
)

// Giveaway is one VPS giveaway. Records are retained as history after
// resolution, never deleted.
type Giveaway struct {
	ID          string         `json:"id"`
	CreatorID   string         `json:"creator_id"`
	Description string         `json:"description"`
	PrizeSpec   ResourceSpec   `json:"prize_spec"`
	Policy      WinnerPolicy   `json:"winner_type"`
	CreatedAt   time.Time      `json:"created_at"`
	EndTime     time.Time      `json:"end_time"`
	Status      GiveawayStatus `json:"status"`
	// Participants is membership-unique; insertion order carries no meaning.
	Participants []string `json:"participants"`

	// Resolution results, filled by the giveaway sweeper.
	WinnerID            string `json:"winner_id,omitempty"`
	WinnerVPSID         string `json:"winner_vps_id,omitempty"`
	VPSCreated          bool   `json:"vps_created"`
	SuccessfulCreations int    `json:"successful_creations"`
	NoParticipants      bool   `json:"no_participants"`
}

// HasParticipant reports whether the user already joined the giveaway.
func (g *Giveaway) HasParticipant(userID string) bool {
	for _, id := range g.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
