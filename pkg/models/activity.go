package models

import "time"

// ActivityEvent is one structured entry of the engine's activity feed.
// Every state-changing operation emits one.
type ActivityEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	VPSID     string    `json:"vps_id,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// EngineConfig is the small persisted config document: the granted admin id
// set, the log-sink target and the process-wide renewal mode.
type EngineConfig struct {
	AdminIDs     []string `json:"admin_ids"`
	LogChannelID string   `json:"log_channel_id"`
	RenewMode    string   `json:"renew_mode"` // "15" or "30"
}
