package models

// InviteUse is the observed state of one invite link at the last processed
// join event.
type InviteUse struct {
	Uses      int    `json:"uses"`
	InviterID string `json:"inviter"`
}

// InviteSnapshot maps invite code to its last observed usage for one guild.
// It is only a differencing baseline and is fully overwritten on every join;
// the per-user dedup set is the source of truth for idempotence.
type InviteSnapshot map[string]InviteUse
