package models

// UserAccount holds the points balance and referral counters of one user.
// Accounts are created lazily on first interaction and never deleted.
type UserAccount struct {
	UserID             string `json:"user_id"`
	Points             int    `json:"points"`
	UnclaimedReferrals int    `json:"inv_unclaimed"`
	TotalReferrals     int    `json:"inv_total"`
	// UniqueJoins is the referral dedup set: ids of every joiner already
	// credited to this inviter. A rejoin by any of these is ignored.
	UniqueJoins []string `json:"unique_joins"`
}

// HasJoin reports whether the joiner was already credited to this inviter.
func (u *UserAccount) HasJoin(joinerID string) bool {
	for _, id := range u.UniqueJoins {
		if id == joinerID {
			return true
		}
	}
	return false
}
