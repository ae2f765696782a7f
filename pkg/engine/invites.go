package engine

import (
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/store"
)

// InviteTracker credits referrals by diffing the platform's invite usage
// counts against the last stored snapshot. The per-inviter dedup set, not the
// snapshot, is the source of truth for idempotence.
type InviteTracker struct {
	store    *store.Store
	ledger   *Ledger
	recorder Recorder
}

// NewInviteTracker builds the tracker over the given store and ledger.
func NewInviteTracker(s *store.Store, ledger *Ledger, rec Recorder) *InviteTracker {
	return &InviteTracker{
		store:    s,
		ledger:   ledger,
		recorder: rec,
	}
}

// ProcessJoin handles one join event for a guild. current must be the full
// invite usage table as observed right after the join. It returns the
// inferred inviter id and whether a referral was credited. A rejoin of an
// already credited joiner is ignored without error.
func (t *InviteTracker) ProcessJoin(guildID, joinerID string, current models.InviteSnapshot) (string, bool, error) {
	previous, _ := t.store.Invites.Get(guildID)

	inviterID := inferInviter(previous, current)

	// The snapshot is overwritten unconditionally, even when no inviter
	// could be inferred. Out-of-order joins are harmless because the dedup
	// set below decides credit.
	if err := t.store.Invites.Set(guildID, current); err != nil {
		return "", false, err
	}

	if inviterID == "" || inviterID == joinerID {
		return "", false, nil
	}

	credited := false
	unlock := t.ledger.users.Lock(inviterID)
	defer unlock()

	err := t.store.Users.Update(inviterID, func(acc models.UserAccount, exists bool) (models.UserAccount, error) {
		if !exists {
			acc = models.UserAccount{UserID: inviterID}
		}
		if acc.HasJoin(joinerID) {
			// Rejoin, no credit
			return acc, nil
		}
		acc.UniqueJoins = append(acc.UniqueJoins, joinerID)
		acc.UnclaimedReferrals++
		acc.TotalReferrals++
		credited = true
		return acc, nil
	})
	if err != nil {
		return inviterID, false, err
	}

	if credited {
		logger.Info(fmt.Sprintf("Invitación acreditada: %s invitó a %s", inviterID, joinerID), "Invites")
		record(t.recorder, "referral", inviterID, "", fmt.Sprintf("nuevo miembro %s", joinerID))
	}
	return inviterID, credited, nil
}

// Snapshot returns the stored invite snapshot for a guild.
func (t *InviteTracker) Snapshot(guildID string) models.InviteSnapshot {
	snap, _ := t.store.Invites.Get(guildID)
	return snap
}

// SyncSnapshot overwrites the stored snapshot without processing a join,
// used at startup so the first real join diffs against fresh data.
func (t *InviteTracker) SyncSnapshot(guildID string, current models.InviteSnapshot) error {
	return t.store.Invites.Set(guildID, current)
}

// Referrals returns the referral counters for one user.
func (t *InviteTracker) Referrals(userID string) (unclaimed, total int) {
	acc := t.ledger.Account(userID)
	return acc.UnclaimedReferrals, acc.TotalReferrals
}

// inferInviter finds the invite code whose use count grew and returns its
// inviter. A brand-new code with at least one use also counts.
func inferInviter(previous, current models.InviteSnapshot) string {
	for code, use := range current {
		prev, existed := previous[code]
		if (existed && use.Uses > prev.Uses) || (!existed && use.Uses > 0) {
			return use.InviterID
		}
	}
	return ""
}
