package engine

import (
	"testing"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/store"
)

func newTestTracker(t *testing.T) (*InviteTracker, *Ledger) {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open() returned error: %v", err)
	}
	ledger := NewLedger(s, NopRecorder{})
	return NewInviteTracker(s, ledger, NopRecorder{}), ledger
}

func TestProcessJoinCredits(t *testing.T) {
	tracker, ledger := newTestTracker(t)

	tracker.SyncSnapshot("guild", models.InviteSnapshot{
		"abc": {Uses: 2, InviterID: "inviter"},
	})

	inviter, credited, err := tracker.ProcessJoin("guild", "joiner", models.InviteSnapshot{
		"abc": {Uses: 3, InviterID: "inviter"},
	})
	if err != nil {
		t.Fatalf("ProcessJoin() returned error: %v", err)
	}
	if inviter != "inviter" || !credited {
		t.Fatalf("ProcessJoin() = (%q, %v), want (inviter, true)", inviter, credited)
	}

	unclaimed, total := tracker.Referrals("inviter")
	if unclaimed != 1 || total != 1 {
		t.Errorf("Referrals() = (%d, %d), want (1, 1)", unclaimed, total)
	}

	// The join is not spendable until claimed
	if got := ledger.Balance("inviter"); got != 0 {
		t.Errorf("Balance() = %v, want 0 before claim", got)
	}
}

func TestRejoinIdempotence(t *testing.T) {
	tracker, _ := newTestTracker(t)

	tracker.SyncSnapshot("guild", models.InviteSnapshot{
		"abc": {Uses: 0, InviterID: "inviter"},
	})

	// The same joiner triggers several join events (leave and rejoin)
	for uses := 1; uses <= 4; uses++ {
		_, _, err := tracker.ProcessJoin("guild", "joiner", models.InviteSnapshot{
			"abc": {Uses: uses, InviterID: "inviter"},
		})
		if err != nil {
			t.Fatalf("ProcessJoin() #%d returned error: %v", uses, err)
		}
	}

	unclaimed, total := tracker.Referrals("inviter")
	if unclaimed != 1 || total != 1 {
		t.Errorf("Referrals() after rejoins = (%d, %d), want (1, 1)", unclaimed, total)
	}
}

func TestProcessJoinNewCode(t *testing.T) {
	tracker, _ := newTestTracker(t)

	// A code never seen before with one use counts as the consumed invite
	inviter, credited, err := tracker.ProcessJoin("guild", "joiner", models.InviteSnapshot{
		"new": {Uses: 1, InviterID: "someone"},
	})
	if err != nil {
		t.Fatalf("ProcessJoin() returned error: %v", err)
	}
	if inviter != "someone" || !credited {
		t.Errorf("ProcessJoin() = (%q, %v), want (someone, true)", inviter, credited)
	}
}

func TestProcessJoinNoDiff(t *testing.T) {
	tracker, _ := newTestTracker(t)

	snap := models.InviteSnapshot{"abc": {Uses: 2, InviterID: "inviter"}}
	tracker.SyncSnapshot("guild", snap)

	inviter, credited, err := tracker.ProcessJoin("guild", "joiner", snap)
	if err != nil {
		t.Fatalf("ProcessJoin() returned error: %v", err)
	}
	if inviter != "" || credited {
		t.Errorf("ProcessJoin() with no usage change = (%q, %v), want (\"\", false)", inviter, credited)
	}
}

func TestSelfInviteNotCredited(t *testing.T) {
	tracker, _ := newTestTracker(t)

	tracker.SyncSnapshot("guild", models.InviteSnapshot{
		"abc": {Uses: 0, InviterID: "user"},
	})

	_, credited, err := tracker.ProcessJoin("guild", "user", models.InviteSnapshot{
		"abc": {Uses: 1, InviterID: "user"},
	})
	if err != nil {
		t.Fatalf("ProcessJoin() returned error: %v", err)
	}
	if credited {
		t.Error("ProcessJoin() credited a self-invite")
	}
}

func TestSnapshotOverwritten(t *testing.T) {
	tracker, _ := newTestTracker(t)

	tracker.SyncSnapshot("guild", models.InviteSnapshot{
		"old": {Uses: 5, InviterID: "a"},
	})

	current := models.InviteSnapshot{"fresh": {Uses: 1, InviterID: "b"}}
	tracker.ProcessJoin("guild", "joiner", current)

	snap := tracker.Snapshot("guild")
	if _, ok := snap["old"]; ok {
		t.Error("Snapshot still contains the old code after overwrite")
	}
	if snap["fresh"].InviterID != "b" {
		t.Errorf("Snapshot fresh inviter = %q, want b", snap["fresh"].InviterID)
	}
}
