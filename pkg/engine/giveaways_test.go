package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/runtime"
)

func TestGiveawayCreateValidation(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.giveaways.Create("nobody", "premio", defaultSpec(), models.WinnerSingleRandom, time.Hour); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Create() by non-admin error = %v, want ErrUnauthorized", err)
	}
	if _, err := e.giveaways.Create("root-admin", "premio", defaultSpec(), models.WinnerPolicy("weird"), time.Hour); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Create() with unknown policy error = %v, want ErrInvalidArgument", err)
	}
	if _, err := e.giveaways.Create("root-admin", "premio", defaultSpec(), models.WinnerSingleRandom, -time.Hour); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Create() with negative duration error = %v, want ErrInvalidArgument", err)
	}

	ga, err := e.giveaways.Create("root-admin", "premio", defaultSpec(), models.WinnerSingleRandom, time.Hour)
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}
	if ga.Status != models.GiveawayActive {
		t.Errorf("Status = %v, want active", ga.Status)
	}
}

func TestGiveawayJoin(t *testing.T) {
	e := newTestEngine(t)
	ga, _ := e.giveaways.Create("root-admin", "premio", defaultSpec(), models.WinnerSingleRandom, time.Hour)

	if err := e.giveaways.Join(ga.ID, "a"); err != nil {
		t.Fatalf("Join() returned error: %v", err)
	}
	if err := e.giveaways.Join(ga.ID, "a"); !errors.Is(err, ErrAlreadyInState) {
		t.Errorf("duplicate Join() error = %v, want ErrAlreadyInState", err)
	}
	if err := e.giveaways.Join("missing", "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Join() on unknown giveaway error = %v, want ErrNotFound", err)
	}
}

func TestGiveawaySingleRandomResolution(t *testing.T) {
	e := newTestEngine(t)
	ga, _ := e.giveaways.Create("root-admin", "premio", defaultSpec(), models.WinnerSingleRandom, time.Hour)
	for _, p := range []string{"a", "b", "c"} {
		e.giveaways.Join(ga.ID, p)
	}

	// Move time past the end and resolve
	e.giveaways.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	e.giveaways.pickIdx = func(n int) int { return 1 }

	if n := e.giveaways.ResolveDue(context.Background()); n != 1 {
		t.Fatalf("ResolveDue() = %v, want 1", n)
	}

	got, _ := e.giveaways.Get(ga.ID)
	if got.Status != models.GiveawayEnded {
		t.Errorf("Status = %v, want ended", got.Status)
	}
	if got.WinnerID != "b" {
		t.Errorf("WinnerID = %q, want b", got.WinnerID)
	}
	if got.SuccessfulCreations != 1 {
		t.Errorf("SuccessfulCreations = %v, want 1", got.SuccessfulCreations)
	}
	if e.fake.Count() != 1 {
		t.Errorf("container count = %v, want 1", e.fake.Count())
	}

	// The prize is flagged as a grant and charged nothing
	rec, err := e.registry.Get(got.WinnerVPSID)
	if err != nil {
		t.Fatalf("winner VPS missing: %v", err)
	}
	if !rec.GiveawayGrant {
		t.Error("prize VPS not flagged as giveaway grant")
	}
	if got := e.ledger.Balance("b"); got != 0 {
		t.Errorf("winner balance = %v, want 0 (prize is free)", got)
	}
}

func TestGiveawayAllParticipantsFailureIsolation(t *testing.T) {
	e := newTestEngine(t)
	ga, _ := e.giveaways.Create("root-admin", "premio", defaultSpec(), models.WinnerAllParticipants, time.Hour)
	e.giveaways.Join(ga.ID, "a")
	e.giveaways.Join(ga.ID, "b")

	// Provisioning fails for participant a only; container names embed the
	// owner id
	e.fake.CreateHook = func(opts runtime.CreateOptions) error {
		if strings.Contains(opts.Name, "-a-") {
			return fmt.Errorf("fake: provisioning rejected for a")
		}
		return nil
	}
	e.giveaways.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if n := e.giveaways.ResolveDue(context.Background()); n != 1 {
		t.Fatalf("ResolveDue() = %v, want 1", n)
	}

	got, _ := e.giveaways.Get(ga.ID)
	if got.Status != models.GiveawayEnded {
		t.Errorf("Status = %v, want ended despite a failed grant", got.Status)
	}
	if got.SuccessfulCreations != 1 {
		t.Errorf("SuccessfulCreations = %v, want 1", got.SuccessfulCreations)
	}
	if !got.VPSCreated {
		t.Error("VPSCreated should be true when at least one grant landed")
	}

	// Only b got a prize
	vpsList := e.registry.ListByOwner("b")
	if len(vpsList) != 1 {
		t.Errorf("b owns %d VPS, want 1", len(vpsList))
	}
	if len(e.registry.ListByOwner("a")) != 0 {
		t.Error("a should own no VPS after the failed grant")
	}
}

func TestGiveawayNoParticipants(t *testing.T) {
	e := newTestEngine(t)
	ga, _ := e.giveaways.Create("root-admin", "premio", defaultSpec(), models.WinnerSingleRandom, time.Hour)

	e.giveaways.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if n := e.giveaways.ResolveDue(context.Background()); n != 1 {
		t.Fatalf("ResolveDue() = %v, want 1", n)
	}

	got, _ := e.giveaways.Get(ga.ID)
	if got.Status != models.GiveawayEnded || !got.NoParticipants {
		t.Errorf("Status = %v, NoParticipants = %v, want ended/true", got.Status, got.NoParticipants)
	}
	if e.fake.Count() != 0 {
		t.Errorf("container count = %v, want 0", e.fake.Count())
	}
}

func TestGiveawayPrizeLifetimeFromCreation(t *testing.T) {
	e := newTestEngine(t)
	ga, _ := e.giveaways.Create("root-admin", "premio", defaultSpec(), models.WinnerSingleRandom, time.Hour)
	e.giveaways.Join(ga.ID, "a")

	resolveTime := time.Now().Add(48 * time.Hour)
	e.giveaways.now = func() time.Time { return resolveTime }
	e.registry.now = func() time.Time { return resolveTime }

	e.giveaways.ResolveDue(context.Background())

	got, _ := e.giveaways.Get(ga.ID)
	rec, err := e.registry.Get(got.WinnerVPSID)
	if err != nil {
		t.Fatalf("winner VPS missing: %v", err)
	}

	// Lifetime counts from the prize's own creation, not the giveaway end
	want := resolveTime.Add(15 * 24 * time.Hour)
	if !rec.ExpiresAt.Equal(want) {
		t.Errorf("prize ExpiresAt = %v, want %v", rec.ExpiresAt, want)
	}
}

func TestGiveawayEndedListing(t *testing.T) {
	e := newTestEngine(t)
	ga1, _ := e.giveaways.Create("root-admin", "primero", defaultSpec(), models.WinnerSingleRandom, time.Hour)
	ga2, _ := e.giveaways.Create("root-admin", "segundo", defaultSpec(), models.WinnerSingleRandom, 2*time.Hour)
	e.giveaways.Join(ga1.ID, "a")
	e.giveaways.Join(ga2.ID, "b")
	ga3, _ := e.giveaways.Create("root-admin", "abierto", defaultSpec(), models.WinnerSingleRandom, 10*time.Hour)

	e.giveaways.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	if n := e.giveaways.ResolveDue(context.Background()); n != 2 {
		t.Fatalf("ResolveDue() = %v, want 2", n)
	}

	ended := e.giveaways.Ended(10)
	if len(ended) != 2 {
		t.Fatalf("Ended() returned %d giveaways, want 2", len(ended))
	}
	// Most recent end time first
	if ended[0].ID != ga2.ID || ended[1].ID != ga1.ID {
		t.Errorf("Ended() order = [%s, %s], want [%s, %s]", ended[0].ID, ended[1].ID, ga2.ID, ga1.ID)
	}
	for _, ga := range ended {
		if ga.Status != models.GiveawayEnded {
			t.Errorf("giveaway %s status = %v, want ended", ga.ID, ga.Status)
		}
		if ga.WinnerID == "" {
			t.Errorf("giveaway %s has no winner recorded", ga.ID)
		}
	}

	if got := e.giveaways.Ended(1); len(got) != 1 || got[0].ID != ga2.ID {
		t.Errorf("Ended(1) = %v entries, want only %s", len(got), ga2.ID)
	}

	active := e.giveaways.Active()
	if len(active) != 1 || active[0].ID != ga3.ID {
		t.Errorf("Active() = %d entries, want only %s", len(active), ga3.ID)
	}
}

func TestGiveawayJoinDuringResolutionRejected(t *testing.T) {
	e := newTestEngine(t)
	ga, _ := e.giveaways.Create("root-admin", "premio", defaultSpec(), models.WinnerSingleRandom, time.Hour)
	if err := e.giveaways.Join(ga.ID, "early"); err != nil {
		t.Fatalf("Join() returned error: %v", err)
	}

	// A join landing while the prize is being provisioned must be rejected,
	// not silently erased by the resolution write.
	var lateErr error
	e.fake.CreateHook = func(runtime.CreateOptions) error {
		lateErr = e.giveaways.Join(ga.ID, "late")
		return nil
	}

	e.giveaways.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if n := e.giveaways.ResolveDue(context.Background()); n != 1 {
		t.Fatalf("ResolveDue() = %v, want 1", n)
	}

	if !errors.Is(lateErr, ErrInvalidArgument) {
		t.Errorf("Join() during resolution error = %v, want ErrInvalidArgument", lateErr)
	}

	got, _ := e.giveaways.Get(ga.ID)
	if got.Status != models.GiveawayEnded {
		t.Errorf("Status = %v, want ended", got.Status)
	}
	if len(got.Participants) != 1 || got.Participants[0] != "early" {
		t.Errorf("Participants = %v, want [early]", got.Participants)
	}
	if got.WinnerID != "early" || got.SuccessfulCreations != 1 {
		t.Errorf("resolution results = (%q, %d), want (early, 1)", got.WinnerID, got.SuccessfulCreations)
	}
}
