package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/config"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/runtime"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/store"
)

// testEngine wires a full engine over a temp store and a fake runtime.
type testEngine struct {
	store     *store.Store
	fake      *runtime.Fake
	ledger    *Ledger
	access    *AccessPolicy
	registry  *Registry
	giveaways *Giveaways
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open() returned error: %v", err)
	}

	cfg := &config.Config{
		DockerImage:   "test-image",
		DeployCost:    40,
		RenewCost15:   10,
		RenewCost30:   20,
		LifetimeDays:  15,
		DefaultRAMGB:  8,
		DefaultCPU:    2,
		DefaultDiskGB: 20,
	}

	fake := runtime.NewFake()
	ledger := NewLedger(s, NopRecorder{})
	access := NewAccessPolicy(s, []string{"root-admin"}, NopRecorder{})
	registry := NewRegistry(s, fake, ledger, access, cfg, NopRecorder{})
	registry.readyTimeout = time.Second
	registry.readyPoll = time.Millisecond

	return &testEngine{
		store:     s,
		fake:      fake,
		ledger:    ledger,
		access:    access,
		registry:  registry,
		giveaways: NewGiveaways(s, registry, access, NopRecorder{}),
	}
}

func defaultSpec() models.ResourceSpec {
	return models.ResourceSpec{RAMGB: 8, CPU: 2, DiskGB: 20}
}

func (e *testEngine) deploy(t *testing.T, owner string) *models.VPSRecord {
	t.Helper()
	rec, err := e.registry.Deploy(context.Background(), owner, defaultSpec(), DeployOptions{})
	if err != nil {
		t.Fatalf("Deploy() returned error: %v", err)
	}
	return rec
}

func TestDeployChargesAfterProvision(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u1", 40, "test")

	rec := e.deploy(t, "u1")

	if got := e.ledger.Balance("u1"); got != 0 {
		t.Errorf("Balance() after deploy = %v, want 0", got)
	}
	if rec.Owner != "u1" {
		t.Errorf("Owner = %q, want u1", rec.Owner)
	}
	if !rec.Active || rec.Suspended {
		t.Errorf("record flags = active %v suspended %v, want active true suspended false", rec.Active, rec.Suspended)
	}
	if rec.HTTPPort < portRangeStart || rec.HTTPPort >= portRangeEnd {
		t.Errorf("HTTPPort = %v, want in [%d,%d)", rec.HTTPPort, portRangeStart, portRangeEnd)
	}
	wantExpiry := rec.CreatedAt.Add(15 * 24 * time.Hour)
	if !rec.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("ExpiresAt = %v, want %v", rec.ExpiresAt, wantExpiry)
	}

	// Second deploy with an empty balance must fail with the shortfall
	_, err := e.registry.Deploy(context.Background(), "u1", defaultSpec(), DeployOptions{})
	funds, ok := AsInsufficientFunds(err)
	if !ok {
		t.Fatalf("second Deploy() error = %v, want InsufficientFundsError", err)
	}
	if funds.Need != 40 || funds.Have != 0 {
		t.Errorf("InsufficientFundsError = need %d have %d, want need 40 have 0", funds.Need, funds.Have)
	}
	if e.fake.Count() != 1 {
		t.Errorf("container count = %v, want 1", e.fake.Count())
	}
}

func TestDeployFailureDoesNotCharge(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u1", 40, "test")
	e.fake.FailCreate = true

	_, err := e.registry.Deploy(context.Background(), "u1", defaultSpec(), DeployOptions{})
	if !errors.Is(err, ErrRuntimeFailure) {
		t.Fatalf("Deploy() error = %v, want ErrRuntimeFailure", err)
	}
	if got := e.ledger.Balance("u1"); got != 40 {
		t.Errorf("Balance() after failed deploy = %v, want 40", got)
	}
	if e.store.VPS.Len() != 0 {
		t.Errorf("VPS table has %d records after failed deploy, want 0", e.store.VPS.Len())
	}
}

func TestAuthorize(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("owner", 40, "test")
	rec := e.deploy(t, "owner")

	if _, err := e.registry.Authorize("owner", rec.ContainerID); err != nil {
		t.Errorf("Authorize(owner) returned error: %v", err)
	}
	if _, err := e.registry.Authorize("root-admin", rec.ContainerID); err != nil {
		t.Errorf("Authorize(admin) returned error: %v", err)
	}
	if _, err := e.registry.Authorize("stranger", rec.ContainerID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Authorize(stranger) error = %v, want ErrUnauthorized", err)
	}
	if _, err := e.registry.Authorize("owner", "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Authorize() on unknown id error = %v, want ErrNotFound", err)
	}

	// Shared users are authorized once granted
	if err := e.registry.Share(rec.ContainerID, "owner", "friend"); err != nil {
		t.Fatalf("Share() returned error: %v", err)
	}
	if _, err := e.registry.Authorize("friend", rec.ContainerID); err != nil {
		t.Errorf("Authorize(friend) after Share returned error: %v", err)
	}
}

func TestStartStop(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")
	ctx := context.Background()

	// Fresh VPS is running: starting again is a no-op error
	if err := e.registry.Start(ctx, rec.ContainerID, "u"); !errors.Is(err, ErrAlreadyInState) {
		t.Errorf("Start() on running VPS error = %v, want ErrAlreadyInState", err)
	}

	if err := e.registry.Stop(ctx, rec.ContainerID, "u"); err != nil {
		t.Fatalf("Stop() returned error: %v", err)
	}
	got, _ := e.registry.Get(rec.ContainerID)
	if got.Active || !got.StopConfirmed {
		t.Errorf("after Stop: active %v stopConfirmed %v, want false/true", got.Active, got.StopConfirmed)
	}

	if err := e.registry.Stop(ctx, rec.ContainerID, "u"); !errors.Is(err, ErrAlreadyInState) {
		t.Errorf("Stop() on stopped VPS error = %v, want ErrAlreadyInState", err)
	}

	if err := e.registry.Start(ctx, rec.ContainerID, "u"); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}
	got, _ = e.registry.Get(rec.ContainerID)
	if !got.Active {
		t.Error("after Start: VPS not active")
	}
}

func TestStopFailureKeepsState(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")

	e.fake.FailStop = true
	err := e.registry.Stop(context.Background(), rec.ContainerID, "u")
	if !errors.Is(err, ErrRuntimeFailure) {
		t.Fatalf("Stop() error = %v, want ErrRuntimeFailure", err)
	}

	got, _ := e.registry.Get(rec.ContainerID)
	if !got.Active {
		t.Error("failed Stop() must leave the record in its prior state")
	}
}

func TestRenewPastExpiry(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 50, "test")
	rec := e.deploy(t, "u")

	// Push the record past expiry and suspend it, like the sweeper would
	now := time.Now()
	stale := rec
	stale.ExpiresAt = now.Add(-48 * time.Hour)
	stale.Active = false
	stale.Suspended = true
	e.store.VPS.Set(rec.ContainerID, *stale)

	e.registry.now = func() time.Time { return now }
	if err := e.registry.Renew(context.Background(), rec.ContainerID, "u"); err != nil {
		t.Fatalf("Renew() returned error: %v", err)
	}

	got, _ := e.registry.Get(rec.ContainerID)
	want := now.Add(15 * 24 * time.Hour)
	if !got.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want now+15d = %v (never stale_expiry+15d)", got.ExpiresAt, want)
	}
	if got.Suspended {
		t.Error("Renew() must clear suspension")
	}
	if !got.Active {
		t.Error("Renew() must restart a stopped VPS")
	}
	if got := e.ledger.Balance("u"); got != 0 {
		t.Errorf("Balance() = %v, want 0 after 10-point renewal on 10 remaining", got)
	}
}

func TestRenewFutureExpiry(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 50, "test")
	rec := e.deploy(t, "u")

	now := time.Now()
	future := rec
	future.ExpiresAt = now.Add(72 * time.Hour)
	e.store.VPS.Set(rec.ContainerID, *future)

	e.registry.now = func() time.Time { return now }
	if err := e.registry.Renew(context.Background(), rec.ContainerID, "u"); err != nil {
		t.Fatalf("Renew() returned error: %v", err)
	}

	got, _ := e.registry.Get(rec.ContainerID)
	want := future.ExpiresAt.Add(15 * 24 * time.Hour)
	if !got.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want old_expiry+15d = %v", got.ExpiresAt, want)
	}
}

func TestRenewThirtyDayTier(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 60, "test")
	rec := e.deploy(t, "u")

	if err := e.access.SetRenewMode("30"); err != nil {
		t.Fatalf("SetRenewMode() returned error: %v", err)
	}

	now := time.Now()
	e.registry.now = func() time.Time { return now }
	before, _ := e.registry.Get(rec.ContainerID)

	if err := e.registry.Renew(context.Background(), rec.ContainerID, "u"); err != nil {
		t.Fatalf("Renew() returned error: %v", err)
	}

	got, _ := e.registry.Get(rec.ContainerID)
	want := before.ExpiresAt.Add(30 * 24 * time.Hour)
	if !got.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, want)
	}
	if got := e.ledger.Balance("u"); got != 0 {
		t.Errorf("Balance() = %v, want 0 after 20-point renewal", got)
	}
}

func TestRenewRejectsGiveawayGrant(t *testing.T) {
	e := newTestEngine(t)
	rec, err := e.registry.Deploy(context.Background(), "winner", defaultSpec(), DeployOptions{GiveawayGrant: true})
	if err != nil {
		t.Fatalf("Deploy() returned error: %v", err)
	}

	err = e.registry.Renew(context.Background(), rec.ContainerID, "winner")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Renew() of giveaway grant error = %v, want ErrInvalidArgument", err)
	}
}

func TestRenewInsufficientFunds(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 45, "test")
	rec := e.deploy(t, "u") // leaves 5 points, renewal costs 10
	before, _ := e.registry.Get(rec.ContainerID)

	err := e.registry.Renew(context.Background(), rec.ContainerID, "u")
	if _, ok := AsInsufficientFunds(err); !ok {
		t.Fatalf("Renew() error = %v, want InsufficientFundsError", err)
	}

	got, _ := e.registry.Get(rec.ContainerID)
	if !got.ExpiresAt.Equal(before.ExpiresAt) {
		t.Error("failed Renew() must not extend the expiry")
	}
}

func TestReinstallPreservesExpiry(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	old := e.deploy(t, "u")

	fresh, err := e.registry.Reinstall(context.Background(), old.ContainerID, "u")
	if err != nil {
		t.Fatalf("Reinstall() returned error: %v", err)
	}

	if fresh.ContainerID == old.ContainerID {
		t.Error("Reinstall() reused the old container id")
	}
	if !fresh.ExpiresAt.Equal(old.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want preserved %v", fresh.ExpiresAt, old.ExpiresAt)
	}
	if _, err := e.registry.Get(old.ContainerID); !errors.Is(err, ErrNotFound) {
		t.Error("old record still present after Reinstall()")
	}
	if exists, _ := e.fake.Exists(context.Background(), old.ContainerID); exists {
		t.Error("old container still exists after Reinstall()")
	}
}

func TestReinstallUnauthorized(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")

	if _, err := e.registry.Reinstall(context.Background(), rec.ContainerID, "stranger"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Reinstall() by stranger error = %v, want ErrUnauthorized", err)
	}
}

func TestReinstallFailureKeepsOldRecord(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")

	e.fake.FailCreate = true
	if _, err := e.registry.Reinstall(context.Background(), rec.ContainerID, "u"); err == nil {
		t.Fatal("Reinstall() should fail when provisioning fails")
	}

	// The old record stays authoritative
	if _, err := e.registry.Get(rec.ContainerID); err != nil {
		t.Errorf("old record lost after failed Reinstall(): %v", err)
	}
	if exists, _ := e.fake.Exists(context.Background(), rec.ContainerID); !exists {
		t.Error("old container destroyed after failed Reinstall()")
	}
}

func TestDestroyRefund(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")

	if err := e.registry.Destroy(context.Background(), rec.ContainerID, "u"); err != nil {
		t.Fatalf("Destroy() returned error: %v", err)
	}

	// Half the deploy cost comes back, integer division
	if got := e.ledger.Balance("u"); got != 20 {
		t.Errorf("Balance() after destroy = %v, want 20", got)
	}
	if _, err := e.registry.Get(rec.ContainerID); !errors.Is(err, ErrNotFound) {
		t.Error("record still present after Destroy()")
	}
	if e.fake.Count() != 0 {
		t.Errorf("container count = %v, want 0", e.fake.Count())
	}
}

func TestDestroyGiveawayNoRefund(t *testing.T) {
	e := newTestEngine(t)
	rec, err := e.registry.Deploy(context.Background(), "winner", defaultSpec(), DeployOptions{GiveawayGrant: true})
	if err != nil {
		t.Fatalf("Deploy() returned error: %v", err)
	}

	if err := e.registry.Destroy(context.Background(), rec.ContainerID, "winner"); err != nil {
		t.Fatalf("Destroy() returned error: %v", err)
	}
	if got := e.ledger.Balance("winner"); got != 0 {
		t.Errorf("Balance() after giveaway destroy = %v, want 0", got)
	}
}

func TestDestroyByAdminNoRefund(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")

	if err := e.registry.Destroy(context.Background(), rec.ContainerID, "root-admin"); err != nil {
		t.Fatalf("Destroy() returned error: %v", err)
	}
	if got := e.ledger.Balance("u"); got != 0 {
		t.Errorf("Balance() after admin destroy = %v, want 0", got)
	}
}

func TestDestroyRuntimeFailureKeepsRecord(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")

	e.fake.FailDestroy = true
	if err := e.registry.Destroy(context.Background(), rec.ContainerID, "u"); !errors.Is(err, ErrRuntimeFailure) {
		t.Fatalf("Destroy() error = %v, want ErrRuntimeFailure", err)
	}
	if _, err := e.registry.Get(rec.ContainerID); err != nil {
		t.Error("record removed although the runtime teardown failed")
	}
}

func TestAddPort(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")
	ctx := context.Background()

	if err := e.registry.AddPort(ctx, rec.ContainerID, "u", 8080); err != nil {
		t.Fatalf("AddPort() returned error: %v", err)
	}

	got, _ := e.registry.Get(rec.ContainerID)
	if !got.HasPort(8080) {
		t.Error("port 8080 not recorded")
	}

	if err := e.registry.AddPort(ctx, rec.ContainerID, "u", 8080); !errors.Is(err, ErrAlreadyInState) {
		t.Errorf("duplicate AddPort() error = %v, want ErrAlreadyInState", err)
	}
	if err := e.registry.AddPort(ctx, rec.ContainerID, "u", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddPort(0) error = %v, want ErrInvalidArgument", err)
	}
	if err := e.registry.AddPort(ctx, rec.ContainerID, "u", 70000); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddPort(70000) error = %v, want ErrInvalidArgument", err)
	}

	// The runtime must still recognize the container
	e.fake.Destroy(ctx, rec.ContainerID)
	if err := e.registry.AddPort(ctx, rec.ContainerID, "u", 9090); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddPort() on vanished container error = %v, want ErrNotFound", err)
	}
}

func TestMassAddPort(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u1", 40, "test")
	e.ledger.Credit("u2", 40, "test")
	a := e.deploy(t, "u1")
	b := e.deploy(t, "u2")
	ctx := context.Background()

	// b already carries the port, the mass pass must skip it
	if err := e.registry.AddPort(ctx, b.ContainerID, "u2", 8443); err != nil {
		t.Fatalf("AddPort() returned error: %v", err)
	}

	if _, _, err := e.registry.MassAddPort("u1", 8443); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("MassAddPort() by non-admin error = %v, want ErrUnauthorized", err)
	}
	if _, _, err := e.registry.MassAddPort("root-admin", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("MassAddPort(0) error = %v, want ErrInvalidArgument", err)
	}

	updated, skipped, err := e.registry.MassAddPort("root-admin", 8443)
	if err != nil {
		t.Fatalf("MassAddPort() returned error: %v", err)
	}
	if updated != 1 || skipped != 1 {
		t.Errorf("MassAddPort() = (%d updated, %d skipped), want (1, 1)", updated, skipped)
	}

	got, _ := e.registry.Get(a.ContainerID)
	if !got.HasPort(8443) {
		t.Error("port 8443 not recorded on the first VPS")
	}

	// Rerunning must change nothing
	updated, skipped, err = e.registry.MassAddPort("root-admin", 8443)
	if err != nil {
		t.Fatalf("MassAddPort() rerun returned error: %v", err)
	}
	if updated != 0 || skipped != 2 {
		t.Errorf("MassAddPort() rerun = (%d updated, %d skipped), want (0, 2)", updated, skipped)
	}
}

func TestStatsResourceTotals(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u1", 80, "test")
	e.deploy(t, "u1")
	e.deploy(t, "u1")

	s := e.registry.Stats()
	if s.Total != 2 {
		t.Errorf("Stats().Total = %d, want 2", s.Total)
	}
	if s.TotalRAMGB != 16 || s.TotalCPU != 4 || s.TotalDiskGB != 40 {
		t.Errorf("Stats() resource totals = %dGB/%dcpu/%dGB, want 16/4/40",
			s.TotalRAMGB, s.TotalCPU, s.TotalDiskGB)
	}
}

func TestShareUnshare(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")

	if err := e.registry.Share(rec.ContainerID, "friend", "other"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Share() by non-owner error = %v, want ErrUnauthorized", err)
	}
	if err := e.registry.Share(rec.ContainerID, "u", "u"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Share() with owner as grantee error = %v, want ErrInvalidArgument", err)
	}

	if err := e.registry.Share(rec.ContainerID, "u", "friend"); err != nil {
		t.Fatalf("Share() returned error: %v", err)
	}
	if err := e.registry.Share(rec.ContainerID, "u", "friend"); !errors.Is(err, ErrAlreadyInState) {
		t.Errorf("repeat Share() error = %v, want ErrAlreadyInState", err)
	}

	if err := e.registry.Unshare(rec.ContainerID, "u", "friend"); err != nil {
		t.Fatalf("Unshare() returned error: %v", err)
	}
	if err := e.registry.Unshare(rec.ContainerID, "u", "friend"); !errors.Is(err, ErrAlreadyInState) {
		t.Errorf("repeat Unshare() error = %v, want ErrAlreadyInState", err)
	}
}

func TestSuspendUnsuspend(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")
	ctx := context.Background()

	if err := e.registry.Suspend(ctx, rec.ContainerID, "u"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Suspend() by non-admin error = %v, want ErrUnauthorized", err)
	}

	if err := e.registry.Suspend(ctx, rec.ContainerID, "root-admin"); err != nil {
		t.Fatalf("Suspend() returned error: %v", err)
	}
	got, _ := e.registry.Get(rec.ContainerID)
	if got.Active || !got.Suspended || !got.StopConfirmed {
		t.Errorf("after Suspend: active %v suspended %v stopConfirmed %v", got.Active, got.Suspended, got.StopConfirmed)
	}

	// A suspended VPS cannot simply be started
	if err := e.registry.Start(ctx, rec.ContainerID, "u"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Start() on suspended VPS error = %v, want ErrInvalidArgument", err)
	}

	if err := e.registry.Unsuspend(ctx, rec.ContainerID, "root-admin"); err != nil {
		t.Fatalf("Unsuspend() returned error: %v", err)
	}
	got, _ = e.registry.Get(rec.ContainerID)
	if !got.Active || got.Suspended {
		t.Errorf("after Unsuspend: active %v suspended %v", got.Active, got.Suspended)
	}
}

func TestConcurrentDeploySingleCharge(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")

	// Two concurrent deploys with funds for one: exactly one wins
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := e.registry.Deploy(context.Background(), "u", defaultSpec(), DeployOptions{})
			results <- err
		}()
	}

	var failures int
	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			if _, ok := AsInsufficientFunds(err); !ok {
				t.Errorf("unexpected Deploy() error: %v", err)
			}
			failures++
		}
	}

	if failures != 1 {
		t.Errorf("failures = %v, want exactly 1", failures)
	}
	if got := e.ledger.Balance("u"); got != 0 {
		t.Errorf("Balance() = %v, want 0", got)
	}
	if e.fake.Count() != 1 {
		t.Errorf("container count = %v, want 1", e.fake.Count())
	}
}

func TestUnshareLeavesHandedOutCopiesIntact(t *testing.T) {
	e := newTestEngine(t)
	e.ledger.Credit("u", 40, "test")
	rec := e.deploy(t, "u")
	for _, g := range []string{"a", "b", "c"} {
		if err := e.registry.Share(rec.ContainerID, "u", g); err != nil {
			t.Fatalf("Share(%s) returned error: %v", g, err)
		}
	}

	before, _ := e.registry.Get(rec.ContainerID)

	if err := e.registry.Unshare(rec.ContainerID, "u", "a"); err != nil {
		t.Fatalf("Unshare() returned error: %v", err)
	}

	// The copy fetched before the revocation must keep its own list
	if got := before.SharedWith; len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("previously fetched copy mutated: %v, want [a b c]", got)
	}

	after, _ := e.registry.Get(rec.ContainerID)
	if got := after.SharedWith; len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("SharedWith after Unshare = %v, want [b c]", got)
	}
}

func TestAllocatePortReservesInFlight(t *testing.T) {
	e := newTestEngine(t)

	// Two allocations with no record persisted in between must not collide
	a := e.registry.allocatePort()
	b := e.registry.allocatePort()
	if a == b {
		t.Fatalf("allocatePort() handed out %d twice", a)
	}

	// Released ports return to the pool
	e.registry.releasePort(a)
	e.registry.releasePort(b)
	if len(e.registry.inFlight) != 0 {
		t.Errorf("in-flight reservations = %v, want empty", e.registry.inFlight)
	}
}
