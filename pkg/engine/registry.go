package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/config"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/metrics"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/runtime"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/store"
)

// Host ports for published VPS endpoints are drawn from this range.
const (
	portRangeStart = 3000
	portRangeEnd   = 4000
)

// Registry owns the VPS table. It is the only component that calls the
// runtime adapter, and every mutating operation passes through its
// authorization gate.
type Registry struct {
	store      *store.Store
	runtime    runtime.Adapter
	ledger     *Ledger
	access     *AccessPolicy
	recorder   Recorder
	cfg        *config.Config
	containers *keyedMutex

	// Ports reserved by provisioning attempts whose record is not yet
	// persisted, so concurrent deploys never pick the same host port.
	portMu   sync.Mutex
	inFlight map[int]bool

	// Overridable for tests
	now          func() time.Time
	readyTimeout time.Duration
	readyPoll    time.Duration
}

// DeployOptions tunes a provisioning request.
type DeployOptions struct {
	// GiveawayGrant marks the VPS as a giveaway prize: free and never
	// renewable.
	GiveawayGrant bool

	// PaidPlan marks a custom paid plan, as opposed to the default spec.
	PaidPlan bool

	// Free skips the deploy charge, used for admin-created VPS and
	// giveaway prizes.
	Free bool
}

// NewRegistry builds the registry over its collaborators.
func NewRegistry(s *store.Store, rt runtime.Adapter, ledger *Ledger, access *AccessPolicy, cfg *config.Config, rec Recorder) *Registry {
	return &Registry{
		store:        s,
		runtime:      rt,
		ledger:       ledger,
		access:       access,
		recorder:     rec,
		cfg:          cfg,
		containers:   newKeyedMutex(),
		inFlight:     make(map[int]bool),
		now:          time.Now,
		readyTimeout: 90 * time.Second,
		readyPoll:    2 * time.Second,
	}
}

// Deploy provisions a VPS for owner and charges the deploy cost. The whole
// check-provision-debit sequence holds the owner's ledger lock, so a
// double-submitted deploy cannot over-spend. The charge lands only after the
// container is confirmed provisioned.
func (r *Registry) Deploy(ctx context.Context, owner string, spec models.ResourceSpec, opts DeployOptions) (*models.VPSRecord, error) {
	unlock := r.ledger.LockUser(owner)
	defer unlock()

	cost := r.cfg.DeployCost
	if opts.GiveawayGrant {
		opts.Free = true
	}
	if !opts.Free {
		if have := r.ledger.Balance(owner); have < cost {
			metrics.Deploys.WithLabelValues("rejected").Inc()
			return nil, &InsufficientFundsError{Need: cost, Have: have}
		}
	}

	rec, err := r.provision(ctx, owner, spec, opts, nil)
	if err != nil {
		metrics.Deploys.WithLabelValues("failed").Inc()
		return nil, err
	}

	if !opts.Free {
		if err := r.ledger.Debit(owner, cost, "despliegue de VPS"); err != nil {
			// The balance was checked under the same lock, so this only
			// happens on a store write failure. The VPS stays granted.
			logger.Critical(fmt.Sprintf("VPS %s creado pero el cobro falló: %v", rec.ContainerID, err), "Registry")
		} else {
			metrics.PointsSpent.Add(float64(cost))
		}
	}

	metrics.Deploys.WithLabelValues("ok").Inc()
	metrics.ActiveVPS.Inc()
	record(r.recorder, "deploy", owner, rec.ContainerID,
		fmt.Sprintf("%dGB RAM, %d CPU, %dGB disco, puerto %d", spec.RAMGB, spec.CPU, spec.DiskGB, rec.HTTPPort))
	return rec, nil
}

// provision allocates the container, waits for it to respond, runs the
// best-effort bootstrap and persists the record. The record is written only
// after the runtime confirms the container exists and a port was allocated.
// expiresAt, when non-nil, overrides the standard lifetime (reinstall).
func (r *Registry) provision(ctx context.Context, owner string, spec models.ResourceSpec, opts DeployOptions, expiresAt *time.Time) (*models.VPSRecord, error) {
	port := r.allocatePort()
	defer r.releasePort(port)
	name := fmt.Sprintf("chunkhost-%s-%s", owner, uuid.NewString()[:8])

	id, err := r.runtime.Create(ctx, runtime.CreateOptions{
		Name:     name,
		Image:    r.cfg.DockerImage,
		Spec:     spec,
		HostPort: port,
	})
	if err != nil {
		return nil, runtimeErr(err)
	}

	if err := r.waitResponsive(ctx, id); err != nil {
		// Unusable container, tear it down so no orphan survives.
		if destroyErr := r.runtime.Destroy(ctx, id); destroyErr != nil {
			logger.Error(fmt.Sprintf("No se pudo limpiar el contenedor %s: %v", id, destroyErr), "Registry")
		}
		return nil, runtimeErr(err)
	}

	systemctlWorking := r.bootstrap(ctx, id)
	ssh := r.captureSSH(ctx, id)

	now := r.now()
	expiry := now.Add(time.Duration(r.cfg.LifetimeDays) * 24 * time.Hour)
	if expiresAt != nil {
		expiry = *expiresAt
	}

	rec := models.VPSRecord{
		ContainerID:      id,
		Owner:            owner,
		Spec:             spec,
		HTTPPort:         port,
		SSH:              ssh,
		CreatedAt:        now,
		ExpiresAt:        expiry,
		Active:           true,
		PaidPlan:         opts.PaidPlan,
		GiveawayGrant:    opts.GiveawayGrant,
		SystemctlWorking: systemctlWorking,
	}

	if err := r.store.VPS.Set(id, rec); err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("VPS %s desplegado para %s", id, owner), "Registry")
	return &rec, nil
}

// waitResponsive polls the runtime until the container reports running.
func (r *Registry) waitResponsive(ctx context.Context, id string) error {
	deadline := time.After(r.readyTimeout)
	for {
		running, err := r.runtime.Running(ctx, id)
		if err == nil && running {
			return nil
		}

		select {
		case <-deadline:
			return fmt.Errorf("el contenedor %s no respondió a tiempo", id)
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.readyPoll):
		}
	}
}

// bootstrapStep is one best-effort setup command run inside a new container.
type bootstrapStep struct {
	name    string
	cmd     []string
	timeout time.Duration
}

// bootstrap runs the in-container setup and probes whether systemd is
// usable. Step failures are logged individually and never abort the
// provision; the probe result becomes the record's degraded-capability flag.
func (r *Registry) bootstrap(ctx context.Context, id string) bool {
	steps := []bootstrapStep{
		{"apt-update", []string{"bash", "-c", "apt-get update -y"}, 2 * time.Minute},
		{"install-tools", []string{"bash", "-c", "apt-get install -y tmate openssh-server sudo"}, 5 * time.Minute},
		{"enable-ssh", []string{"bash", "-c", "systemctl enable --now ssh"}, time.Minute},
	}

	for _, step := range steps {
		res, err := r.runtime.Exec(ctx, id, step.cmd, step.timeout)
		if err != nil {
			logger.Warn(fmt.Sprintf("Paso '%s' falló en %s: %v", step.name, id, err), "Bootstrap")
			continue
		}
		if !res.Ok() {
			logger.Warn(fmt.Sprintf("Paso '%s' salió con código %d en %s", step.name, res.ExitCode, id), "Bootstrap")
		}
	}

	probe, err := r.runtime.Exec(ctx, id, []string{"systemctl", "is-system-running"}, 30*time.Second)
	if err != nil {
		logger.Warn(fmt.Sprintf("Sonda de systemctl falló en %s: %v", id, err), "Bootstrap")
		return false
	}
	// "degraded" still means systemd answers; only a failed exec or a
	// non-systemd environment leaves the flag off.
	state := strings.TrimSpace(probe.Stdout)
	return probe.Ok() || state == "degraded" || state == "running"
}

// captureSSH starts a detached tmate session inside the container and reads
// back its SSH connection string. Best-effort: failures leave it empty.
func (r *Registry) captureSSH(ctx context.Context, id string) string {
	sock := fmt.Sprintf("/tmp/tmate-%s.sock", uuid.NewString()[:8])

	cmds := [][]string{
		{"tmate", "-S", sock, "new-session", "-d"},
		{"tmate", "-S", sock, "wait", "tmate-ready"},
	}
	for _, cmd := range cmds {
		if res, err := r.runtime.Exec(ctx, id, cmd, time.Minute); err != nil || !res.Ok() {
			logger.Warn(fmt.Sprintf("No se pudo preparar tmate en %s", id), "Bootstrap")
			return ""
		}
	}

	res, err := r.runtime.Exec(ctx, id, []string{"tmate", "-S", sock, "display", "-p", "#{tmate_ssh}"}, 30*time.Second)
	if err != nil || !res.Ok() {
		logger.Warn(fmt.Sprintf("No se pudo capturar el SSH de %s", id), "Bootstrap")
		return ""
	}
	return strings.TrimSpace(res.Stdout)
}

// allocatePort reserves a host port in the published range used by no
// existing record and no provisioning still in flight. The reservation
// lasts until releasePort.
func (r *Registry) allocatePort() int {
	r.portMu.Lock()
	defer r.portMu.Unlock()

	used := make(map[int]bool, len(r.inFlight))
	for port := range r.inFlight {
		used[port] = true
	}
	for _, rec := range r.store.VPS.All() {
		used[rec.HTTPPort] = true
	}

	pick := -1
	for i := 0; i < 200 && pick < 0; i++ {
		if port := portRangeStart + rand.Intn(portRangeEnd-portRangeStart); !used[port] {
			pick = port
		}
	}
	if pick < 0 {
		// Range nearly exhausted, scan sequentially
		for port := portRangeStart; port < portRangeEnd; port++ {
			if !used[port] {
				pick = port
				break
			}
		}
	}
	if pick < 0 {
		pick = portRangeStart
	}

	r.inFlight[pick] = true
	return pick
}

// releasePort drops the in-flight reservation. Once the record is persisted
// the store itself keeps the port off the free list.
func (r *Registry) releasePort(port int) {
	r.portMu.Lock()
	delete(r.inFlight, port)
	r.portMu.Unlock()
}

// Get returns the record for a container id.
func (r *Registry) Get(containerID string) (models.VPSRecord, error) {
	rec, ok := r.store.VPS.Get(containerID)
	if !ok {
		return models.VPSRecord{}, fmt.Errorf("%w: VPS %s", ErrNotFound, containerID)
	}
	return rec, nil
}

// Authorize returns the record iff user is an admin, the owner or in
// shared_with. Every mutating operation calls this first.
func (r *Registry) Authorize(userID, containerID string) (models.VPSRecord, error) {
	rec, err := r.Get(containerID)
	if err != nil {
		return models.VPSRecord{}, err
	}
	if r.access.IsAdmin(userID) || rec.Owner == userID || rec.IsSharedWith(userID) {
		return rec, nil
	}
	return models.VPSRecord{}, fmt.Errorf("%w: el VPS %s no es tuyo", ErrUnauthorized, containerID)
}

// Start starts a stopped VPS. Suspended VPS must be renewed or unsuspended
// first.
func (r *Registry) Start(ctx context.Context, containerID, actor string) error {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	rec, err := r.Authorize(actor, containerID)
	if err != nil {
		return err
	}
	if rec.Suspended {
		return fmt.Errorf("%w: el VPS está suspendido, renuévalo primero", ErrInvalidArgument)
	}
	if rec.Active {
		return fmt.Errorf("%w: el VPS ya está encendido", ErrAlreadyInState)
	}

	if err := r.runtime.Start(ctx, containerID); err != nil {
		return runtimeErr(err)
	}

	rec.Active = true
	rec.StopConfirmed = false
	if err := r.store.VPS.Set(containerID, rec); err != nil {
		return err
	}

	metrics.ActiveVPS.Inc()
	record(r.recorder, "start", actor, containerID, "")
	return nil
}

// Stop stops a running VPS.
func (r *Registry) Stop(ctx context.Context, containerID, actor string) error {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	rec, err := r.Authorize(actor, containerID)
	if err != nil {
		return err
	}
	if !rec.Active {
		return fmt.Errorf("%w: el VPS ya está apagado", ErrAlreadyInState)
	}

	if err := r.runtime.Stop(ctx, containerID); err != nil {
		return runtimeErr(err)
	}

	rec.Active = false
	rec.StopConfirmed = true
	if err := r.store.VPS.Set(containerID, rec); err != nil {
		return err
	}

	metrics.ActiveVPS.Dec()
	record(r.recorder, "stop", actor, containerID, "")
	return nil
}

// Restart restarts a VPS and clears suspension.
func (r *Registry) Restart(ctx context.Context, containerID, actor string) error {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	rec, err := r.Authorize(actor, containerID)
	if err != nil {
		return err
	}

	if err := r.runtime.Restart(ctx, containerID); err != nil {
		return runtimeErr(err)
	}

	wasActive := rec.Active
	rec.Active = true
	rec.Suspended = false
	rec.StopConfirmed = false
	if err := r.store.VPS.Set(containerID, rec); err != nil {
		return err
	}

	if !wasActive {
		metrics.ActiveVPS.Inc()
	}
	record(r.recorder, "restart", actor, containerID, "")
	return nil
}

// RenewTier returns the cost and extension of the active renewal mode.
func (r *Registry) RenewTier() (cost int, duration time.Duration) {
	if r.access.RenewMode() == "30" {
		return r.cfg.RenewCost30, 30 * 24 * time.Hour
	}
	return r.cfg.RenewCost15, 15 * 24 * time.Hour
}

// Renew charges the actor and extends the VPS lifetime by the active tier.
// Giveaway grants are never renewable. A VPS past its expiry restarts its
// window from now, not from the stale expiry.
func (r *Registry) Renew(ctx context.Context, containerID, actor string) error {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	rec, err := r.Authorize(actor, containerID)
	if err != nil {
		return err
	}
	if rec.GiveawayGrant {
		return fmt.Errorf("%w: los VPS de giveaway no se pueden renovar", ErrInvalidArgument)
	}

	cost, duration := r.RenewTier()

	userUnlock := r.ledger.LockUser(actor)
	defer userUnlock()

	if err := r.ledger.Debit(actor, cost, "renovación de VPS"); err != nil {
		return err
	}
	metrics.PointsSpent.Add(float64(cost))

	base := r.now()
	if rec.ExpiresAt.After(base) {
		base = rec.ExpiresAt
	}
	rec.ExpiresAt = base.Add(duration)
	wasSuspended := rec.Suspended
	rec.Suspended = false

	if !rec.Active {
		if err := r.runtime.Start(ctx, containerID); err != nil {
			// The renewal stands; the container can be started manually.
			logger.Error(fmt.Sprintf("VPS %s renovado pero no arrancó: %v", containerID, err), "Registry")
		} else {
			rec.Active = true
			rec.StopConfirmed = false
			metrics.ActiveVPS.Inc()
		}
	}

	if err := r.store.VPS.Set(containerID, rec); err != nil {
		return err
	}

	metrics.Renewals.Inc()
	details := fmt.Sprintf("-%d puntos, expira %s", cost, rec.ExpiresAt.Format("2006-01-02"))
	if wasSuspended {
		details += " (reactivado)"
	}
	record(r.recorder, "renew", actor, containerID, details)
	return nil
}

// Reinstall destroys and re-provisions the VPS with the same owner and spec,
// preserving expires_at exactly. The registry entry is swapped only after the
// new container is confirmed provisioned; on failure the old record stays
// authoritative.
func (r *Registry) Reinstall(ctx context.Context, containerID, actor string) (*models.VPSRecord, error) {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	old, err := r.Authorize(actor, containerID)
	if err != nil {
		return nil, err
	}

	opts := DeployOptions{
		GiveawayGrant: old.GiveawayGrant,
		PaidPlan:      old.PaidPlan,
		Free:          true,
	}
	fresh, err := r.provision(ctx, old.Owner, old.Spec, opts, &old.ExpiresAt)
	if err != nil {
		return nil, err
	}

	// Carry access and lifecycle state over to the new record. A suspended
	// VPS stays suspended: suspended implies not active.
	fresh.SharedWith = old.SharedWith
	if old.Suspended {
		fresh.Suspended = true
		fresh.Active = false
		if err := r.runtime.Stop(ctx, fresh.ContainerID); err != nil {
			logger.Warn(fmt.Sprintf("Nuevo contenedor %s no se pudo detener tras reinstalar: %v", fresh.ContainerID, err), "Registry")
			fresh.StopConfirmed = false
		} else {
			fresh.StopConfirmed = true
		}
	}
	if err := r.store.VPS.Set(fresh.ContainerID, *fresh); err != nil {
		return nil, err
	}

	if err := r.store.VPS.Delete(containerID); err != nil {
		return nil, err
	}
	if err := r.runtime.Destroy(ctx, containerID); err != nil {
		logger.Error(fmt.Sprintf("Contenedor antiguo %s no se pudo eliminar: %v", containerID, err), "Registry")
	}

	record(r.recorder, "reinstall", actor, fresh.ContainerID, fmt.Sprintf("reemplaza a %s", containerID))
	return fresh, nil
}

// Destroy tears down the container and removes its record. Unless the VPS is
// a giveaway grant or the actor is an admin, the owner is refunded half the
// deploy cost.
func (r *Registry) Destroy(ctx context.Context, containerID, actor string) error {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	rec, err := r.Authorize(actor, containerID)
	if err != nil {
		return err
	}

	if err := r.runtime.Destroy(ctx, containerID); err != nil {
		return runtimeErr(err)
	}

	if err := r.store.VPS.Delete(containerID); err != nil {
		return err
	}

	refund := 0
	if !rec.GiveawayGrant && !r.access.IsAdmin(actor) {
		refund = r.cfg.DeployCost / 2
		if err := r.ledger.Credit(rec.Owner, refund, "reembolso por eliminar VPS"); err != nil {
			logger.Error(fmt.Sprintf("Reembolso a %s falló: %v", rec.Owner, err), "Registry")
		}
	}

	if rec.Active {
		metrics.ActiveVPS.Dec()
	}
	metrics.Destroys.Inc()
	record(r.recorder, "destroy", actor, containerID, fmt.Sprintf("reembolso de %d puntos", refund))
	return nil
}

// Share grants co-management to another user. Owner-only.
func (r *Registry) Share(containerID, actor, grantee string) error {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	rec, err := r.Get(containerID)
	if err != nil {
		return err
	}
	if rec.Owner != actor {
		return fmt.Errorf("%w: solo el dueño puede compartir el VPS", ErrUnauthorized)
	}
	if grantee == rec.Owner {
		return fmt.Errorf("%w: ya eres el dueño", ErrInvalidArgument)
	}
	if rec.IsSharedWith(grantee) {
		return fmt.Errorf("%w: ya compartido con %s", ErrAlreadyInState, grantee)
	}

	rec.SharedWith = append(rec.SharedWith, grantee)
	if err := r.store.VPS.Set(containerID, rec); err != nil {
		return err
	}

	record(r.recorder, "share", actor, containerID, fmt.Sprintf("acceso concedido a %s", grantee))
	return nil
}

// Unshare revokes co-management. Owner-only.
func (r *Registry) Unshare(containerID, actor, grantee string) error {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	rec, err := r.Get(containerID)
	if err != nil {
		return err
	}
	if rec.Owner != actor {
		return fmt.Errorf("%w: solo el dueño puede revocar acceso", ErrUnauthorized)
	}
	if !rec.IsSharedWith(grantee) {
		return fmt.Errorf("%w: no estaba compartido con %s", ErrAlreadyInState, grantee)
	}

	// Copies of this record share the slice's backing array, so the
	// removal must build a fresh one.
	kept := make([]string, 0, len(rec.SharedWith)-1)
	for _, id := range rec.SharedWith {
		if id != grantee {
			kept = append(kept, id)
		}
	}
	rec.SharedWith = kept
	if err := r.store.VPS.Set(containerID, rec); err != nil {
		return err
	}

	record(r.recorder, "unshare", actor, containerID, fmt.Sprintf("acceso revocado a %s", grantee))
	return nil
}

// AddPort records an extra port for the VPS after confirming the runtime
// still recognizes the container.
func (r *Registry) AddPort(ctx context.Context, containerID, actor string, port int) error {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	rec, err := r.Authorize(actor, containerID)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: puerto %d fuera de rango", ErrInvalidArgument, port)
	}
	if rec.HasPort(port) || rec.HTTPPort == port {
		return fmt.Errorf("%w: el puerto %d ya está registrado", ErrAlreadyInState, port)
	}

	exists, err := r.runtime.Exists(ctx, containerID)
	if err != nil {
		return runtimeErr(err)
	}
	if !exists {
		return fmt.Errorf("%w: el contenedor %s ya no existe en el runtime", ErrNotFound, containerID)
	}

	rec.AdditionalPorts = append(rec.AdditionalPorts, port)
	if err := r.store.VPS.Set(containerID, rec); err != nil {
		return err
	}

	record(r.recorder, "add_port", actor, containerID, fmt.Sprintf("puerto %d", port))
	return nil
}

// MassAddPort records the port on every VPS at once. Records that already
// carry the port are skipped, not failed, so the operation is safe to rerun.
// Admin-only. Returns how many records were updated and how many skipped.
func (r *Registry) MassAddPort(actor string, port int) (updated, skipped int, err error) {
	if !r.access.IsAdmin(actor) {
		return 0, 0, fmt.Errorf("%w: solo administradores pueden agregar puertos en masa", ErrUnauthorized)
	}
	if port < 1 || port > 65535 {
		return 0, 0, fmt.Errorf("%w: puerto %d fuera de rango", ErrInvalidArgument, port)
	}

	for _, rec := range r.store.VPS.All() {
		unlock := r.containers.Lock(rec.ContainerID)
		cur, getErr := r.Get(rec.ContainerID)
		if getErr != nil {
			unlock()
			continue
		}
		if cur.HasPort(port) || cur.HTTPPort == port {
			unlock()
			skipped++
			continue
		}
		cur.AdditionalPorts = append(cur.AdditionalPorts, port)
		if setErr := r.store.VPS.Set(cur.ContainerID, cur); setErr != nil {
			unlock()
			return updated, skipped, setErr
		}
		unlock()
		updated++
	}

	record(r.recorder, "mass_add_port", actor, "", fmt.Sprintf("puerto %d agregado a %d VPS", port, updated))
	return updated, skipped, nil
}

// Suspend stops a VPS and marks it suspended. Admin-only; the expiry sweeper
// uses the same path. Suspension sticks even if the stop fails: Suspended is
// lifecycle truth, StopConfirmed tracks whether the runtime obeyed.
func (r *Registry) Suspend(ctx context.Context, containerID, actor string) error {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	if !r.access.IsAdmin(actor) {
		return fmt.Errorf("%w: solo administradores pueden suspender", ErrUnauthorized)
	}
	rec, err := r.Get(containerID)
	if err != nil {
		return err
	}
	if rec.Suspended {
		return fmt.Errorf("%w: el VPS ya está suspendido", ErrAlreadyInState)
	}

	r.suspendLocked(ctx, &rec, actor, "suspendido por administrador")
	return nil
}

// suspendLocked applies the suspension to an already locked record.
func (r *Registry) suspendLocked(ctx context.Context, rec *models.VPSRecord, actor, reason string) {
	stopConfirmed := true
	if err := r.runtime.Stop(ctx, rec.ContainerID); err != nil {
		logger.Error(fmt.Sprintf("Stop de %s falló durante la suspensión: %v", rec.ContainerID, err), "Registry")
		stopConfirmed = false
	}

	wasActive := rec.Active
	rec.Active = false
	rec.Suspended = true
	rec.StopConfirmed = stopConfirmed
	if err := r.store.VPS.Set(rec.ContainerID, *rec); err != nil {
		logger.Error(fmt.Sprintf("No se pudo persistir la suspensión de %s: %v", rec.ContainerID, err), "Registry")
		return
	}

	if wasActive {
		metrics.ActiveVPS.Dec()
	}
	record(r.recorder, "suspend", actor, rec.ContainerID, reason)
}

// Unsuspend lifts a suspension and starts the container. Admin-only.
func (r *Registry) Unsuspend(ctx context.Context, containerID, actor string) error {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	if !r.access.IsAdmin(actor) {
		return fmt.Errorf("%w: solo administradores pueden reactivar", ErrUnauthorized)
	}
	rec, err := r.Get(containerID)
	if err != nil {
		return err
	}
	if !rec.Suspended {
		return fmt.Errorf("%w: el VPS no está suspendido", ErrAlreadyInState)
	}

	rec.Suspended = false
	if err := r.runtime.Start(ctx, containerID); err != nil {
		logger.Error(fmt.Sprintf("VPS %s reactivado pero no arrancó: %v", containerID, err), "Registry")
	} else {
		rec.Active = true
		rec.StopConfirmed = false
		metrics.ActiveVPS.Inc()
	}

	if err := r.store.VPS.Set(containerID, rec); err != nil {
		return err
	}

	record(r.recorder, "unsuspend", actor, containerID, "")
	return nil
}

// ResetSSH captures a fresh shell-access string for the VPS.
func (r *Registry) ResetSSH(ctx context.Context, containerID, actor string) (string, error) {
	unlock := r.containers.Lock(containerID)
	defer unlock()

	rec, err := r.Authorize(actor, containerID)
	if err != nil {
		return "", err
	}
	if !rec.Active {
		return "", fmt.Errorf("%w: el VPS debe estar encendido", ErrInvalidArgument)
	}

	ssh := r.captureSSH(ctx, containerID)
	if ssh == "" {
		return "", fmt.Errorf("%w: no se pudo generar una nueva sesión SSH", ErrRuntimeFailure)
	}

	rec.SSH = ssh
	if err := r.store.VPS.Set(containerID, rec); err != nil {
		return "", err
	}

	record(r.recorder, "reset_ssh", actor, containerID, "")
	return ssh, nil
}

// ListByOwner returns the records a user owns or co-manages.
func (r *Registry) ListByOwner(userID string) []models.VPSRecord {
	var out []models.VPSRecord
	for _, rec := range r.store.VPS.All() {
		if rec.Owner == userID || rec.IsSharedWith(userID) {
			out = append(out, rec)
		}
	}
	return out
}

// ListAll returns every record, for admin listings.
func (r *Registry) ListAll() []models.VPSRecord {
	all := r.store.VPS.All()
	out := make([]models.VPSRecord, 0, len(all))
	for _, rec := range all {
		out = append(out, rec)
	}
	return out
}

// Stats summarizes the pool for the status surfaces. The resource totals
// sum the plan of every record, suspended ones included.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Suspended int `json:"suspended"`
	Giveaway  int `json:"giveaway"`

	TotalRAMGB  int `json:"total_ram_gb"`
	TotalCPU    int `json:"total_cpu"`
	TotalDiskGB int `json:"total_disk_gb"`
}

// Stats computes pool counters.
func (r *Registry) Stats() Stats {
	var s Stats
	for _, rec := range r.store.VPS.All() {
		s.Total++
		if rec.Active {
			s.Active++
		}
		if rec.Suspended {
			s.Suspended++
		}
		if rec.GiveawayGrant {
			s.Giveaway++
		}
		s.TotalRAMGB += rec.Spec.RAMGB
		s.TotalCPU += rec.Spec.CPU
		s.TotalDiskGB += rec.Spec.DiskGB
	}
	return s
}
