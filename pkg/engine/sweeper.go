package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/metrics"
)

// Sweeper runs the two periodic background passes: expiry suspension and
// giveaway resolution. A tick always finishes its full pass before the next
// one starts; items are never cancelled mid-processing.
type Sweeper struct {
	registry  *Registry
	giveaways *Giveaways

	expiryInterval   time.Duration
	giveawayInterval time.Duration

	stop chan struct{}
	done chan struct{}

	// Overridable for tests
	now func() time.Time
}

// NewSweeper builds the sweeper with its tick intervals.
func NewSweeper(registry *Registry, giveaways *Giveaways, expiryInterval, giveawayInterval time.Duration) *Sweeper {
	return &Sweeper{
		registry:         registry,
		giveaways:        giveaways,
		expiryInterval:   expiryInterval,
		giveawayInterval: giveawayInterval,
		stop:             make(chan struct{}),
		done:             make(chan struct{}),
		now:              time.Now,
	}
}

// Start launches both sweep loops. Call Stop to end them.
func (s *Sweeper) Start(ctx context.Context) {
	go s.loop(ctx, s.expiryInterval, func() {
		if n := s.SweepExpired(ctx); n > 0 {
			logger.Info(fmt.Sprintf("Barrido de expiración: %d VPS suspendidos", n), "Sweeper")
		}
		metrics.ExpirySweeps.Inc()
	})

	go s.loop(ctx, s.giveawayInterval, func() {
		if n := s.giveaways.ResolveDue(ctx); n > 0 {
			logger.Info(fmt.Sprintf("Barrido de giveaways: %d resueltos", n), "Sweeper")
		}
	})

	logger.System(fmt.Sprintf("Barridos iniciados (expiración cada %v, giveaways cada %v)",
		s.expiryInterval, s.giveawayInterval), "Sweeper")
}

// Stop ends both loops after their current tick completes.
func (s *Sweeper) Stop() {
	close(s.stop)
}

func (s *Sweeper) loop(ctx context.Context, interval time.Duration, tick func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			tick()
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// SweepExpired suspends every active VPS past its expiry and returns how
// many were suspended. A failed stop still suspends the record: Suspended is
// lifecycle truth, StopConfirmed records whether the runtime obeyed, and
// already suspended VPS are skipped on later ticks.
func (s *Sweeper) SweepExpired(ctx context.Context) int {
	now := s.now()
	suspended := 0

	for id, rec := range s.registry.store.VPS.All() {
		if !rec.Active || rec.Suspended || rec.ExpiresAt.After(now) {
			continue
		}

		unlock := s.registry.containers.Lock(id)
		// Reload under the lock: a renew may have raced the sweep
		current, ok := s.registry.store.VPS.Get(id)
		if !ok || !current.Active || current.Suspended || current.ExpiresAt.After(now) {
			unlock()
			continue
		}

		logger.Warn(fmt.Sprintf("VPS %s expiró (venció %s)", id, current.ExpiresAt.Format("2006-01-02 15:04")), "Sweeper")
		s.registry.suspendLocked(ctx, &current, "sweeper", "expirado")
		unlock()

		suspended++
		metrics.SuspendedBySweep.Inc()
	}
	return suspended
}
