package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/metrics"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/store"
)

// Giveaways manages the giveaway table and resolves ended giveaways into
// provisioned prize VPS. Records are kept forever as history.
type Giveaways struct {
	store    *store.Store
	registry *Registry
	access   *AccessPolicy
	recorder Recorder

	// Overridable for tests
	now     func() time.Time
	pickIdx func(n int) int
}

// NewGiveaways builds the giveaway manager.
func NewGiveaways(s *store.Store, registry *Registry, access *AccessPolicy, rec Recorder) *Giveaways {
	return &Giveaways{
		store:    s,
		registry: registry,
		access:   access,
		recorder: rec,
		now:      time.Now,
		pickIdx:  rand.Intn,
	}
}

// Create opens a new giveaway. Admin-only.
func (g *Giveaways) Create(creatorID, description string, spec models.ResourceSpec, policy models.WinnerPolicy, duration time.Duration) (*models.Giveaway, error) {
	if !g.access.IsAdmin(creatorID) {
		return nil, fmt.Errorf("%w: solo administradores pueden crear giveaways", ErrUnauthorized)
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: política de ganador desconocida %q", ErrInvalidArgument, policy)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: la duración debe ser positiva", ErrInvalidArgument)
	}

	now := g.now()
	ga := models.Giveaway{
		ID:          uuid.NewString(),
		CreatorID:   creatorID,
		Description: description,
		PrizeSpec:   spec,
		Policy:      policy,
		CreatedAt:   now,
		EndTime:     now.Add(duration),
		Status:      models.GiveawayActive,
	}

	if err := g.store.Giveaways.Set(ga.ID, ga); err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Giveaway %s creado por %s", ga.ID, creatorID), "Giveaways")
	record(g.recorder, "giveaway_create", creatorID, "", fmt.Sprintf("%s (termina %s)", ga.ID, ga.EndTime.Format(time.RFC3339)))
	return &ga, nil
}

// Join adds a participant. Joining twice or joining an ended giveaway fails.
func (g *Giveaways) Join(giveawayID, userID string) error {
	return g.store.Giveaways.Update(giveawayID, func(ga models.Giveaway, exists bool) (models.Giveaway, error) {
		if !exists {
			return ga, fmt.Errorf("%w: giveaway %s", ErrNotFound, giveawayID)
		}
		if ga.Status != models.GiveawayActive {
			return ga, fmt.Errorf("%w: el giveaway ya terminó", ErrInvalidArgument)
		}
		if ga.HasParticipant(userID) {
			return ga, fmt.Errorf("%w: ya participas en este giveaway", ErrAlreadyInState)
		}
		ga.Participants = append(ga.Participants, userID)
		return ga, nil
	})
}

// Get returns one giveaway.
func (g *Giveaways) Get(giveawayID string) (models.Giveaway, error) {
	ga, ok := g.store.Giveaways.Get(giveawayID)
	if !ok {
		return models.Giveaway{}, fmt.Errorf("%w: giveaway %s", ErrNotFound, giveawayID)
	}
	return ga, nil
}

// Active returns the giveaways still open, oldest first.
func (g *Giveaways) Active() []models.Giveaway {
	var out []models.Giveaway
	for _, ga := range g.store.Giveaways.All() {
		if ga.Status == models.GiveawayActive {
			out = append(out, ga)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.Before(out[j].EndTime) })
	return out
}

// Ended returns resolved giveaways, most recent first, capped at limit.
// Ended records carry the winner info for the history listing.
func (g *Giveaways) Ended(limit int) []models.Giveaway {
	var out []models.Giveaway
	for _, ga := range g.store.Giveaways.All() {
		if ga.Status == models.GiveawayEnded {
			out = append(out, ga)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.After(out[j].EndTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ResolveDue resolves every active giveaway whose end time has passed and
// returns how many were resolved. Provisioning failures for one participant
// never abort the rest.
func (g *Giveaways) ResolveDue(ctx context.Context) int {
	now := g.now()
	resolved := 0
	for _, ga := range g.store.Giveaways.All() {
		if ga.Status != models.GiveawayActive || ga.EndTime.After(now) {
			continue
		}
		g.resolve(ctx, ga)
		resolved++
	}
	return resolved
}

// resolve runs one ended giveaway to completion. Entry closes before any
// provisioning starts, so a join racing the resolution fails instead of
// landing in a record about to be overwritten.
func (g *Giveaways) resolve(ctx context.Context, ga models.Giveaway) {
	if err := g.store.Giveaways.Update(ga.ID, func(cur models.Giveaway, exists bool) (models.Giveaway, error) {
		if !exists {
			return cur, fmt.Errorf("%w: giveaway %s", ErrNotFound, ga.ID)
		}
		cur.Status = models.GiveawayEnded
		ga = cur
		return cur, nil
	}); err != nil {
		logger.Error(fmt.Sprintf("No se pudo cerrar el giveaway %s: %v", ga.ID, err), "Giveaways")
		return
	}

	if len(ga.Participants) == 0 {
		g.finish(ga.ID, func(cur *models.Giveaway) { cur.NoParticipants = true })
		logger.Info(fmt.Sprintf("Giveaway %s terminó sin participantes", ga.ID), "Giveaways")
		record(g.recorder, "giveaway_end", ga.CreatorID, "", fmt.Sprintf("%s: sin participantes", ga.ID))
		metrics.GiveawaysResolved.Inc()
		return
	}

	var winners []string
	var winnerID string
	switch ga.Policy {
	case models.WinnerAllParticipants:
		winners = ga.Participants
	default:
		winnerID = ga.Participants[g.pickIdx(len(ga.Participants))]
		winners = []string{winnerID}
	}

	created := 0
	winnerVPSID := ""
	for _, winner := range winners {
		rec, err := g.registry.Deploy(ctx, winner, ga.PrizeSpec, DeployOptions{GiveawayGrant: true})
		if err != nil {
			logger.Error(fmt.Sprintf("Premio del giveaway %s falló para %s: %v", ga.ID, winner, err), "Giveaways")
			continue
		}
		created++
		if ga.Policy != models.WinnerAllParticipants {
			winnerVPSID = rec.ContainerID
		}
	}

	g.finish(ga.ID, func(cur *models.Giveaway) {
		cur.WinnerID = winnerID
		cur.WinnerVPSID = winnerVPSID
		cur.SuccessfulCreations = created
		cur.VPSCreated = created > 0
	})

	logger.Success(fmt.Sprintf("Giveaway %s resuelto: %d premio(s) entregado(s)", ga.ID, created), "Giveaways")
	record(g.recorder, "giveaway_end", ga.CreatorID, "",
		fmt.Sprintf("%s: %d de %d premios creados", ga.ID, created, len(winners)))
	metrics.GiveawaysResolved.Inc()
}

// finish merges resolution results into the stored record without touching
// any other field.
func (g *Giveaways) finish(giveawayID string, apply func(*models.Giveaway)) {
	if err := g.store.Giveaways.Update(giveawayID, func(cur models.Giveaway, exists bool) (models.Giveaway, error) {
		if !exists {
			return cur, fmt.Errorf("%w: giveaway %s", ErrNotFound, giveawayID)
		}
		apply(&cur)
		return cur, nil
	}); err != nil {
		logger.Error(fmt.Sprintf("No se pudo guardar el resultado del giveaway %s: %v", giveawayID, err), "Giveaways")
	}
}
