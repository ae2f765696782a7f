package store

import (
	"fmt"
	"os"
	"sync"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
)

// maxActivityEvents bounds the durable activity log. Older entries are
// discarded when the bound is exceeded.
const maxActivityEvents = 1000

// Store aggregates every persistent table and document of the engine.
type Store struct {
	Users     *Table[models.UserAccount]
	VPS       *Table[models.VPSRecord]
	Invites   *Table[models.InviteSnapshot]
	Giveaways *Table[models.Giveaway]
	Config    *Document[models.EngineConfig]
	Activity  *Document[[]models.ActivityEvent]
}

var (
	instance *Store
	once     sync.Once
	initErr  error
)

// Init opens every table under dataDir, creating the directory if needed.
func Init(dataDir string) (*Store, error) {
	once.Do(func() {
		instance, initErr = Open(dataDir)
	})
	return instance, initErr
}

// Get returns the global store instance. Init must have been called.
func Get() *Store {
	return instance
}

// Open builds a Store rooted at dataDir without touching the global instance.
// Tests use this directly with a temp directory.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creando directorio de datos: %w", err)
	}

	s := &Store{}
	var err error

	if s.Users, err = NewTable[models.UserAccount](dataDir, "users"); err != nil {
		return nil, err
	}
	if s.VPS, err = NewTable[models.VPSRecord](dataDir, "vps_db"); err != nil {
		return nil, err
	}
	if s.Invites, err = NewTable[models.InviteSnapshot](dataDir, "inv_cache"); err != nil {
		return nil, err
	}
	if s.Giveaways, err = NewTable[models.Giveaway](dataDir, "giveaways"); err != nil {
		return nil, err
	}
	if s.Config, err = NewDocument(dataDir, "config", models.EngineConfig{RenewMode: "15"}); err != nil {
		return nil, err
	}
	if s.Activity, err = NewDocument(dataDir, "activity_log", []models.ActivityEvent{}); err != nil {
		return nil, err
	}

	logger.System(fmt.Sprintf("Almacén de datos listo en '%s' (%d usuarios, %d VPS)",
		dataDir, s.Users.Len(), s.VPS.Len()), "Store")
	return s, nil
}

// AppendActivity records an event in the bounded durable activity log.
func (s *Store) AppendActivity(event models.ActivityEvent) error {
	return s.Activity.Update(func(events []models.ActivityEvent) ([]models.ActivityEvent, error) {
		events = append(events, event)
		if len(events) > maxActivityEvents {
			events = events[len(events)-maxActivityEvents:]
		}
		return events, nil
	})
}
