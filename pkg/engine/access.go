package engine

import (
	"fmt"
	"sort"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/store"
)

// AccessPolicy owns the persisted config document: the granted admin set,
// the log-sink channel and the process-wide renewal mode. Main admins come
// from the environment and cannot be revoked at runtime.
type AccessPolicy struct {
	store      *store.Store
	mainAdmins []string
	recorder   Recorder
}

// NewAccessPolicy builds the policy over the given store.
func NewAccessPolicy(s *store.Store, mainAdmins []string, rec Recorder) *AccessPolicy {
	return &AccessPolicy{
		store:      s,
		mainAdmins: mainAdmins,
		recorder:   rec,
	}
}

// IsAdmin reports whether the user is a main admin or has been granted
// admin at runtime.
func (a *AccessPolicy) IsAdmin(userID string) bool {
	for _, id := range a.mainAdmins {
		if id == userID {
			return true
		}
	}
	for _, id := range a.store.Config.Get().AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Grant adds a user to the persisted admin set.
func (a *AccessPolicy) Grant(userID string) error {
	err := a.store.Config.Update(func(cfg models.EngineConfig) (models.EngineConfig, error) {
		for _, id := range cfg.AdminIDs {
			if id == userID {
				return cfg, fmt.Errorf("%w: %s ya es administrador", ErrAlreadyInState, userID)
			}
		}
		cfg.AdminIDs = append(cfg.AdminIDs, userID)
		return cfg, nil
	})
	if err != nil {
		return err
	}

	logger.Warn(fmt.Sprintf("Administrador añadido: %s", userID), "Access")
	record(a.recorder, "admin_grant", userID, "", "permisos de administrador concedidos")
	return nil
}

// Revoke removes a user from the persisted admin set. Main admins cannot
// be revoked.
func (a *AccessPolicy) Revoke(userID string) error {
	for _, id := range a.mainAdmins {
		if id == userID {
			return fmt.Errorf("%w: %s es administrador principal", ErrInvalidArgument, userID)
		}
	}

	err := a.store.Config.Update(func(cfg models.EngineConfig) (models.EngineConfig, error) {
		for i, id := range cfg.AdminIDs {
			if id == userID {
				cfg.AdminIDs = append(cfg.AdminIDs[:i], cfg.AdminIDs[i+1:]...)
				return cfg, nil
			}
		}
		return cfg, fmt.Errorf("%w: %s no es administrador", ErrNotFound, userID)
	})
	if err != nil {
		return err
	}

	logger.Warn(fmt.Sprintf("Administrador eliminado: %s", userID), "Access")
	record(a.recorder, "admin_revoke", userID, "", "permisos de administrador revocados")
	return nil
}

// Admins returns the full admin set, main admins included, sorted.
func (a *AccessPolicy) Admins() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range a.mainAdmins {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range a.store.Config.Get().AdminIDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// LogChannel returns the configured activity log channel id, empty if unset.
func (a *AccessPolicy) LogChannel() string {
	return a.store.Config.Get().LogChannelID
}

// SetLogChannel persists the activity log channel id.
func (a *AccessPolicy) SetLogChannel(channelID string) error {
	return a.store.Config.Update(func(cfg models.EngineConfig) (models.EngineConfig, error) {
		cfg.LogChannelID = channelID
		return cfg, nil
	})
}

// RenewMode returns the active renewal tier, "15" or "30".
func (a *AccessPolicy) RenewMode() string {
	mode := a.store.Config.Get().RenewMode
	if mode != "30" {
		mode = "15"
	}
	return mode
}

// SetRenewMode switches the process-wide renewal tier.
func (a *AccessPolicy) SetRenewMode(mode string) error {
	if mode != "15" && mode != "30" {
		return fmt.Errorf("%w: modo de renovación desconocido %q", ErrInvalidArgument, mode)
	}
	return a.store.Config.Update(func(cfg models.EngineConfig) (models.EngineConfig, error) {
		cfg.RenewMode = mode
		return cfg, nil
	})
}
