package session

import (
	"time"

	"github.com/pomistea/turtle-escape/game/engine"
	"github.com/pomistea/turtle-escape/game/service"
)

// SessionPersistence is the storage contract for sessions. The manager
// writes through on create, faults in on lookup misses, and the
// filesystem sync routine uses Exists to detect deleted files.
type SessionPersistence interface {
	Save(session *service.Session) error
	Load(id string) (*service.Session, error)
	Delete(id string) error
	ListAll() ([]string, error)
	Exists(id string) bool
}

// PersistedSessionData is the on-disk JSON shape of one session. The
// config is stored by ID so a restore re-reads and re-validates the
// board file instead of trusting a stale embedded copy.
type PersistedSessionData struct {
	ID             string            `json:"id"`
	ConfigName     string            `json:"config_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}
