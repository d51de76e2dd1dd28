package session

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Manager routes component interactions to the session loop that
// registered their custom-id prefix. Sessions are in-memory only; a
// restart orphans any controls still on screen.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]chan *discordgo.InteractionCreate
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]chan *discordgo.InteractionCreate)}
}

// open registers a session id and returns its event channel.
func (m *Manager) open(id string) chan *discordgo.InteractionCreate {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *discordgo.InteractionCreate, 8)
	m.sessions[id] = ch
	return ch
}

func (m *Manager) close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}

// Dispatch routes a component interaction to its session. Interactions for
// unknown (expired) sessions are dropped and reported false.
func (m *Manager) Dispatch(ic *discordgo.InteractionCreate) bool {
	id, _ := Split(ic.MessageComponentData().CustomID)
	if id == "" {
		return false
	}

	m.mu.RLock()
	ch, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return false
	}

	select {
	case ch <- ic:
	default:
		// A full buffer means the loop is wedged on a platform call;
		// dropping keeps the gateway handler from blocking.
		log.Warn().Str("session", id).Msg("session event buffer full, dropping interaction")
	}
	return true
}

// Active reports how many session loops are currently listening.
func (m *Manager) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
