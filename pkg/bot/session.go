package bot

import "sync"

type sessionState int

const (
	stateIdle sessionState = iota

	// stateAwaitingStakeAmount marks a chat whose next text message is the
	// stake amount.
	stateAwaitingStakeAmount
)

// sessionManager tracks per chat conversation state in memory. State is
// transient; a restart simply drops any in-flight prompts.
type sessionManager struct {
	mu     sync.Mutex
	states map[int64]sessionState
}

func newSessionManager() *sessionManager {
	return &sessionManager{
		states: make(map[int64]sessionState),
	}
}

func (m *sessionManager) get(chatID int64) sessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.states[chatID]
}

func (m *sessionManager) set(chatID int64, state sessionState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[chatID] = state
}

func (m *sessionManager) clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, chatID)
}
