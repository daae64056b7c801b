// Package repository provides the per-user session store of the Telegram bot.
// Sessions live in memory only and are dropped when the process exits.
package repository

import (
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
	"sync"
)

// UsersState manages the state of Telegram bot users in memory.
type UsersState struct {
	buffer map[int64]*models.UserState // In-memory store of user states by user ID.
	mu     *sync.RWMutex               // Protects buffer from concurrent access
}

// NewUsersStateMap creates a new UsersState instance with an empty memory buffer.
func NewUsersStateMap() *UsersState {
	return &UsersState{
		buffer: make(map[int64]*models.UserState),
		mu:     &sync.RWMutex{},
	}
}

// GetChatMode returns the user's AI chat mode flag. Unknown users are in menu mode.
func (m *UsersState) GetChatMode(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.buffer[userID]
	if !ok || state == nil {
		return false
	}
	return state.ChatMode
}

// SetChatMode updates or creates the user's session with the given AI chat mode flag.
// Arguments:
//   - userID: Telegram ID of the user.
//   - chatID: chat the user wrote from.
//   - chatMode: whether free text goes to the generative model.
func (m *UsersState) SetChatMode(userID, chatID int64, chatMode bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.buffer[userID]
	if !ok || state == nil {
		state = &models.UserState{UserID: userID}
		m.buffer[userID] = state
		logrus.WithField("userID", userID).Debug("New user session created")
	}
	state.ChatID = chatID
	state.ChatMode = chatMode
}

// Count returns the number of known user sessions.
func (m *UsersState) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.buffer)
}
