package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsersState_DefaultIsMenuMode(t *testing.T) {
	repo := NewUsersStateMap()
	assert.False(t, repo.GetChatMode(42))
	assert.Equal(t, 0, repo.Count())
}

func TestUsersState_SetAndResetChatMode(t *testing.T) {
	repo := NewUsersStateMap()

	repo.SetChatMode(42, 100, true)
	assert.True(t, repo.GetChatMode(42))
	assert.False(t, repo.GetChatMode(7), "other users must stay in menu mode")

	repo.SetChatMode(42, 100, false)
	assert.False(t, repo.GetChatMode(42))
	assert.Equal(t, 1, repo.Count())
}

func TestUsersState_ConcurrentAccess(t *testing.T) {
	repo := NewUsersStateMap()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			repo.SetChatMode(id, id, id%2 == 0)
			_ = repo.GetChatMode(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Count())
	assert.True(t, repo.GetChatMode(10))
	assert.False(t, repo.GetChatMode(11))
}
