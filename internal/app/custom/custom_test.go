package custom

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGetter returns the prepared batches one by one, then empty batches.
type scriptedGetter struct {
	mu      sync.Mutex
	batches [][]tgbotapi.Update
	errs    []error
	offsets []int
}

func (s *scriptedGetter) GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets = append(s.offsets, config.Offset)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(s.batches) == 0 {
		time.Sleep(time.Millisecond)
		return nil, nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch, nil
}

func TestGetUpdatesChan_DeliversInOrderAndAdvancesOffset(t *testing.T) {
	getter := &scriptedGetter{
		errs: []error{errors.New("Bad Gateway")},
		batches: [][]tgbotapi.Update{
			{{UpdateID: 10}, {UpdateID: 11}},
			{{UpdateID: 11}, {UpdateID: 12}},
		},
	}
	poller := &BotAPICustom{UpdatesGetter: getter, Buffer: 10, RetryDelay: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := poller.GetUpdatesChan(ctx, tgbotapi.NewUpdate(0))

	var ids []int
	for len(ids) < 3 {
		select {
		case u := <-ch:
			ids = append(ids, u.UpdateID)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for updates")
		}
	}
	assert.Equal(t, []int{10, 11, 12}, ids, "duplicate update 11 is skipped")

	cancel()
	for range ch {
	}

	getter.mu.Lock()
	defer getter.mu.Unlock()
	require.GreaterOrEqual(t, len(getter.offsets), 3)
	assert.Equal(t, 0, getter.offsets[0])
	assert.Equal(t, 0, getter.offsets[1], "offset is unchanged after a failed poll")
	assert.Equal(t, 12, getter.offsets[2])
}

func TestGetUpdatesChan_ClosesOnCancel(t *testing.T) {
	poller := NewBotAPICustom(&scriptedGetter{})
	ctx, cancel := context.WithCancel(context.Background())
	ch := poller.GetUpdatesChan(ctx, tgbotapi.NewUpdate(0))
	cancel()

	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(time.Second):
		t.Fatal("channel was not closed after cancel")
	}
}
