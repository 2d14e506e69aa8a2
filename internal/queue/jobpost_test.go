package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalJobPostQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewLocalJobPostQueue()
	a, err := q.Subscribe(ctx)
	require.NoError(t, err)
	b, err := q.Subscribe(ctx)
	require.NoError(t, err)

	change := &Change{ID: 7, Version: 2, Kind: ChangeUpdated}
	require.NoError(t, q.PublishChange(ctx, change))

	for _, ch := range []<-chan *Change{a, b} {
		select {
		case got := <-ch:
			assert.Equal(t, change, got)
		case <-time.After(time.Second):
			t.Fatal("change not delivered")
		}
	}
}

func TestLocalJobPostQueue_CloseOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := NewLocalJobPostQueue()
	ch, err := q.Subscribe(ctx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
}

func TestLocalJobPostQueue_UnsubscribeOnCancel(t *testing.T) {
	q := NewLocalJobPostQueue()

	live, err := q.Subscribe(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	gone, err := q.Subscribe(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, q.subscribers())

	cancel()
	for range gone {
	}
	assert.Eventually(t, func() bool { return q.subscribers() == 1 }, time.Second, 10*time.Millisecond)

	change := &Change{ID: 3, Kind: ChangeDeleted}
	require.NoError(t, q.PublishChange(context.Background(), change))
	select {
	case got := <-live:
		assert.Equal(t, change, got)
	case <-time.After(time.Second):
		t.Fatal("change not delivered")
	}
}
