package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryJoinLeaveCounts(t *testing.T) {
	r := NewRegistry()
	room := RoomName("abc")

	first, count := r.Join(room)
	assert.Equal(t, 1, count)
	second, count := r.Join(room)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, r.Count(room))

	assert.Equal(t, 1, r.Leave(room, first))
	assert.Equal(t, 0, r.Leave(room, second))
	assert.Equal(t, 0, r.Count(room))

	// leaving twice is a no-op
	assert.Equal(t, 0, r.Leave(room, second))
}

func TestRegistryRoomsAreIsolated(t *testing.T) {
	r := NewRegistry()

	subA, _ := r.Join(RoomName("a"))
	subB, _ := r.Join(RoomName("b"))

	r.Broadcast(RoomName("a"), Event{Name: EventSubmissionUpdate})

	select {
	case ev := <-subA.Events():
		assert.Equal(t, EventSubmissionUpdate, ev.Name)
	default:
		t.Fatal("room a subscriber received nothing")
	}

	select {
	case ev := <-subB.Events():
		t.Fatalf("room b subscriber received %v", ev)
	default:
	}
}

func TestRegistryBroadcastDropsOldestWhenFull(t *testing.T) {
	r := NewRegistry()
	room := RoomName("abc")
	sub, _ := r.Join(room)

	for i := 0; i < subscriberBufSize+5; i++ {
		r.Broadcast(room, Event{Name: fmt.Sprintf("ev-%d", i)})
	}

	// buffer holds the newest events; the first five were dropped
	require.Len(t, sub.ch, subscriberBufSize)
	ev := <-sub.Events()
	assert.Equal(t, "ev-5", ev.Name)
}

func TestRegistryLeaveClosesChannel(t *testing.T) {
	r := NewRegistry()
	room := RoomName("abc")
	sub, _ := r.Join(room)
	r.Leave(room, sub)

	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestRegistryConcurrentJoinLeave(t *testing.T) {
	r := NewRegistry()
	room := RoomName("abc")

	const clients = 50
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub, _ := r.Join(room)
			r.Broadcast(room, Event{Name: EventUserJoined})
			r.Leave(room, sub)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, r.Count(room))
}
