package realtime

import (
	"log/slog"

	"github.com/develevate/backend/judge"
)

// Broadcaster pushes contest room events through an injected Registry.
// All delivery is best-effort: a failed or slow subscriber never
// affects the judged submission, which is durable on its own.
type Broadcaster struct {
	registry *Registry
	log      *slog.Logger
}

func NewBroadcaster(registry *Registry, log *slog.Logger) *Broadcaster {
	if log == nil {
		log = slog.Default()
	}
	return &Broadcaster{registry: registry, log: log}
}

// JoinContest subscribes to the contest's room and announces the new
// participant count to everyone in it, the joiner included.
func (b *Broadcaster) JoinContest(contestID string) *Subscriber {
	room := RoomName(contestID)
	sub, count := b.registry.Join(room)
	b.registry.Broadcast(room, Event{
		Name: EventUserJoined,
		Data: UserJoinedPayload{Count: count},
	})
	b.log.Debug("client joined contest room", "room", room, "count", count)
	return sub
}

// LeaveContest unsubscribes and announces the decreased count.
func (b *Broadcaster) LeaveContest(contestID string, sub *Subscriber) {
	room := RoomName(contestID)
	count := b.registry.Leave(room, sub)
	b.registry.Broadcast(room, Event{
		Name: EventUserLeft,
		Data: UserLeftPayload{Count: count},
	})
	b.log.Debug("client left contest room", "room", room, "count", count)
}

// ActiveCount answers a get-active-count request.
func (b *Broadcaster) ActiveCount(contestID string) Event {
	return Event{
		Name: EventActiveCount,
		Data: ActiveCountPayload{
			ContestID: contestID,
			Count:     b.registry.Count(RoomName(contestID)),
		},
	}
}

// PublishSubmissionUpdate implements judge.Publisher. It never fails
// the caller; problems are logged and swallowed.
func (b *Broadcaster) PublishSubmissionUpdate(upd judge.SubmissionUpdate) error {
	room := RoomName(upd.ContestID.String())
	b.registry.Broadcast(room, Event{
		Name: EventSubmissionUpdate,
		Data: SubmissionUpdatePayload{
			ContestID: upd.ContestID.String(),
			UserID:    upd.UserUUID.String(),
			ProblemID: upd.ProblemID,
			Status:    string(upd.Status),
			Timestamp: upd.Timestamp,
		},
	})
	return nil
}
