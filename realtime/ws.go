package realtime

import (
	"log/slog"
	"net/http"

	"github.com/develevate/backend/auth"
	"github.com/gorilla/websocket"
)

// WsHandler upgrades clients to a websocket and relays room events.
// Identity is optional: a connection without a valid bearer token stays
// anonymous and read-only, which is all the broadcaster offers anyway.
type WsHandler struct {
	broadcaster *Broadcaster
	jwtKey      []byte
	upgrader    websocket.Upgrader
	log         *slog.Logger
}

func NewWsHandler(broadcaster *Broadcaster, jwtKey []byte, log *slog.Logger) *WsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WsHandler{
		broadcaster: broadcaster,
		jwtKey:      jwtKey,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *WsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := "anonymous"
	if token := r.URL.Query().Get("token"); token != "" {
		if claims, err := auth.ValidateJWT(token, h.jwtKey); err == nil {
			username = claims.Username
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.log.Debug("websocket connected", "username", username)
	h.handleConn(conn)
}

func (h *WsHandler) handleConn(conn *websocket.Conn) {
	out := make(chan Event, subscriberBufSize)
	done := make(chan struct{})
	joined := map[string]*Subscriber{}

	go func() {
		for {
			select {
			case <-done:
				return
			case ev := <-out:
				if err := conn.WriteJSON(ev); err != nil {
					conn.Close()
					return
				}
			}
		}
	}()

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if msg.ContestID == "" {
			continue
		}
		switch msg.Name {
		case EventJoinContest:
			if _, ok := joined[msg.ContestID]; ok {
				continue
			}
			sub := h.broadcaster.JoinContest(msg.ContestID)
			joined[msg.ContestID] = sub
			go forward(sub, out, done)
		case EventLeaveContest:
			sub, ok := joined[msg.ContestID]
			if !ok {
				continue
			}
			delete(joined, msg.ContestID)
			h.broadcaster.LeaveContest(msg.ContestID, sub)
		case EventGetActiveCount:
			select {
			case out <- h.broadcaster.ActiveCount(msg.ContestID):
			default:
			}
		}
	}

	close(done)
	for contestID, sub := range joined {
		h.broadcaster.LeaveContest(contestID, sub)
	}
	conn.Close()
}

// forward pumps a room subscription into the connection's outgoing
// queue until the subscription or the connection goes away.
func forward(sub *Subscriber, out chan Event, done chan struct{}) {
	for ev := range sub.Events() {
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}
