package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/osariemen/comicbay/internal/auth"
)

// sessionEvent is pushed to every connected UI surface when the cached
// session is replaced.
type sessionEvent struct {
	Type    string     `json:"type"`
	User_id *uuid.UUID `json:"user_id"`
	Email   *string    `json:"email"`
}

func sessionEventFrom(session *auth.Session) sessionEvent {
	event := sessionEvent{Type: "SESSION_CHANGED"}

	if session != nil {
		id := session.User.Id
		event.User_id = &id
		event.Email = session.User.Email
	}

	return event
}

type hub struct {
	conns      map[*websocket.Conn]bool
	connect    chan *websocket.Conn
	disconnect chan *websocket.Conn
	broadcast  chan sessionEvent
}

func newHub() *hub {
	return &hub{
		conns:      make(map[*websocket.Conn]bool),
		connect:    make(chan *websocket.Conn),
		disconnect: make(chan *websocket.Conn),
		broadcast:  make(chan sessionEvent),
	}
}

func (h *hub) run() {
	for {
		select {
		case conn := <-h.connect:
			h.conns[conn] = true
		case conn := <-h.disconnect:
			conn.Close()
			delete(h.conns, conn)
		case event := <-h.broadcast:
			for conn := range h.conns {
				if err := conn.WriteJSON(event); err != nil {
					continue
				}
			}
		}
	}
}

// checkOrigin accepts same-host browser connections. With no configured
// host, everything is accepted: the daemon binds locally and the UI may
// connect from file:// or a dev server without an Origin header.
func (a *Api) checkOrigin(r *http.Request) bool {
	if a.config.Host == "" {
		return true
	}

	origin := r.Header.Get("Origin")

	if origin == "" {
		return true
	}

	parsed, err := url.Parse(origin)

	if err != nil {
		return false
	}

	return parsed.Hostname() == a.config.Host
}

func (a *Api) HandleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     a.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)

	if err != nil {
		a.logger.Error(fmt.Sprintf("error upgrading ws connection: %v", err), "service", "HandleWS")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("error upgrading connection"))
		return
	}

	a.hub.connect <- conn

	defer func() {
		a.hub.disconnect <- conn
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
