package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/gorilla/websocket"
)

// Event est un signal de changement sur une collection. Pas de payload:
// le client refait sa lecture quand il reçoit le signal.
type Event struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"` // insert, update, delete
	EntityID   string    `json:"entityId,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	At         time.Time `json:"at"`
}

type subscriber struct {
	conn       *websocket.Conn
	collection string
	userID     string // filtre optionnel sur la colonne user_id
	send       chan Event
}

// Hub diffuse les événements de changement aux abonnés websocket
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

// DefaultHub est le hub partagé du serveur
var DefaultHub = NewHub()

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Notify publie un événement de changement sur le hub partagé
func Notify(collection, action, entityID, userID string) {
	DefaultHub.Publish(Event{
		Collection: collection,
		Action:     action,
		EntityID:   entityID,
		UserID:     userID,
		At:         time.Now(),
	})
}

// Publish envoie l'événement à tous les abonnés dont le filtre correspond.
// Un abonné trop lent voit l'événement abandonné plutôt que de bloquer le hub
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if sub.collection != event.Collection {
			continue
		}
		if sub.userID != "" && sub.userID != event.UserID {
			continue
		}
		select {
		case sub.send <- event:
		default:
		}
	}
}

// Subscribe ouvre une connexion websocket abonnée à une collection,
// filtrée optionnellement par userId. La désinscription se fait à la fermeture.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request) {
	collection := r.URL.Query().Get("collection")
	if collection == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing collection parameter")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.LogError("websocket upgrade failed: %v", err)
		return
	}

	sub := &subscriber{
		conn:       conn,
		collection: collection,
		userID:     r.URL.Query().Get("userId"),
		send:       make(chan Event, 16),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(sub)
	go h.readLoop(sub)
}

func (h *Hub) writeLoop(sub *subscriber) {
	for event := range sub.send {
		if err := sub.conn.WriteJSON(event); err != nil {
			h.remove(sub)
			return
		}
	}
}

// readLoop ne lit que pour détecter la fermeture côté client
func (h *Hub) readLoop(sub *subscriber) {
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			h.remove(sub)
			return
		}
	}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.send)
	}
	h.mu.Unlock()
	sub.conn.Close()
}
