package api

import (
	"context"
	"log"
	"sync"
)

const broadcastBuffer = 64

// Hub fans every broadcast out to the registered spectators. The welcome
// frame is what a spectator receives right after connecting.
type Hub struct {
	mu         sync.RWMutex
	spectators map[string]*Spectator
	welcome    []byte
	broadcast  chan []byte
	// set once Run has returned, no spectator is accepted after that
	closed bool
}

func NewHub(welcome []byte) *Hub {
	return &Hub{
		spectators: make(map[string]*Spectator),
		welcome:    welcome,
		broadcast:  make(chan []byte, broadcastBuffer),
	}
}

// Register adds sp and queues the welcome frame. It reports false once
// the hub has shut down.
func (h *Hub) Register(sp *Spectator) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.spectators[sp.id] = sp
	sp.trySend(h.welcome)
	log.Printf("spectator registered\tid: %s\tspectators: %d", sp.id, len(h.spectators))
	return true
}

// Unregister closes the send queue of sp, which ends its write loop.
func (h *Hub) Unregister(sp *Spectator) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, prs := h.spectators[sp.id]; !prs {
		return
	}
	delete(h.spectators, sp.id)
	close(sp.send)
	log.Printf("spectator unregistered\tid: %s\tspectators: %d", sp.id, len(h.spectators))
}

func (h *Hub) SetWelcome(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.welcome = msg
}

// Broadcast never blocks the caller; frames are dropped when the queue
// is full.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		log.Println("broadcast queue full, dropping frame")
	}
}

// SendTo queues msg for a single spectator if it is still registered.
func (h *Hub) SendTo(sp *Spectator, msg []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, prs := h.spectators[sp.id]; !prs {
		return false
	}
	return sp.trySend(msg)
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.spectators)
}

// Run delivers broadcasts until ctx is done, then drops every spectator.
// Spectators that cannot keep up are disconnected.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			h.closed = true
			for id, sp := range h.spectators {
				delete(h.spectators, id)
				close(sp.send)
			}
			h.mu.Unlock()
			return

		case msg := <-h.broadcast:
			var slow []*Spectator

			h.mu.RLock()
			for _, sp := range h.spectators {
				if !sp.trySend(msg) {
					slow = append(slow, sp)
				}
			}
			h.mu.RUnlock()

			for _, sp := range slow {
				log.Printf("spectator too slow, disconnecting\tid: %s", sp.id)
				h.Unregister(sp)
			}
		}
	}
}
