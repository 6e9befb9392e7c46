package service

import (
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

// PushConn: bagian dari *websocket.Conn yang dipakai hub.
type PushConn interface {
	WriteJSON(v interface{}) error
}

type client struct {
	conn PushConn
	mu   sync.Mutex // satu writer per koneksi
}

// Hub memetakan user → koneksi websocket aktif (satu user boleh multi-tab).
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uuid.UUID]map[*client]struct{})}
}

// Register mengembalikan fungsi unregister untuk dipanggil saat koneksi ditutup.
func (h *Hub) Register(userID uuid.UUID, conn PushConn) func() {
	cl := &client{conn: conn}
	h.mu.Lock()
	room, ok := h.rooms[userID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[userID] = room
	}
	room[cl] = struct{}{}
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if room, ok := h.rooms[userID]; ok {
			delete(room, cl)
			if len(room) == 0 {
				delete(h.rooms, userID)
			}
		}
	}
}

func (h *Hub) Online(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

// Send menulis payload ke semua koneksi user; mengembalikan jumlah yang terkirim.
func (h *Hub) Send(userID uuid.UUID, payload any) (int, error) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.rooms[userID]))
	for cl := range h.rooms[userID] {
		targets = append(targets, cl)
	}
	h.mu.RUnlock()

	sent := 0
	var errs []error
	for _, cl := range targets {
		cl.mu.Lock()
		err := cl.conn.WriteJSON(payload)
		cl.mu.Unlock()
		if err != nil {
			log.Printf("[WS] gagal kirim ke user %s: %v", userID, err)
			errs = append(errs, err)
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}
