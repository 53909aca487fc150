package http

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/pkg/domain"
)

// StreamManager handles active SSE connections and turns successive
// snapshots of a diagram into diffs.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // Diagram ID -> Set of Channels
	last        map[string]*domain.Snapshot
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager. A nil logger disables logging.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		last:        make(map[string]*domain.Snapshot),
		logger:      logger,
	}
}

// Subscribe registers a channel for the diagram's diffs. The returned
// function unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(id string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[id]; !ok {
		sm.subscribers[id] = make(map[chan<- string]struct{})
	}
	sm.subscribers[id][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[id]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, id)
			}
		}
	}
}

// Publish records snap as the latest state of the diagram and broadcasts
// the diff against the previous one. It satisfies session.Listener.
func (sm *StreamManager) Publish(id string, snap domain.Snapshot) {
	sm.mu.Lock()
	prev := sm.last[id]
	sm.last[id] = &snap
	sm.mu.Unlock()

	diff := domain.Diff(prev, &snap)
	if diff == nil {
		return
	}
	payload, err := json.Marshal(diff)
	if err != nil {
		sm.logger.Error("failed to encode diff", "diagram", id, "err", err)
		return
	}
	sm.Broadcast(id, string(payload))
}

// Forget drops the remembered snapshot of a deleted diagram.
func (sm *StreamManager) Forget(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.last, id)
}

// Broadcast sends msg to every subscriber of the diagram. Slow clients
// whose buffer is full miss the message.
func (sm *StreamManager) Broadcast(id string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	subs, ok := sm.subscribers[id]
	if !ok {
		return
	}
	sm.logger.Debug("broadcasting", "diagram", id, "subscribers", len(subs), "payload_size", len(msg))
	for ch := range subs {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message", "diagram", id)
		}
	}
}
