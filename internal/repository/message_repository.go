package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/chat-service/internal/model"
)

// MessageRepo is the in-memory message store. It owns its id counter
// (starting at 1; id 0 is reserved for the seeded welcome message)
// and the process-wide freshness watermark consulted by the
// conditional-GET path.
//
// The watermark advances to max(current, now) exactly once per create
// or edit, inside the same critical section that stores the message,
// so it can never lag behind the timestamp of any visible message.
type MessageRepo struct {
	mu        sync.RWMutex
	messages  map[uint64]model.Message
	nextID    uint64
	watermark time.Time
	clock     Clock
}

// NewMessageRepo builds an empty store. A nil clock falls back to
// UTCNow. The watermark starts at the current instant so a fresh
// store already answers conditional requests consistently.
func NewMessageRepo(clock Clock) *MessageRepo {
	if clock == nil {
		clock = UTCNow
	}
	r := &MessageRepo{messages: make(map[uint64]model.Message), nextID: 1, clock: clock}
	r.watermark = clock().UTC().Truncate(time.Second)
	return r
}

// advance moves the watermark forward, never backward, and returns
// the resulting value. Callers must hold mu.
func (r *MessageRepo) advance() time.Time {
	now := r.clock().UTC().Truncate(time.Second)
	if now.After(r.watermark) {
		r.watermark = now
	}
	return r.watermark
}

// LastModified returns the instant of the most recent message create
// or edit.
func (r *MessageRepo) LastModified() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.watermark
}

// SeedWelcome inserts the welcome message under the reserved id 0,
// authored by the seeded admin account. Meant to be called once at
// startup.
func (r *MessageRepo) SeedWelcome(content string) model.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := model.Message{ID: 0, UserID: 0, CreatedAt: r.advance(), Content: content}
	r.messages[m.ID] = m
	return m
}

// Create stores a new message for the author. Content is trimmed of
// surrounding whitespace and must not be empty, else ErrEmptyContent.
// CreatedAt is the watermark value advanced for this exact call.
func (r *MessageRepo) Create(userID uint64, content string) (model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Message{}, ErrEmptyContent
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m := model.Message{ID: r.nextID, UserID: userID, CreatedAt: r.advance(), Content: content}
	r.nextID++
	r.messages[m.ID] = m
	return m, nil
}

// Edit replaces the content of a message owned by requesterID and
// stamps EditedAt with a freshly advanced watermark value; CreatedAt
// is untouched. ErrNotFound for unknown ids, ErrForbidden when the
// requester is not the author, ErrEmptyContent for blank content.
func (r *MessageRepo) Edit(msgID, requesterID uint64, content string) (model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messages[msgID]
	if !ok {
		return model.Message{}, ErrNotFound
	}
	if m.UserID != requesterID {
		return model.Message{}, ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Message{}, ErrEmptyContent
	}

	editedAt := r.advance()
	m.EditedAt = &editedAt
	m.Content = content
	r.messages[msgID] = m
	return m, nil
}

// Delete removes a message owned by requesterID. Ownership violations
// yield ErrForbidden, mirroring Edit.
func (r *MessageRepo) Delete(msgID, requesterID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messages[msgID]
	if !ok {
		return ErrNotFound
	}
	if m.UserID != requesterID {
		return ErrForbidden
	}
	delete(r.messages, msgID)
	return nil
}

// DeleteAllForUser removes every message authored by the user and
// returns how many were dropped. Used by the account deletion cascade.
func (r *MessageRepo) DeleteAllForUser(userID uint64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, m := range r.messages {
		if m.UserID == userID {
			delete(r.messages, id)
			removed++
		}
	}
	return removed
}

// List returns every message ordered by id.
func (r *MessageRepo) List() []model.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Message, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListByUser returns the user's own messages ordered by id.
func (r *MessageRepo) ListByUser(userID uint64) []model.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Message, 0)
	for _, m := range r.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CountForUser reports how many messages the user currently has.
func (r *MessageRepo) CountForUser(userID uint64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.messages {
		if m.UserID == userID {
			count++
		}
	}
	return count
}
