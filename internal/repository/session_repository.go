package repository

import (
	"sync"

	"github.com/iliyamo/chat-service/internal/utils"
)

// SessionRepo maps opaque session tokens to user ids. Tokens are 32
// bytes of crypto/rand entropy, hex encoded. Multiple live sessions
// per user are allowed; login never deduplicates.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]uint64
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]uint64)}
}

// Create issues a fresh token for the user and stores the mapping.
func (r *SessionRepo) Create(userID uint64) (string, error) {
	token, err := utils.RandomHex(32)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.sessions[token] = userID
	r.mu.Unlock()
	return token, nil
}

// Resolve returns the user id behind a token. Missing or unknown
// tokens yield ErrUnauthorized.
func (r *SessionRepo) Resolve(token string) (uint64, error) {
	if token == "" {
		return 0, ErrUnauthorized
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.sessions[token]
	if !ok {
		return 0, ErrUnauthorized
	}
	return userID, nil
}

// Delete removes the token. Deleting a token that is not currently
// valid yields ErrUnauthorized, so a repeated logout is observable
// rather than a silent success.
func (r *SessionRepo) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[token]; !ok {
		return ErrUnauthorized
	}
	delete(r.sessions, token)
	return nil
}

// DeleteForUser invalidates every session held by the user and
// returns how many were removed. Used by the account deletion cascade.
func (r *SessionRepo) DeleteForUser(userID uint64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, id := range r.sessions {
		if id == userID {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed
}
