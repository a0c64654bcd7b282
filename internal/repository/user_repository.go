package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/iliyamo/chat-service/internal/model"
)

// UserRepo is the in-memory identity store. Accounts live in a map
// keyed by id, guarded by a single RWMutex. The id counter belongs to
// the repo and starts at 1; id 0 is reserved for the administrator
// account seeded at startup. Ids are never reused after deletion.
//
// Username and email uniqueness is checked case-insensitively by a
// linear scan that runs under the write lock, so two concurrent
// creates with the same identity cannot both succeed.
type UserRepo struct {
	mu     sync.RWMutex
	users  map[uint64]model.User
	nextID uint64
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[uint64]model.User), nextID: 1}
}

// SeedAdmin inserts the administrator account under the reserved id 0
// and returns it. Meant to be called once at startup, before the
// server accepts requests.
func (r *UserRepo) SeedAdmin(username, email, password string) model.User {
	u := model.User{ID: 0, Username: username, Email: email, Password: password, IsAdmin: true}
	r.mu.Lock()
	r.users[u.ID] = u
	r.mu.Unlock()
	return u
}

// Create registers a new account and returns it. ErrConflict is
// returned when any current user already holds the same username or
// email, compared case-insensitively.
func (r *UserRepo) Create(username, email, password string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			return model.User{}, ErrConflict
		}
	}

	u := model.User{ID: r.nextID, Username: username, Email: email, Password: password}
	r.nextID++
	r.users[u.ID] = u
	return u, nil
}

// Get fetches a user by id.
func (r *UserRepo) Get(id uint64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// Update changes only the supplied fields; nil pointers leave the
// current value untouched. A new email is re-checked for collision
// against every other user and yields ErrConflict when taken.
func (r *UserRepo) Update(id uint64, email, password *string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	if email != nil {
		for _, other := range r.users {
			if other.ID != id && strings.EqualFold(other.Email, *email) {
				return model.User{}, ErrConflict
			}
		}
		u.Email = *email
	}
	if password != nil {
		u.Password = *password
	}
	r.users[id] = u
	return u, nil
}

// Delete removes the user and reports whether it existed. Cascading
// message deletion and session invalidation are the caller's job;
// this store knows nothing about messages or sessions.
func (r *UserRepo) Delete(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[id]
	if ok {
		delete(r.users, id)
	}
	return ok
}

// List returns all users ordered by id. A non-empty username narrows
// the result to case-insensitive exact matches.
func (r *UserRepo) List(username string) []model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if username != "" && !strings.EqualFold(u.Username, username) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindByIdentity scans for a user whose username or email matches
// case-insensitively and whose password matches exactly. Blank
// identity fields never match anything. ErrUnauthorized when no user
// qualifies.
func (r *UserRepo) FindByIdentity(username, email, password string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		identityMatches := (username != "" && strings.EqualFold(u.Username, username)) ||
			(email != "" && strings.EqualFold(u.Email, email))
		if identityMatches && u.Password == password {
			return u, nil
		}
	}
	return model.User{}, ErrUnauthorized
}
