package mockapi

import (
	"errors"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/marmota/failboard/internal/client/models"
	"github.com/marmota/failboard/internal/common"
)

var ErrDuplicateUsername = errors.New("username already taken")

type user struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"nome"`
	Email        string    `json:"email,omitempty"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	passwordHash []byte
}

type failure struct {
	ID          string    `json:"id"`
	Category    string    `json:"tipo"`
	Description string    `json:"descricao"`
	CreatedAt   time.Time `json:"dataCriacao"`
	Status      string    `json:"status"`
}

// store keeps users and failures in memory. Failures are kept newest first.
type store struct {
	mu       sync.RWMutex
	users    map[int64]*user
	nextUser int64
	failures []failure
	now      func() time.Time
}

func newStore(now func() time.Time) *store {
	return &store{users: make(map[int64]*user), nextUser: 1, now: now}
}

func (s *store) addUser(username, password, name, email, role string, active bool) (user, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return user{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return user{}, ErrDuplicateUsername
		}
	}
	u := &user{
		ID:           s.nextUser,
		Username:     username,
		Name:         name,
		Email:        email,
		Role:         role,
		Active:       active,
		CreatedAt:    s.now().UTC(),
		passwordHash: hash,
	}
	s.users[u.ID] = u
	s.nextUser++
	return *u, nil
}

// authenticate returns the user whose credentials match. Inactive users are
// rejected like a bad password.
func (s *store) authenticate(username, password string) (user, bool) {
	s.mu.RLock()
	var found *user
	for _, u := range s.users {
		if u.Username == username {
			found = u
			break
		}
	}
	s.mu.RUnlock()

	if found == nil || !found.Active {
		return user{}, false
	}
	if bcrypt.CompareHashAndPassword(found.passwordHash, []byte(password)) != nil {
		return user{}, false
	}
	return *found, true
}

func (s *store) user(id int64) (user, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return user{}, common.ErrNotFound
	}
	return *u, nil
}

// listUsers returns users ordered by id whose fields equal every filter
// value. Unknown filter keys match nothing.
func (s *store) listUsers(filter map[string]string) []user {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]user, 0, len(s.users))
	for _, u := range s.users {
		if matchUser(u, filter) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func matchUser(u *user, filter map[string]string) bool {
	for k, v := range filter {
		var field string
		switch k {
		case "username":
			field = u.Username
		case "nome":
			field = u.Name
		case "email":
			field = u.Email
		case "role":
			field = u.Role
		case "active":
			field = strconv.FormatBool(u.Active)
		default:
			return false
		}
		if !strings.EqualFold(field, v) {
			return false
		}
	}
	return true
}

type userPatch struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Name     *string `json:"nome"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

func (s *store) updateUser(id int64, p userPatch) (user, error) {
	var hash []byte
	if p.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*p.Password), bcrypt.MinCost)
		if err != nil {
			return user{}, err
		}
		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user{}, common.ErrNotFound
	}
	if p.Username != nil && *p.Username != u.Username {
		for _, other := range s.users {
			if other.ID != id && strings.EqualFold(other.Username, *p.Username) {
				return user{}, ErrDuplicateUsername
			}
		}
		u.Username = *p.Username
	}
	if hash != nil {
		u.passwordHash = hash
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Active != nil {
		u.Active = *p.Active
	}
	return *u, nil
}

func (s *store) deleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *store) listFailures() []failure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.failures)
}

func (s *store) addFailure(cat models.Category, description string, createdAt time.Time) failure {
	f := failure{
		ID:          uuid.NewString(),
		Category:    cat.String(),
		Description: description,
		CreatedAt:   createdAt.UTC(),
		Status:      models.StatusPending.String(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = slices.Insert(s.failures, 0, f)
	return f
}

func (s *store) setStatus(id string, st models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.failures {
		if s.failures[i].ID == id {
			s.failures[i].Status = st.String()
			return nil
		}
	}
	return common.ErrNotFound
}
