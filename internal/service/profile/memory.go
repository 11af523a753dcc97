package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	applog "github.com/janisto/profile-console/internal/platform/logging"
)

// MemoryStore implements Service in process memory. It backs the reference
// API when no Firestore project is configured and serves handler tests.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]*Profile),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) CreateOrUpdate(ctx context.Context, name string, params SaveParams) (*Profile, error) {
	fields, err := normalize(name, params)
	if err != nil {
		applog.LogAuditEvent(ctx, "save", "profile", params.ID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	p := m.lookup(fields.ID, fields.Name)
	if p == nil {
		p = &Profile{ID: uuid.NewString(), CreatedAt: now}
		m.profiles[p.ID] = p
	}
	p.Name = fields.Name
	p.Email = fields.Email
	p.Age = fields.Age
	// Current relies on strictly increasing UpdatedAt.
	if last := latest(m.profiles); !now.After(last) {
		now = last.Add(time.Microsecond)
	}
	p.UpdatedAt = now

	applog.LogAuditEvent(ctx, "save", "profile", p.ID, "success", nil)

	return clone(p), nil
}

func (m *MemoryStore) lookup(id, name string) *Profile {
	if p, ok := m.profiles[id]; ok && id != "" {
		return p
	}
	for _, p := range m.profiles {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (m *MemoryStore) Current(ctx context.Context) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var current *Profile
	for _, p := range m.profiles {
		if current == nil || p.UpdatedAt.After(current.UpdatedAt) {
			current = p
		}
	}
	if current == nil {
		return nil, ErrNotFound
	}
	return clone(current), nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[id]; !exists {
		applog.LogAuditEvent(ctx, "delete", "profile", id, "failure",
			map[string]any{"error": categorizeError(ErrNotFound)})
		return ErrNotFound
	}
	delete(m.profiles, id)
	applog.LogAuditEvent(ctx, "delete", "profile", id, "success", nil)
	return nil
}

// Len returns the number of stored profiles.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}

// Clear removes all profiles (useful for test cleanup).
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]*Profile)
}

func latest(profiles map[string]*Profile) time.Time {
	var t time.Time
	for _, p := range profiles {
		if p.UpdatedAt.After(t) {
			t = p.UpdatedAt
		}
	}
	return t
}

func clone(p *Profile) *Profile {
	c := *p
	c.Age = copyAge(p.Age)
	return &c
}

// Compile-time interface check
var _ Service = (*MemoryStore)(nil)
