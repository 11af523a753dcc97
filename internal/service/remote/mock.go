package remote

import (
	"context"
	"strconv"
	"sync"

	"github.com/janisto/profile-console/internal/profile"
)

// MockService implements Service in memory for tests and offline runs.
// Hooks, when set, replace the default behavior of the matching method.
type MockService struct {
	mu      sync.Mutex
	current *profile.Profile
	nextID  int

	saveCalls   int
	fetchCalls  int
	deleteCalls int

	OnCreateOrUpdate func(ctx context.Context, name string, draft *profile.Profile) (*profile.Profile, error)
	OnFetchCurrent   func(ctx context.Context) (*profile.Profile, error)
	OnDelete         func(ctx context.Context, id string) error
}

// NewMockService creates a mock holding current, which may be nil.
func NewMockService(current *profile.Profile) *MockService {
	return &MockService{current: current.Clone()}
}

// Current returns a copy of the stored profile.
func (m *MockService) Current() *profile.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

// Calls reports how many times each method has been invoked.
func (m *MockService) Calls() (save, fetch, del int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls, m.fetchCalls, m.deleteCalls
}

func (m *MockService) CreateOrUpdate(ctx context.Context, name string, draft *profile.Profile) (*profile.Profile, error) {
	m.mu.Lock()
	m.saveCalls++
	hook := m.OnCreateOrUpdate
	m.mu.Unlock()
	if hook != nil {
		return hook(ctx, name, draft)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	saved := draft.Clone()
	if saved.ID == "" {
		if m.current != nil && m.current.ID != "" {
			saved.ID = m.current.ID
		} else {
			m.nextID++
			saved.ID = "mock-" + strconv.Itoa(m.nextID)
		}
	}
	saved.Name = name
	m.current = saved
	return saved.Clone(), nil
}

func (m *MockService) FetchCurrent(ctx context.Context) (*profile.Profile, error) {
	m.mu.Lock()
	m.fetchCalls++
	hook := m.OnFetchCurrent
	m.mu.Unlock()
	if hook != nil {
		return hook(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone(), nil
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	m.deleteCalls++
	hook := m.OnDelete
	m.mu.Unlock()
	if hook != nil {
		return hook(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.current.ID != id {
		return &UpstreamError{Kind: UpstreamErrorKindNotFound, Status: 404, Message: "Profile not found", cause: ErrNotFound}
	}
	m.current = nil
	return nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
