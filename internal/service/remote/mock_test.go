package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/janisto/profile-console/internal/profile"
)

func TestMockServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMockService(nil)

	got, err := m.FetchCurrent(ctx)
	if err != nil || got != nil {
		t.Fatalf("expected empty mock, got %+v, %v", got, err)
	}

	saved, err := m.CreateOrUpdate(ctx, "Ann Lee", &profile.Profile{Name: "Ann Lee", Email: "ann@x.com"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected assigned id")
	}

	updated, err := m.CreateOrUpdate(ctx, "Ann Smith", &profile.Profile{Name: "Ann Smith", Email: "ann@x.com"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != saved.ID {
		t.Errorf("expected id %q to be kept, got %q", saved.ID, updated.ID)
	}

	if err := m.Delete(ctx, "other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
	if err := m.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if m.Current() != nil {
		t.Error("expected empty mock after delete")
	}

	save, fetch, del := m.Calls()
	if save != 2 || fetch != 1 || del != 2 {
		t.Errorf("unexpected call counts: save=%d fetch=%d delete=%d", save, fetch, del)
	}
}

func TestMockServiceHooks(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	m := NewMockService(&profile.Profile{ID: "u1", Name: "Ann Lee", Email: "ann@x.com"})
	m.OnFetchCurrent = func(context.Context) (*profile.Profile, error) { return nil, boom }
	m.OnDelete = func(context.Context, string) error { return boom }
	m.OnCreateOrUpdate = func(context.Context, string, *profile.Profile) (*profile.Profile, error) { return nil, boom }

	if _, err := m.FetchCurrent(ctx); !errors.Is(err, boom) {
		t.Errorf("expected hook error, got %v", err)
	}
	if err := m.Delete(ctx, "u1"); !errors.Is(err, boom) {
		t.Errorf("expected hook error, got %v", err)
	}
	if _, err := m.CreateOrUpdate(ctx, "x", &profile.Profile{}); !errors.Is(err, boom) {
		t.Errorf("expected hook error, got %v", err)
	}
	if m.Current() == nil {
		t.Error("hooks must not touch stored profile")
	}
}

func TestMockServiceReturnsCopies(t *testing.T) {
	m := NewMockService(&profile.Profile{ID: "u1", Name: "Ann Lee", Email: "ann@x.com"})
	got, _ := m.FetchCurrent(context.Background())
	got.Name = "Mutated"
	if m.Current().Name != "Ann Lee" {
		t.Error("mutating a returned profile must not change the mock")
	}
}
