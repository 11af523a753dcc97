package store

import (
	"testing"

	"github.com/janisto/profile-console/internal/profile"
)

func strPtr(s string) *string { return &s }

func TestReduce(t *testing.T) {
	ann := &profile.Profile{ID: "u1", Name: "Ann Lee", Email: "ann@x.com"}
	withError := State{Data: ann, Error: strPtr("boom")}

	tests := []struct {
		name   string
		start  State
		action Action
		want   State
	}{
		{"set profile clears error", withError, SetProfile{Profile: &profile.Profile{ID: "u2", Name: "Bob", Email: "b@x.com"}},
			State{Data: &profile.Profile{ID: "u2", Name: "Bob", Email: "b@x.com"}}},
		{"clear profile clears error", withError, ClearProfile{}, State{}},
		{"set loading keeps data", State{Data: ann}, SetLoading{Loading: true}, State{Data: ann, Loading: true}},
		{"unset loading", State{Loading: true}, SetLoading{}, State{}},
		{"set error keeps data", State{Data: ann}, SetError{Message: strPtr("x")}, State{Data: ann, Error: strPtr("x")}},
		{"nil error clears", withError, SetError{}, State{Data: ann}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.start, tt.action)
			if !got.Data.Equal(tt.want.Data) {
				t.Errorf("data: expected %+v, got %+v", tt.want.Data, got.Data)
			}
			if got.Loading != tt.want.Loading {
				t.Errorf("loading: expected %v, got %v", tt.want.Loading, got.Loading)
			}
			if got.ErrorMessage() != tt.want.ErrorMessage() || (got.Error == nil) != (tt.want.Error == nil) {
				t.Errorf("error: expected %v, got %v", tt.want.Error, got.Error)
			}
		})
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	start := State{Data: &profile.Profile{ID: "u1", Name: "Ann Lee", Email: "ann@x.com"}, Error: strPtr("boom")}
	_ = Reduce(start, ClearProfile{})
	if start.Data == nil || start.ErrorMessage() != "boom" {
		t.Fatalf("input state changed: %+v", start)
	}
}

func TestReduceCopiesProfile(t *testing.T) {
	p := &profile.Profile{ID: "u1", Name: "Ann Lee", Email: "ann@x.com"}
	got := Reduce(State{}, SetProfile{Profile: p})
	p.Name = "Mutated"
	if got.Data.Name != "Ann Lee" {
		t.Fatal("state shares memory with the action payload")
	}
}

func TestReduceUnknownActionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil action")
		}
	}()
	Reduce(State{}, nil)
}

func TestOperationFallback(t *testing.T) {
	tests := map[Operation]string{
		OpSave:   "Failed to save profile",
		OpLoad:   "Failed to load profile",
		OpDelete: "Failed to delete profile",
	}
	for op, want := range tests {
		if got := op.Fallback(); got != want {
			t.Errorf("%s: expected %q, got %q", op, want, got)
		}
	}
}
