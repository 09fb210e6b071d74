package gate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diewo77/lead-hunter/gate"
)

// mapResolver serves subjects from a map and counts lookups.
type mapResolver struct {
	subjects map[string]gate.Subject
	calls    int
}

func (m *mapResolver) Resolve(_ context.Context, id string) (gate.Subject, error) {
	m.calls++
	s, ok := m.subjects[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func TestCachedResolver_CachesSubject(t *testing.T) {
	inner := &mapResolver{subjects: map[string]gate.Subject{
		"1": gate.StaticSubject{ID: "1", Role: gate.RoleSeller},
	}}
	cached := gate.NewCachedResolver[string](inner, 16, 5*time.Minute)

	s1, err := cached.Resolve(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s1.SubjectRole() != gate.RoleSeller {
		t.Errorf("expected SELLER, got %s", s1.SubjectRole())
	}

	// Promote the user behind the cache's back.
	inner.subjects["1"] = gate.StaticSubject{ID: "1", Role: gate.RoleAdmin}

	s2, _ := cached.Resolve(context.Background(), "1")
	if s2.SubjectRole() != gate.RoleSeller {
		t.Errorf("expected cached SELLER, got %s", s2.SubjectRole())
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
}

func TestCachedResolver_Invalidate(t *testing.T) {
	inner := &mapResolver{subjects: map[string]gate.Subject{
		"1": gate.StaticSubject{ID: "1", Role: gate.RoleSeller},
		"2": gate.StaticSubject{ID: "2", Role: gate.RoleUser},
	}}
	cached := gate.NewCachedResolver[string](inner, 16, 5*time.Minute)
	_, _ = cached.Resolve(context.Background(), "1")
	_, _ = cached.Resolve(context.Background(), "2")

	inner.subjects["1"] = gate.StaticSubject{ID: "1", Role: gate.RoleAdmin}
	cached.Invalidate("1")

	s, err := cached.Resolve(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SubjectRole() != gate.RoleAdmin {
		t.Errorf("expected ADMIN after invalidation, got %s", s.SubjectRole())
	}

	cached.InvalidateAll()
	if cached.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", cached.Len())
	}
}

func TestCachedResolver_Expiry(t *testing.T) {
	inner := &mapResolver{subjects: map[string]gate.Subject{
		"1": gate.StaticSubject{ID: "1", Role: gate.RoleSeller},
	}}
	cached := gate.NewCachedResolver[string](inner, 16, 20*time.Millisecond)
	_, _ = cached.Resolve(context.Background(), "1")
	time.Sleep(60 * time.Millisecond)
	_, _ = cached.Resolve(context.Background(), "1")
	if inner.calls != 2 {
		t.Errorf("expected refetch after ttl, got %d inner calls", inner.calls)
	}
}

func TestCachedResolver_ErrorsNotCached(t *testing.T) {
	inner := &mapResolver{subjects: map[string]gate.Subject{}}
	cached := gate.NewCachedResolver[string](inner, 16, time.Minute)

	if _, err := cached.Resolve(context.Background(), "missing"); err == nil {
		t.Fatal("expected error")
	}
	inner.subjects["missing"] = gate.StaticSubject{ID: "missing", Role: gate.RoleUser}
	if _, err := cached.Resolve(context.Background(), "missing"); err != nil {
		t.Fatalf("expected success once the subject exists, got %v", err)
	}
}
