package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/source"
)

type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return b, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

type countingSource struct {
	calls int
	resp  source.Response
	err   error
}

func (c *countingSource) Fetch(_ context.Context, _ source.Request) (source.Response, error) {
	c.calls++
	return c.resp, c.err
}

func TestKey(t *testing.T) {
	if got := Key(source.Request{OrgID: "org-1", Collection: source.CollectionAppointments}); got != "bookingdesk:records:appointments:org-1" {
		t.Errorf("Key = %q", got)
	}
	if got := Key(source.Request{OrgID: "org-1", Collection: source.CollectionBusinesses}); got != "bookingdesk:records:businesses:public" {
		t.Errorf("public Key = %q", got)
	}
}

func TestFetch_ReadThrough(t *testing.T) {
	inner := &countingSource{resp: source.Response{
		Records: []filter.Record{{"id": "1", "created_at": "2024-01-10T09:00:00Z"}},
		Origin:  source.OriginDemo,
	}}
	store := newMemStore()
	s := New(inner, store, 0, nil)
	req := source.Request{OrgID: "org-1", Collection: source.CollectionAuditLogs}

	first, err := s.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	second, err := s.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if second.Origin != source.OriginDemo {
		t.Errorf("cached Origin = %q, want demo", second.Origin)
	}
	if len(first.Records) != 1 || len(second.Records) != 1 || second.Records[0].ID() != "1" {
		t.Errorf("records first=%v second=%v", first.Records, second.Records)
	}
	if store.ttls[Key(req)] != DefaultTTL {
		t.Errorf("ttl = %v, want %v", store.ttls[Key(req)], DefaultTTL)
	}
}

func TestFetch_StoreFailureFallsBack(t *testing.T) {
	inner := &countingSource{resp: source.Response{Records: []filter.Record{{"id": "1"}}, Origin: source.OriginLive}}
	store := newMemStore()
	store.getErr = errors.New("redis down")
	store.setErr = errors.New("redis down")
	s := New(inner, store, time.Minute, nil)

	resp, err := s.Fetch(context.Background(), source.Request{OrgID: "org-1", Collection: source.CollectionMessages})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(resp.Records) != 1 || inner.calls != 1 {
		t.Errorf("resp=%v calls=%d", resp, inner.calls)
	}
}

func TestFetch_CorruptEntryRefetches(t *testing.T) {
	inner := &countingSource{resp: source.Response{Records: []filter.Record{}, Origin: source.OriginLive}}
	store := newMemStore()
	req := source.Request{OrgID: "org-1", Collection: source.CollectionMessages}
	store.data[Key(req)] = []byte("{not json")
	s := New(inner, store, time.Minute, nil)

	if _, err := s.Fetch(context.Background(), req); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if !strings.Contains(string(store.data[Key(req)]), `"origin":"live"`) {
		t.Errorf("entry not rewritten: %s", store.data[Key(req)])
	}
}

func TestFetch_InnerErrorNotCached(t *testing.T) {
	innerErr := errors.New("backend unavailable")
	inner := &countingSource{err: innerErr}
	store := newMemStore()
	s := New(inner, store, time.Minute, nil)
	req := source.Request{OrgID: "org-1", Collection: source.CollectionMessages}

	if _, err := s.Fetch(context.Background(), req); !errors.Is(err, innerErr) {
		t.Errorf("err = %v, want %v", err, innerErr)
	}
	if _, ok := store.data[Key(req)]; ok {
		t.Error("failed fetch should not be cached")
	}
}

func TestFetch_InvalidRequest(t *testing.T) {
	s := New(&countingSource{}, newMemStore(), time.Minute, nil)
	if _, err := s.Fetch(context.Background(), source.Request{Collection: "unknown"}); !errors.Is(err, source.ErrUnknownCollection) {
		t.Errorf("err = %v, want ErrUnknownCollection", err)
	}
}

func TestFetch_CachedTextMatchesUncached(t *testing.T) {
	at := time.Date(2024, 1, 10, 14, 0, 0, 0, time.FixedZone("PKT", 5*60*60))
	rec := filter.Record{"id": "1", "created_at": at, "count": int64(42)}
	inner := &countingSource{resp: source.Response{Records: []filter.Record{rec}, Origin: source.OriginLive}}
	s := New(inner, newMemStore(), time.Minute, nil)
	req := source.Request{OrgID: "org-1", Collection: source.CollectionAuditLogs}

	first, err := s.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	second, err := s.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	for _, field := range []string{"created_at", "count"} {
		want, _ := first.Records[0].Text(field)
		got, _ := second.Records[0].Text(field)
		if got != want {
			t.Errorf("%s: cached text = %q, uncached = %q", field, got, want)
		}
	}
	if rec["created_at"] != at {
		t.Error("Fetch should not rewrite the inner source's records")
	}
}
