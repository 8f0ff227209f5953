// Package cache holds the client-side entry cache. Mutations against the
// remote API go through an explicit two-phase protocol: InsertTentative
// makes a pending record visible immediately, and Confirm or Reject settles
// it when the server answers. A scope is dropped wholesale after any
// successful mutation; the next read repopulates it from the server.
package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plumeworks/plume"
)

// Scope keys one cached entry list.
type Scope struct {
	Org        string
	Workspace  string
	Collection string
}

type record struct {
	entry     plume.Entry
	tentative bool
	// tentativeID is the client-assigned handle for a pending record.
	tentativeID string
}

type scopeState struct {
	records   []record
	meta      plume.ListMeta
	fetchedAt time.Time
}

// Store is the in-memory entry cache. Safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	ttl          time.Duration
	maxScopes    int
	maxPerScope  int
	staleAllowed bool
	scopes       map[Scope]*scopeState
	now          func() time.Time
}

// New builds a store from cache configuration. A zero TTL means entries
// never expire by age; zero capacity limits mean unbounded.
func New(cfg plume.CacheConfig) *Store {
	return &Store{
		ttl:          cfg.TTL,
		maxScopes:    cfg.MaxScopes,
		maxPerScope:  cfg.MaxPerScope,
		staleAllowed: cfg.StaleAllowed,
		scopes:       make(map[Scope]*scopeState),
		now:          time.Now,
	}
}

// Put replaces a scope's entries with a fresh server listing, truncated to
// the per-scope capacity. Filling a new scope at the scope capacity evicts
// the least recently fetched one.
func (s *Store) Put(scope Scope, entries []plume.Entry, meta plume.ListMeta) {
	if s.maxPerScope > 0 && len(entries) > s.maxPerScope {
		entries = entries[:s.maxPerScope]
	}
	records := make([]record, 0, len(entries))
	for _, e := range entries {
		records = append(records, record{entry: e})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.scopes[scope]; !exists {
		s.evictForCapacityLocked()
	}
	s.scopes[scope] = &scopeState{
		records:   records,
		meta:      meta,
		fetchedAt: s.now(),
	}
}

// evictForCapacityLocked drops the oldest scopes until one slot is free.
// Caller holds mu.
func (s *Store) evictForCapacityLocked() {
	if s.maxScopes <= 0 {
		return
	}
	for len(s.scopes) >= s.maxScopes {
		var oldest Scope
		var oldestAt time.Time
		first := true
		for scope, state := range s.scopes {
			if first || state.fetchedAt.Before(oldestAt) {
				oldest = scope
				oldestAt = state.fetchedAt
				first = false
			}
		}
		delete(s.scopes, oldest)
	}
}

// Get returns a scope's entries. ok is false when the scope is absent,
// invalidated, or older than the TTL; a store configured to allow stale
// reads keeps serving expired scopes until they are invalidated.
func (s *Store) Get(scope Scope) ([]plume.Entry, plume.ListMeta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.scopes[scope]
	if !ok {
		return nil, plume.ListMeta{}, false
	}
	if s.ttl > 0 && !s.staleAllowed && s.now().Sub(state.fetchedAt) > s.ttl {
		return nil, plume.ListMeta{}, false
	}
	entries := make([]plume.Entry, 0, len(state.records))
	for _, r := range state.records {
		entries = append(entries, r.entry)
	}
	return entries, state.meta, true
}

// InsertTentative prepends a pending record to a scope and returns its
// client-assigned handle. The record is visible to Get immediately, under
// the handle as its ID, until Confirm or Reject settles it.
func (s *Store) InsertTentative(scope Scope, entry plume.Entry) string {
	id := uuid.NewString()
	entry.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.scopes[scope]
	if !ok {
		state = &scopeState{fetchedAt: s.now()}
		s.scopes[scope] = state
	}
	state.records = append([]record{{
		entry:       entry,
		tentative:   true,
		tentativeID: id,
	}}, state.records...)
	state.meta.Total++
	return id
}

// Confirm replaces a pending record with the server's version of it. If the
// server record also arrived through a concurrent refresh, the duplicate is
// dropped so exactly one representation stays visible.
func (s *Store) Confirm(scope Scope, tentativeID string, server plume.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.scopes[scope]
	if !ok {
		return plume.NewError(plume.ErrorTypeNotFound, plume.ErrCodeCacheMiss, "scope not cached")
	}

	idx := -1
	for i, r := range state.records {
		if r.tentative && r.tentativeID == tentativeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return plume.NewError(plume.ErrorTypeNotFound, plume.ErrCodeTentativeNotFound, "no pending record for handle").
			WithDetail("tentativeId", tentativeID)
	}

	state.records[idx] = record{entry: server}
	// Drop any other copy of the server record.
	kept := state.records[:0]
	for i, r := range state.records {
		if i != idx && !r.tentative && r.entry.ID == server.ID {
			state.meta.Total--
			continue
		}
		kept = append(kept, r)
	}
	state.records = kept
	return nil
}

// Reject removes a pending record after the server refused the mutation.
func (s *Store) Reject(scope Scope, tentativeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.scopes[scope]
	if !ok {
		return plume.NewError(plume.ErrorTypeNotFound, plume.ErrCodeCacheMiss, "scope not cached")
	}
	for i, r := range state.records {
		if r.tentative && r.tentativeID == tentativeID {
			state.records = append(state.records[:i], state.records[i+1:]...)
			state.meta.Total--
			return nil
		}
	}
	return plume.NewError(plume.ErrorTypeNotFound, plume.ErrCodeTentativeNotFound, "no pending record for handle").
		WithDetail("tentativeId", tentativeID)
}

// Invalidate drops one scope. Called after every successful mutation so the
// next read fetches the server's truth.
func (s *Store) Invalidate(scope Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scopes, scope)
}

// InvalidateAll drops every scope.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopes = make(map[Scope]*scopeState)
}

// Pending reports how many unsettled records a scope holds.
func (s *Store) Pending(scope Scope) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.scopes[scope]
	if !ok {
		return 0
	}
	n := 0
	for _, r := range state.records {
		if r.tentative {
			n++
		}
	}
	return n
}
