package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumeworks/plume"
)

var testScope = Scope{Org: "acme", Workspace: "main", Collection: "posts"}

func newTestStore() *Store {
	return New(plume.DefaultConfig().Cache)
}

func TestPutAndGet(t *testing.T) {
	s := newTestStore()
	s.Put(testScope, []plume.Entry{{ID: "a"}, {ID: "b"}}, plume.ListMeta{Total: 2, Limit: 50})

	entries, meta, ok := s.Get(testScope)
	require.True(t, ok)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, meta.Total)

	_, _, ok = s.Get(Scope{Org: "other"})
	assert.False(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	cfg := plume.DefaultConfig().Cache
	cfg.TTL = time.Minute
	s := New(cfg)

	current := time.Unix(1000, 0)
	s.now = func() time.Time { return current }

	s.Put(testScope, []plume.Entry{{ID: "a"}}, plume.ListMeta{Total: 1})
	_, _, ok := s.Get(testScope)
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, _, ok = s.Get(testScope)
	assert.False(t, ok, "entries older than the TTL are not served")
}

func TestStaleAllowedServesExpiredScope(t *testing.T) {
	cfg := plume.DefaultConfig().Cache
	cfg.TTL = time.Minute
	cfg.StaleAllowed = true
	s := New(cfg)

	current := time.Unix(1000, 0)
	s.now = func() time.Time { return current }

	s.Put(testScope, []plume.Entry{{ID: "a"}}, plume.ListMeta{Total: 1})
	current = current.Add(time.Hour)

	entries, _, ok := s.Get(testScope)
	require.True(t, ok, "stale scope is still served")
	assert.Len(t, entries, 1)

	s.Invalidate(testScope)
	_, _, ok = s.Get(testScope)
	assert.False(t, ok, "invalidation still removes stale scopes")
}

func TestPutTruncatesToPerScopeCapacity(t *testing.T) {
	cfg := plume.DefaultConfig().Cache
	cfg.MaxPerScope = 2
	s := New(cfg)

	s.Put(testScope, []plume.Entry{{ID: "a"}, {ID: "b"}, {ID: "c"}}, plume.ListMeta{Total: 3})

	entries, meta, ok := s.Get(testScope)
	require.True(t, ok)
	assert.Len(t, entries, 2)
	assert.Equal(t, 3, meta.Total, "meta keeps the server total")
}

func TestPutEvictsOldestScopeAtCapacity(t *testing.T) {
	cfg := plume.DefaultConfig().Cache
	cfg.MaxScopes = 2
	s := New(cfg)

	current := time.Unix(1000, 0)
	s.now = func() time.Time { return current }

	older := Scope{Org: "acme", Workspace: "main", Collection: "older"}
	newer := Scope{Org: "acme", Workspace: "main", Collection: "newer"}

	s.Put(older, []plume.Entry{{ID: "a"}}, plume.ListMeta{Total: 1})
	current = current.Add(time.Second)
	s.Put(newer, []plume.Entry{{ID: "b"}}, plume.ListMeta{Total: 1})
	current = current.Add(time.Second)
	s.Put(testScope, []plume.Entry{{ID: "c"}}, plume.ListMeta{Total: 1})

	_, _, ok := s.Get(older)
	assert.False(t, ok, "least recently fetched scope is evicted")
	_, _, ok = s.Get(newer)
	assert.True(t, ok)
	_, _, ok = s.Get(testScope)
	assert.True(t, ok)
}

func TestInsertTentativeIsVisibleImmediately(t *testing.T) {
	s := newTestStore()
	s.Put(testScope, []plume.Entry{{ID: "a"}}, plume.ListMeta{Total: 1})

	id := s.InsertTentative(testScope, plume.Entry{Status: plume.EntryStatusDraft})
	require.NotEmpty(t, id)

	entries, meta, ok := s.Get(testScope)
	require.True(t, ok)
	require.Len(t, entries, 2)
	assert.Equal(t, id, entries[0].ID, "pending record is prepended under its handle")
	assert.Equal(t, 2, meta.Total)
	assert.Equal(t, 1, s.Pending(testScope))
}

func TestConfirmReplacesTentative(t *testing.T) {
	s := newTestStore()
	s.Put(testScope, []plume.Entry{{ID: "a"}}, plume.ListMeta{Total: 1})
	id := s.InsertTentative(testScope, plume.Entry{})

	require.NoError(t, s.Confirm(testScope, id, plume.Entry{ID: "server-1", Status: plume.EntryStatusDraft}))

	entries, _, ok := s.Get(testScope)
	require.True(t, ok)
	require.Len(t, entries, 2)
	assert.Equal(t, "server-1", entries[0].ID)
	assert.Equal(t, 0, s.Pending(testScope))

	// One representation only: the handle is gone.
	for _, e := range entries {
		assert.NotEqual(t, id, e.ID)
	}
}

func TestConfirmDeduplicatesAgainstRefresh(t *testing.T) {
	s := newTestStore()
	s.Put(testScope, []plume.Entry{{ID: "a"}}, plume.ListMeta{Total: 1})
	id := s.InsertTentative(testScope, plume.Entry{})

	// A concurrent refresh already delivered the server record.
	require.NoError(t, s.Confirm(testScope, id, plume.Entry{ID: "a"}))

	entries, meta, ok := s.Get(testScope)
	require.True(t, ok)
	require.Len(t, entries, 1, "exactly one representation of the record survives")
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, 1, meta.Total)
}

func TestRejectRemovesTentative(t *testing.T) {
	s := newTestStore()
	s.Put(testScope, []plume.Entry{{ID: "a"}}, plume.ListMeta{Total: 1})
	id := s.InsertTentative(testScope, plume.Entry{})

	require.NoError(t, s.Reject(testScope, id))

	entries, meta, ok := s.Get(testScope)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, 0, s.Pending(testScope))
}

func TestSettleUnknownHandle(t *testing.T) {
	s := newTestStore()
	s.Put(testScope, nil, plume.ListMeta{})

	err := s.Confirm(testScope, "nope", plume.Entry{ID: "x"})
	require.Error(t, err)
	assert.True(t, plume.IsNotFoundError(err))

	err = s.Reject(testScope, "nope")
	require.Error(t, err)
	assert.True(t, plume.IsNotFoundError(err))

	err = s.Confirm(Scope{Org: "missing"}, "nope", plume.Entry{})
	require.Error(t, err)
}

func TestInvalidate(t *testing.T) {
	other := Scope{Org: "acme", Workspace: "main", Collection: "pages"}
	s := newTestStore()
	s.Put(testScope, []plume.Entry{{ID: "a"}}, plume.ListMeta{Total: 1})
	s.Put(other, []plume.Entry{{ID: "b"}}, plume.ListMeta{Total: 1})

	s.Invalidate(testScope)
	_, _, ok := s.Get(testScope)
	assert.False(t, ok)
	_, _, ok = s.Get(other)
	assert.True(t, ok, "other scopes are untouched")

	s.InvalidateAll()
	_, _, ok = s.Get(other)
	assert.False(t, ok)
}
