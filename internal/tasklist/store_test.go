package tasklist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tasklist/internal/secure"
	"github.com/roach88/tasklist/internal/store"
	"github.com/roach88/tasklist/internal/task"
	"github.com/roach88/tasklist/internal/testutil"
)

func newTestStore(t *testing.T) (*Store, *testutil.MemorySlots) {
	t.Helper()
	slots := testutil.NewMemorySlots()
	return New(slots), slots
}

// requirePersisted asserts the blob under DefaultKey decodes to want.
func requirePersisted(t *testing.T, slots *testutil.MemorySlots, want task.List) {
	t.Helper()
	blob, ok := slots.Value(DefaultKey)
	require.True(t, ok, "nothing persisted")
	got, err := task.Decode(blob)
	require.NoError(t, err)
	assert.True(t, task.Equal(want, got), "persisted %q, want %q", got, want)
}

func TestInitialize_Empty(t *testing.T) {
	s, slots := newTestStore(t)

	list := s.Initialize(context.Background())
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Equal(t, 0, slots.Writes(), "initialize must not write")
}

func TestInitialize_Hydrates(t *testing.T) {
	s, slots := newTestStore(t)
	slots.Put(DefaultKey, `["a","b"]`)

	assert.Equal(t, task.List{"a", "b"}, s.Initialize(context.Background()))
}

func TestInitialize_CorruptBlobYieldsEmpty(t *testing.T) {
	for _, blob := range []string{"not an array", `{"a":1}`, `["a",2]`, ""} {
		slots := testutil.NewMemorySlots()
		slots.Put(DefaultKey, blob)

		var logs bytes.Buffer
		s := New(slots, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

		list := s.Initialize(context.Background())
		assert.Empty(t, list, "blob %q", blob)
		assert.Contains(t, logs.String(), "corrupt task blob")
		assert.Equal(t, 0, slots.Writes())
	}
}

func TestInitialize_ReadFailureYieldsEmpty(t *testing.T) {
	s, slots := newTestStore(t)
	slots.Put(DefaultKey, `["a"]`)
	slots.FailGets(errors.New("locked"))

	assert.Empty(t, s.Initialize(context.Background()))
}

func TestLoad(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()

	list, found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, list)

	slots.Put(DefaultKey, `[1]`)
	list, found, err = s.Load(ctx)
	assert.True(t, found)
	assert.Nil(t, list)
	var ce *task.CorruptStateError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, DefaultKey, ce.Key)

	boom := errors.New("io")
	slots.FailGets(boom)
	_, _, err = s.Load(ctx)
	assert.True(t, task.IsPersistence(err))
	assert.ErrorIs(t, err, boom)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	lists := []task.List{
		{},
		{"task1"},
		{"dup", "dup"},
		{"", "  ", "ünïcödé", `"quoted"`},
	}
	for _, l := range lists {
		s, _ := newTestStore(t)
		ctx := context.Background()

		require.NoError(t, s.Save(ctx, l))
		got, found, err := s.Load(ctx)
		require.NoError(t, err)
		assert.True(t, found)
		assert.True(t, task.Equal(l, got), "round trip of %q gave %q", l, got)
	}
}

func TestSave_NilListPersistsEmptyArray(t *testing.T) {
	s, slots := newTestStore(t)
	require.NoError(t, s.Save(context.Background(), nil))

	blob, _ := slots.Value(DefaultKey)
	assert.Equal(t, "[]", blob)
}

func TestSave_FailureKeepsPreviousBlob(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, task.List{"old"}))
	slots.FailSets(errors.New("read-only"))

	err := s.Save(ctx, task.List{"new"})
	var pe *task.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "save", pe.Op)
	assert.Equal(t, DefaultKey, pe.Key)

	requirePersisted(t, slots, task.List{"old"})
}

func TestWithKey(t *testing.T) {
	slots := testutil.NewMemorySlots()
	s := New(slots, WithKey("work"))
	assert.Equal(t, "work", s.Key())

	_, err := s.Add(context.Background(), nil, "x")
	require.NoError(t, err)

	_, ok := slots.Value("work")
	assert.True(t, ok)
	_, ok = slots.Value(DefaultKey)
	assert.False(t, ok)
}

func TestStore_SQLiteVaultIntegration(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	open := func() (*Store, func()) {
		db, err := store.Open(filepath.Join(dir, "tasks.db"))
		require.NoError(t, err)
		key, _, err := secure.LoadOrCreateKey(filepath.Join(dir, "master.key"))
		require.NoError(t, err)
		vault, err := secure.NewVault(db, key)
		require.NoError(t, err)
		return New(vault), func() { db.Close() }
	}

	s, closeFn := open()
	list := s.Initialize(ctx)
	list, err := s.Add(ctx, list, "persist me")
	require.NoError(t, err)
	list, err = s.Add(ctx, list, "and me")
	require.NoError(t, err)
	closeFn()

	s, closeFn = open()
	defer closeFn()
	assert.Equal(t, task.List{"persist me", "and me"}, s.Initialize(ctx))
}
