package tasklist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tasklist/internal/task"
	"github.com/roach88/tasklist/internal/testutil"
)

func TestAdd_Appends(t *testing.T) {
	s, slots := newTestStore(t)
	l := task.List{"a", "b"}

	out, err := s.Add(context.Background(), l, "buy milk")
	require.NoError(t, err)
	require.Len(t, out, len(l)+1)
	assert.Equal(t, "buy milk", out[len(out)-1])
	assert.Equal(t, task.List{"a", "b"}, l)
	requirePersisted(t, slots, out)
}

func TestAdd_BlankIsNoOp(t *testing.T) {
	s, slots := newTestStore(t)
	l := task.List{"a"}

	for _, text := range []string{"", "   "} {
		out, err := s.Add(context.Background(), l, text)
		require.NoError(t, err)
		assert.Equal(t, l, out)
	}
	assert.Equal(t, 0, slots.Writes())
}

func TestReplaceAt(t *testing.T) {
	s, slots := newTestStore(t)

	out, err := s.ReplaceAt(context.Background(), task.List{"a", "b"}, 1, "B")
	require.NoError(t, err)
	assert.Equal(t, task.List{"a", "B"}, out)
	requirePersisted(t, slots, out)
}

func TestReplaceAt_BlankAllowed(t *testing.T) {
	s, slots := newTestStore(t)

	out, err := s.ReplaceAt(context.Background(), task.List{"a"}, 0, "")
	require.NoError(t, err)
	assert.Equal(t, task.List{""}, out)
	requirePersisted(t, slots, task.List{""})
}

func TestRemoveAt_EveryIndex(t *testing.T) {
	l := task.List{"a", "b", "c"}
	for i := range l {
		s, slots := newTestStore(t)

		out, err := s.RemoveAt(context.Background(), l, i)
		require.NoError(t, err)
		require.Len(t, out, len(l)-1)

		want := append(task.Clone(l[:i]), l[i+1:]...)
		assert.Equal(t, want, out)
		requirePersisted(t, slots, want)
	}
}

func TestOutOfRange_NoWriteNoChange(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()
	l := task.List{"a", "b"}

	for _, i := range []int{-1, 2, 5} {
		out, err := s.ReplaceAt(ctx, l, i, "x")
		assert.True(t, task.IsIndexOutOfRange(err))
		assert.Equal(t, task.List{"a", "b"}, out)

		out, err = s.RemoveAt(ctx, l, i)
		assert.True(t, task.IsIndexOutOfRange(err))
		assert.Equal(t, task.List{"a", "b"}, out)
	}
	assert.Equal(t, 0, slots.Writes())
}

func TestClearAll_Empty(t *testing.T) {
	slots := testutil.NewMemorySlots()
	var logs bytes.Buffer
	s := New(slots, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	out, err := s.ClearAll(context.Background(), task.List{})
	assert.Equal(t, task.List{}, out)
	var w *task.NoOpWarning
	require.ErrorAs(t, err, &w)
	assert.Equal(t, "clear", w.Op)
	assert.Equal(t, 0, slots.Writes(), "clearing an empty list must not write")
	assert.Contains(t, logs.String(), "no tasks found")
}

func TestClearAll_NonEmpty(t *testing.T) {
	s, slots := newTestStore(t)

	out, err := s.ClearAll(context.Background(), task.List{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, task.List{}, out)

	blob, _ := slots.Value(DefaultKey)
	assert.Equal(t, "[]", blob)
}

func TestMutations_SaveFailureStillReturnsNewList(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()
	slots.FailSets(errors.New("disk full"))

	out, err := s.Add(ctx, task.List{"a"}, "b")
	assert.True(t, task.IsPersistence(err))
	assert.Equal(t, task.List{"a", "b"}, out)

	out, err = s.ReplaceAt(ctx, out, 0, "A")
	assert.True(t, task.IsPersistence(err))
	assert.Equal(t, task.List{"A", "b"}, out)

	out, err = s.RemoveAt(ctx, out, 1)
	assert.True(t, task.IsPersistence(err))
	assert.Equal(t, task.List{"A"}, out)

	out, err = s.ClearAll(ctx, out)
	assert.True(t, task.IsPersistence(err))
	assert.Equal(t, task.List{}, out)

	_, ok := slots.Value(DefaultKey)
	assert.False(t, ok)

	slots.FailSets(nil)
	_, err = s.Add(ctx, out, "recovered")
	require.NoError(t, err)
	requirePersisted(t, slots, task.List{"recovered"})
}

func TestGetAllAndCount(t *testing.T) {
	s, _ := newTestStore(t)
	l := task.List{"a", "b"}

	all := s.GetAll(l)
	assert.Equal(t, []string{"a", "b"}, all)
	all[0] = "changed"
	assert.Equal(t, "a", l[0], "GetAll must return a copy")

	assert.Equal(t, 2, s.Count(l))
	assert.Equal(t, 0, s.Count(nil))
}

func TestScenario_FullLifecycle(t *testing.T) {
	s, slots := newTestStore(t)
	ctx := context.Background()

	list := s.Initialize(ctx)
	assert.Empty(t, list)

	steps := []struct {
		name string
		run  func(task.List) (task.List, error)
		want task.List
	}{
		{"add task1", func(l task.List) (task.List, error) { return s.Add(ctx, l, "task1") }, task.List{"task1"}},
		{"add task2", func(l task.List) (task.List, error) { return s.Add(ctx, l, "task2") }, task.List{"task1", "task2"}},
		{"edit 0", func(l task.List) (task.List, error) { return s.ReplaceAt(ctx, l, 0, "task1-edited") }, task.List{"task1-edited", "task2"}},
		{"remove 1", func(l task.List) (task.List, error) { return s.RemoveAt(ctx, l, 1) }, task.List{"task1-edited"}},
		{"clear", func(l task.List) (task.List, error) { return s.ClearAll(ctx, l) }, task.List{}},
	}

	for _, step := range steps {
		var err error
		list, err = step.run(list)
		require.NoError(t, err, step.name)
		assert.Equal(t, step.want, list, step.name)
		requirePersisted(t, slots, step.want)
	}

	// A fresh store over the same slots sees the final state.
	assert.Empty(t, New(slots).Initialize(ctx))
}
