package tasklist

import (
	"context"

	"github.com/roach88/tasklist/internal/task"
)

// Add appends text and saves. Blank text is ignored: list is returned
// unchanged and nothing is written.
func (s *Store) Add(ctx context.Context, list task.List, text string) (task.List, error) {
	out, ok := task.Append(list, text)
	if !ok {
		s.logger.Debug("ignoring blank task")
		return list, nil
	}
	return out, s.Save(ctx, out)
}

// ReplaceAt sets the task at index to text and saves. Unlike Add, text is
// not checked for blankness.
func (s *Store) ReplaceAt(ctx context.Context, list task.List, index int, text string) (task.List, error) {
	out, err := task.Replace(list, index, text)
	if err != nil {
		return list, err
	}

	if task.IsBlank(text) {
		s.logger.Debug("task replaced with blank text", "index", index)
	}
	s.logger.Debug("updated task", "index", index, "task", text)
	return out, s.Save(ctx, out)
}

// RemoveAt deletes the task at index and saves.
func (s *Store) RemoveAt(ctx context.Context, list task.List, index int) (task.List, error) {
	out, err := task.Remove(list, index)
	if err != nil {
		return list, err
	}
	return out, s.Save(ctx, out)
}

// ClearAll empties the list and saves. Clearing an already empty list
// writes nothing and returns a NoOpWarning alongside the empty list.
func (s *Store) ClearAll(ctx context.Context, list task.List) (task.List, error) {
	if len(list) == 0 {
		s.logger.Warn("no tasks found")
		return task.List{}, &task.NoOpWarning{Op: "clear", Message: "no tasks found"}
	}

	out := task.List{}
	return out, s.Save(ctx, out)
}

// GetAll returns a copy of list for rendering.
func (s *Store) GetAll(list task.List) []string {
	return []string(task.Clone(list))
}

// Count returns the number of pending tasks.
func (s *Store) Count(list task.List) int {
	return len(list)
}
