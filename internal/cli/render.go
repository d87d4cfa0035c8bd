package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/tasklist/internal/task"
)

// ListResult is the JSON payload for list output.
type ListResult struct {
	Tasks   []string `json:"tasks"`
	Pending int      `json:"pending"`
}

// MutationResult is the JSON payload for add, edit and delete.
type MutationResult struct {
	Action  string   `json:"action"`
	Number  int      `json:"number,omitempty"` // 1-based task number affected
	Task    string   `json:"task,omitempty"`
	Changed bool     `json:"changed"`
	Tasks   []string `json:"tasks"`
	Pending int      `json:"pending"`
}

// ClearResult is the JSON payload for clear.
type ClearResult struct {
	Cleared int `json:"cleared"`
	Pending int `json:"pending"`
}

// CountResult is the JSON payload for count.
type CountResult struct {
	Pending int `json:"pending"`
}

var printer = message.NewPrinter(language.English)

func pendingLine(n int) string {
	return printer.Sprintf("Pending: %d\n", n)
}

// renderList numbers tasks from 1, right-aligning the numbers.
func renderList(tasks []string) string {
	var b strings.Builder
	width := len(strconv.Itoa(len(tasks)))
	for i, t := range tasks {
		fmt.Fprintf(&b, "%*d. %s\n", width, i+1, t)
	}
	b.WriteString(pendingLine(len(tasks)))
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return printer.Sprintf("%d %s", n, word)
	}
	return printer.Sprintf("%d %ss", n, word)
}

// taskText joins command arguments into one task and normalizes it to NFC
// so visually identical input is stored identically.
func taskText(args []string) string {
	return norm.NFC.String(strings.Join(args, " "))
}

// parseTaskNumber converts a 1-based task number to a list index.
// Range is checked by the store, not here.
func parseTaskNumber(out *OutputFormatter, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, out.fail(ExitCommandError, ErrCodeInvalidArg,
			fmt.Sprintf("invalid task number %q", arg), nil)
	}
	return n - 1, nil
}

// indexError reports a task number outside the list.
func indexError(out *OutputFormatter, index int, err error) error {
	var ie *task.IndexOutOfRangeError
	if !errors.As(err, &ie) {
		return WrapExitError(ExitFailure, ErrCodeGeneric, err)
	}
	return out.fail(ExitFailure, ErrCodeIndexRange,
		fmt.Sprintf("task %d does not exist (%s)", index+1, strings.TrimSpace(pendingLine(ie.Length))), nil)
}

// current loads the list a mutating command starts from. A corrupt blob is
// recovered as an empty list, like Initialize. An unreadable slot is not:
// writing over state we could not read (for example under the wrong key)
// would destroy it.
func current(ctx context.Context, s *session) (task.List, error) {
	list, _, err := s.tasks.Load(ctx)
	switch {
	case err == nil:
		if list == nil {
			list = task.List{}
		}
		return list, nil
	case task.IsCorruptState(err):
		s.logger.Warn("corrupt task blob, starting with empty list", "error", err)
		return task.List{}, nil
	default:
		s.logger.Error("could not read tasks", "error", err)
		return nil, s.out.fail(ExitFailure, ErrCodeStorageRead,
			"stored tasks could not be read; not overwriting them", nil)
	}
}

// finishMutation prints the result of a mutation. When the save failed the
// change is still reported (it happened in memory) but the command exits
// with ErrCodeNotSaved.
func finishMutation(out *OutputFormatter, res interface{}, text string, err error) error {
	if err == nil {
		return out.Result(res, text)
	}
	if !task.IsPersistence(err) {
		return WrapExitError(ExitFailure, ErrCodeGeneric, err)
	}

	if out.Format == "json" {
		return out.fail(ExitFailure, ErrCodeNotSaved, "change not saved", res)
	}
	if werr := out.Result(res, text); werr != nil {
		return werr
	}
	return WrapExitError(ExitFailure, ErrCodeNotSaved+": change not saved", err)
}
