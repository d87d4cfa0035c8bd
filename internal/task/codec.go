package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Encode serializes l to the persisted blob form: a JSON array of strings.
// HTML escaping is disabled so the blob stores text as typed.
// A nil list encodes as [].
func Encode(l List) (string, error) {
	if l == nil {
		l = List{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]string(l)); err != nil {
		return "", fmt.Errorf("encode task list: %w", err)
	}
	// Encoder adds a trailing newline
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode parses a persisted blob. The blob must be exactly one JSON array
// whose elements are all strings. Anything else, including null elements
// and trailing data, is rejected with a CorruptStateError and no partial
// list is returned.
func Decode(blob string) (List, error) {
	dec := json.NewDecoder(strings.NewReader(blob))

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &CorruptStateError{Err: fmt.Errorf("parse blob: %w", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &CorruptStateError{Err: errors.New("trailing data after task array")}
	}

	elems, ok := raw.([]any)
	if !ok {
		return nil, &CorruptStateError{Err: fmt.Errorf("expected array of strings, got %s", jsonKind(raw))}
	}

	out := make(List, 0, len(elems))
	for i, elem := range elems {
		s, ok := elem.(string)
		if !ok {
			return nil, &CorruptStateError{Err: fmt.Errorf("element %d: expected string, got %s", i, jsonKind(elem))}
		}
		out = append(out, s)
	}
	return out, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
