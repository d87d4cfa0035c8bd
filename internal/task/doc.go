// Package task defines the task list value type, its blob codec and the error
// kinds shared by the store and the command line.
//
// This package contains values and pure functions only. It imports nothing
// internal, so every other package can depend on it.
//
// Key constraints:
//   - A List is an ordered sequence of strings; index is the only address
//   - List operations never modify their input, they return a fresh List
//   - The persisted form is a JSON array of strings, nothing else
package task
