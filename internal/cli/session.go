package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/config"
	"github.com/roach88/tasklist/internal/secure"
	"github.com/roach88/tasklist/internal/store"
	"github.com/roach88/tasklist/internal/tasklist"
)

// UUIDv7Generator generates time-sortable UUIDv7 session ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// session holds everything one command invocation needs.
// Always Close it.
type session struct {
	id     string
	cfg    config.Config
	db     *store.Store
	tasks  *tasklist.Store
	logger *slog.Logger
	out    *OutputFormatter
}

// openSession loads config, applies flag overrides, opens the database and
// key file and builds the task store. Failures are reported through the
// formatter and returned as ExitCommandError.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	ids := opts.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	id := ids.Generate()

	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // logs go to stderr to avoid corrupting JSON
		TraceID:   id,
	}
	if out.Format == "" {
		out.Format = "text"
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, out.fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	if opts.Format == "" {
		out.Format = cfg.Format
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.KeyFile != "" {
		cfg.KeyFile = opts.KeyFile
	}

	logger := newLogger(out, cfg, opts.Verbose).With("session", id)

	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0o700); err != nil {
		return nil, out.fail(ExitCommandError, ErrCodeStorageOpen,
			fmt.Sprintf("create data dir: %v", err), nil)
	}

	logger.Debug("opening database", "path", cfg.Database)
	db, err := store.Open(cfg.Database)
	if err != nil {
		return nil, out.fail(ExitCommandError, ErrCodeStorageOpen, err.Error(), nil)
	}

	key, created, err := secure.LoadOrCreateKey(cfg.KeyFile)
	if err != nil {
		db.Close()
		return nil, out.fail(ExitCommandError, ErrCodeStorageOpen, err.Error(), nil)
	}
	if created {
		logger.Info("created master key", "path", cfg.KeyFile)
	}

	vault, err := secure.NewVault(db, key)
	if err != nil {
		db.Close()
		return nil, out.fail(ExitCommandError, ErrCodeStorageOpen, err.Error(), nil)
	}

	return &session{
		id:     id,
		cfg:    cfg,
		db:     db,
		tasks:  tasklist.New(vault, tasklist.WithKey(cfg.StorageKey), tasklist.WithLogger(logger)),
		logger: logger,
		out:    out,
	}, nil
}

// newLogger builds the session logger on the formatter's diagnostic writer.
// --verbose forces debug level; otherwise the config level applies.
func newLogger(out *OutputFormatter, cfg config.Config, verbose bool) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	if out.Format == "json" {
		return slog.New(slog.NewJSONHandler(out.GetErrWriter(), hopts))
	}
	return slog.New(slog.NewTextHandler(out.GetErrWriter(), hopts))
}

// Close releases the database.
func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
}

// withSession opens a session, runs fn and closes the session.
func withSession(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, s)
}
