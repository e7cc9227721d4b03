package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fentz26/daybook/internal/audit"
	"github.com/fentz26/daybook/internal/config"
	"github.com/fentz26/daybook/internal/planner"
	"github.com/fentz26/daybook/internal/store"
	"github.com/spf13/afero"
)

// backend is a key-value store that also keeps the activity log.
type backend interface {
	store.Backend
	store.ActivityLog
}

// session is one opened data directory.
type session struct {
	cfg     *config.Config
	dir     string
	state   *planner.State
	rec     *audit.Recorder
	backend backend
	lock    *store.DirLock
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromHome()
	}
	if err != nil {
		return nil, err
	}

	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if backendFlag != "" {
		cfg.Backend = backendFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession locks the data directory and loads the planner state.
func openSession(opts ...planner.Option) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}

	lock, err := store.LockDir(dir)
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			return nil, fmt.Errorf("%w (is the TUI or a reminder loop running?)", err)
		}
		return nil, err
	}

	var b backend
	switch cfg.Backend {
	case config.BackendFile:
		b, err = store.NewFile(afero.NewOsFs(), dir)
	default:
		var path string
		path, err = cfg.DBPath()
		if err == nil {
			b, err = store.New(path)
		}
	}
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	rec := audit.NewRecorder(b, planner.Outcome)
	opts = append([]planner.Option{
		planner.WithRecorder(rec),
		planner.WithUndoWindow(cfg.UndoWindow),
		planner.WithFocusLimit(cfg.FocusLimit),
	}, opts...)

	return &session{
		cfg:     cfg,
		dir:     dir,
		state:   planner.Open(b, opts...),
		rec:     rec,
		backend: b,
		lock:    lock,
	}, nil
}

func (s *session) Close() error {
	err := s.backend.Close()
	if uerr := s.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}

// withSession opens the data directory for the duration of fn.
func withSession(fn func(s *session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// resolveID finds the item whose id equals ref or uniquely starts with it.
func resolveID[T any](kind string, items []T, id func(T) string, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: %s %q", planner.ErrNotFound, kind, ref)
	}
	var match string
	for _, it := range items {
		v := id(it)
		if v == ref {
			return v, nil
		}
		if strings.HasPrefix(v, ref) {
			if match != "" {
				return "", fmt.Errorf("%s id %q is ambiguous", kind, ref)
			}
			match = v
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s %q", planner.ErrNotFound, kind, ref)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// warnPersist reports a change that was applied but could not be saved.
func warnPersist(err error) error {
	if errors.Is(err, planner.ErrPersist) {
		return fmt.Errorf("change was not saved: %w", err)
	}
	return err
}
