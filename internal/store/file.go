package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/fentz26/daybook/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	fileExt         = ".json"
	activityFile    = "activity.jsonl"
	maxActivityRead = 1000
)

// File is a Backend that keeps each key in its own JSON file under dir.
type File struct {
	fs  afero.Fs
	dir string
}

var (
	_ Backend     = (*File)(nil)
	_ ActivityLog = (*File)(nil)
)

// NewFile creates a file backend rooted at dir on fsys.
func NewFile(fsys afero.Fs, dir string) (*File, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return &File{fs: fsys, dir: dir}, nil
}

// NewMemory returns a file backend on an in-memory filesystem.
func NewMemory() *File {
	f, _ := NewFile(afero.NewMemMapFs(), "/daybook")
	return f
}

func (f *File) path(key string) string {
	return path.Join(f.dir, key+fileExt)
}

// Get returns the document stored under key.
func (f *File) Get(key string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read key %s: %w", key, err)
	}
	return data, nil
}

// Put replaces the document stored under key. The write goes to a
// temporary file first and is renamed into place.
func (f *File) Put(key string, value []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, value, 0o600); err != nil {
		return fmt.Errorf("write key %s: %w", key, err)
	}
	if err := f.fs.Rename(tmp, f.path(key)); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("commit key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (f *File) Delete(key string) error {
	err := f.fs.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in lexical order.
func (f *File) Keys() ([]string, error) {
	entries, err := afero.ReadDir(f.fs, f.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", f.dir, err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; files are closed after every operation.
func (f *File) Close() error {
	return nil
}

// WriteActivity appends one JSON line to the activity log.
func (f *File) WriteActivity(a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	line, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}

	file, err := f.fs.OpenFile(path.Join(f.dir, activityFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

// ListActivity returns up to limit records, newest first. Lines that do
// not decode are skipped.
func (f *File) ListActivity(limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	file, err := f.fs.Open(path.Join(f.dir, activityFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	defer file.Close()

	var all []models.Activity
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		var a models.Activity
		if err := json.Unmarshal(sc.Bytes(), &a); err != nil {
			continue
		}
		all = append(all, a)
		if len(all) > maxActivityRead {
			all = all[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read activity log: %w", err)
	}

	out := make([]models.Activity, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
