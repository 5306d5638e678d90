package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// File keeps every key in one JSON object file, mirroring browser local storage.
// Writes go to a temp file that is renamed over the original.
// A file that does not hold a JSON object of strings reads as empty and is replaced by the next write.
type File struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
	// warned is set once a corrupt file has been logged
	warned bool
}

// OpenFile opens (or prepares to create) the state file at path
func OpenFile(path string, logger zerolog.Logger) (*File, error) {
	if path == "" {
		return nil, &Error{Backend: BackendFile, Message: "state path is required"}
	}
	f := &File{path: path, logger: logger}
	if _, err := f.read(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the state file location
func (f *File) Path() string {
	return f.path
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, &Error{Backend: BackendFile, Message: fmt.Sprintf("failed to read %s", f.path), Cause: err}
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		if !f.warned {
			f.warned = true
			f.logger.Warn().Err(err).Str("path", f.path).Msg("state file is corrupt; starting from defaults")
		}
		return map[string]string{}, nil
	}
	return values, nil
}

func (f *File) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return &Error{Backend: BackendFile, Message: "failed to encode state", Cause: err}
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Backend: BackendFile, Message: fmt.Sprintf("failed to create %s", dir), Cause: err}
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return &Error{Backend: BackendFile, Message: "failed to create temp file", Cause: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &Error{Backend: BackendFile, Message: "failed to write temp file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &Error{Backend: BackendFile, Message: "failed to close temp file", Cause: err}
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return &Error{Backend: BackendFile, Message: fmt.Sprintf("failed to replace %s", f.path), Cause: err}
	}
	return nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = string(value)
	return f.write(values)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.write(values)
}

// Clear removes the tool's keys and leaves any other keys in the file alone
func (f *File) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	for _, key := range Keys {
		delete(values, key)
	}
	return f.write(values)
}

func (f *File) Close() error {
	return nil
}
