package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileKV stores all keys in one JSON object on disk. The file is read on
// every call so that a second process sees the latest writes, and replaced
// through a rename so a crash never leaves half a document behind. A file
// that is not a JSON object is renamed to <name>.corrupt-<timestamp>.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// NewFileKV returns a store backed by the file at path. The file is created
// on the first write.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

func (kv *FileKV) read() (map[string]string, error) {
	data, err := os.ReadFile(kv.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	m := map[string]string{}
	if len(data) == 0 {
		return m, nil
	}
	if err = json.Unmarshal(data, &m); err != nil {
		return kv.quarantine(err)
	}
	return m, nil
}

// quarantine moves a broken document aside so the store starts over empty.
// The old file stays next to the new one for manual recovery.
func (kv *FileKV) quarantine(cause error) (map[string]string, error) {
	backup := kv.path + ".corrupt-" + time.Now().Format("20060102-150405.000000000")
	if err := os.Rename(kv.path, backup); err != nil {
		return nil, fmt.Errorf("read store %s: %v, cannot move it aside: %w", kv.path, cause, err)
	}
	slog.Warn("store file is corrupt, starting empty", "path", kv.path, "backup", backup, "error", cause)
	return map[string]string{}, nil
}

func (kv *FileKV) write(m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(kv.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".invoicedesk-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), kv.path)
}

func (kv *FileKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	m, err := kv.read()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (kv *FileKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	m, err := kv.read()
	if err != nil {
		return err
	}
	m[key] = value
	return kv.write(m)
}

func (kv *FileKV) Clear() error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if err := os.Remove(kv.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
