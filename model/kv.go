package model

import (
	"io"
	"sync"
)

// KV is the key-value store behind Storage. Every call is synchronous and
// writes a single key. Implementations do not coordinate between processes,
// the last write of a key wins.
type KV interface {
	// Get returns ok=false for a key that was never set.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Clear removes every key.
	Clear() error
}

// MemoryKV keeps everything in a map. Used in tests and for -mode memory.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: map[string]string{}}
}

func (kv *MemoryKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *MemoryKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = value
	return nil
}

func (kv *MemoryKV) Clear() error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m = map[string]string{}
	return nil
}

// CloseKV closes kv if the backend holds resources.
func CloseKV(kv KV) error {
	if c, ok := kv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
