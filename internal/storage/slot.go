// Package storage provides durable key-value slots that hold whole serialized state blobs.
package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Slot is a durable key-value store for opaque state snapshots.
// Get returns (nil, false, nil) when the key holds nothing.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options selects and configures a slot backend.
type Options struct {
	Backend     string
	DataDir     string
	RedisAddr   string
	RedisPass   string
	DatabaseURL string
}

// Open creates the slot described by opts.
func Open(ctx context.Context, opts Options) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return NewFileSlot(opts.DataDir)
	case BackendMemory:
		return NewMemorySlot(), nil
	case BackendRedis:
		return NewRedisSlot(ctx, opts.RedisAddr, opts.RedisPass)
	case BackendPostgres:
		return NewPostgresSlot(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", opts.Backend)
	}
}

// MemorySlot keeps blobs in process memory. State does not survive a restart.
type MemorySlot struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySlot creates an empty in-memory slot
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: make(map[string][]byte)}
}

// Get implements Slot
func (m *MemorySlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements Slot
func (m *MemorySlot) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements Slot
func (m *MemorySlot) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close implements Slot
func (m *MemorySlot) Close() error {
	return nil
}
