package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// MemoryClient é um Client em memória, para ambientes sem Redis e para testes.
// Não é compartilhado entre instâncias da API.
type MemoryClient struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero = sem expiração
}

// NewMemoryClient cria um cache em memória com o relógio do sistema.
func NewMemoryClient() *MemoryClient {
	return NewMemoryClientWithClock(time.Now)
}

// NewMemoryClientWithClock cria um cache em memória com relógio injetável.
func NewMemoryClientWithClock(now func() time.Time) *MemoryClient {
	return &MemoryClient{now: now, entries: make(map[string]memoryEntry)}
}

func (c *MemoryClient) live(key string) (memoryEntry, bool) {
	entry, ok := c.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

// Get recupera o valor associado a uma chave.
func (c *MemoryClient) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.live(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

// Set grava o valor. []byte e string são guardados como texto, o resto via fmt.
func (c *MemoryClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := memoryEntry{value: stringify(value)}
	if expiration > 0 {
		entry.expiresAt = c.now().Add(expiration)
	}
	c.entries[key] = entry
	return nil
}

// Delete remove uma chave do cache.
func (c *MemoryClient) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Incr segue a mesma semântica de janela fixa do RedisClient.
func (c *MemoryClient) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.live(key)
	if !ok {
		entry = memoryEntry{value: "0", expiresAt: c.now().Add(window)}
	}
	current, err := strconv.ParseInt(entry.value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cache: valor de '%s' não é inteiro", key)
	}
	current++
	entry.value = strconv.FormatInt(current, 10)
	c.entries[key] = entry
	return current, nil
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
