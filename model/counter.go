package model

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Counter hands out invoice numbers.
type Counter interface {
	Next() (string, error)
}

// FormatInvoiceNumber pads to three digits: INV-001, INV-042, INV-1000.
func FormatInvoiceNumber(n int) string {
	return fmt.Sprintf("INV-%03d", n)
}

// StoreCounter keeps the last used number under KeyInvoiceCounter. It only
// ever counts up, numbers of deleted invoices are not handed out again.
type StoreCounter struct {
	mu sync.Mutex
	kv KV
}

// NewStoreCounter returns a counter persisted in kv.
func NewStoreCounter(kv KV) *StoreCounter {
	return &StoreCounter{kv: kv}
}

// Current returns the last number handed out, 0 if none or unreadable.
// Only leading digits count, a hand edited "5abc" reads as 5.
func (c *StoreCounter) Current() (int, error) {
	raw, ok, err := c.kv.Get(KeyInvoiceCounter)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", KeyInvoiceCounter, err)
	}
	if !ok {
		return 0, nil
	}
	raw = strings.TrimSpace(raw)
	end := strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(raw)
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// Next increments and persists the counter and returns the formatted number.
func (c *StoreCounter) Next() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, err := c.Current()
	if err != nil {
		return "", err
	}
	n++
	if err = c.kv.Set(KeyInvoiceCounter, strconv.Itoa(n)); err != nil {
		return "", fmt.Errorf("save %s: %w", KeyInvoiceCounter, err)
	}
	return FormatInvoiceNumber(n), nil
}

// MemoryCounter is a counter for tests.
type MemoryCounter struct {
	mu sync.Mutex
	n  int
}

// NewMemoryCounter starts counting after start.
func NewMemoryCounter(start int) *MemoryCounter {
	return &MemoryCounter{n: start}
}

func (c *MemoryCounter) Next() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return FormatInvoiceNumber(c.n), nil
}
