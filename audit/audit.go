// Package audit records every change made to the stored data.
//
// Recording is fire and forget: a failing audit log never stops the
// change it describes from happening.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/angoly-ara/inventory/ctx"
)

// Categories used by the catalog.
const (
	CategoryClients    = "CLIENTS"
	CategoryWarehouses = "WAREHOUSES"
	CategoryProducts   = "PRODUCTS"
)

const unknownUser = "unknown"

// Actor is whoever performs a change.
type Actor interface {
	Name() string
}

// User is the simplest Actor, identified by its name.
type User string

func (u User) Name() string { return string(u) }

// Log receives one entry per change.
type Log interface {
	Record(ctx context.Context, actor Actor, category string, message string)
}

// Entry is a single line of the audit log.
type Entry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	User     string    `json:"user"`
	Category string    `json:"category"`
	Message  string    `json:"message"`
}

// actorName resolves the name to record: the actor, the user in ctx, or "unknown".
func actorName(c context.Context, actor Actor) string {
	if actor != nil && actor.Name() != "" {
		return actor.Name()
	}

	if name, ok := ctx.User(c); ok {
		return name
	}

	return unknownUser
}

// NoopLog discards every entry.
type NoopLog struct{}

var _ Log = NoopLog{}

func (NoopLog) Record(context.Context, Actor, string, string) {}

// MemoryLog keeps all entries in memory. Use it in tests.
type MemoryLog struct {
	mu      sync.Mutex
	entries []Entry
}

var _ Log = (*MemoryLog)(nil)

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{entries: []Entry{}}
}

func (l *MemoryLog) Record(ctx context.Context, actor Actor, category string, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, newEntry(ctx, actor, category, message))
}

// Entries returns a copy of all recorded entries in order.
func (l *MemoryLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]Entry{}, l.entries...)
}

// Messages returns the messages of all recorded entries in order.
func (l *MemoryLog) Messages() []string {
	entries := l.Entries()
	msgs := make([]string, 0, len(entries))

	for _, e := range entries {
		msgs = append(msgs, e.Message)
	}

	return msgs
}
