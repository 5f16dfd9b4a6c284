package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebridge/go-hospital-admin/kv"
	"github.com/carebridge/go-hospital-admin/theming"
)

const (
	defaultIdleTTL  = 12 * time.Hour
	janitorInterval = time.Minute
)

// Handle pairs a session's store with its presentation document.
type Handle struct {
	ID       string
	Store    *Store
	Document *theming.Document
}

// Manager hosts one session store per device session. Stores are
// created lazily, restored from their snapshot namespace on first
// touch, and evicted after sitting idle; an evicted session is rebuilt
// from its snapshots on the next request.
type Manager struct {
	mu        sync.Mutex
	entries   map[string]*managedEntry
	dir       Directory
	backend   kv.Store
	idleTTL   time.Duration
	log       zerolog.Logger
	onRestore func()
	done      chan struct{}
	once      sync.Once
}

type managedEntry struct {
	handle   *Handle
	lastSeen time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithIdleTTL sets how long an untouched session store stays resident.
func WithIdleTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) { m.idleTTL = ttl }
}

// WithManagerLogger sets the manager's logger.
func WithManagerLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) { m.log = log }
}

// WithRestoreHook registers a callback invoked whenever a freshly
// created store restores a session from its snapshots.
func WithRestoreHook(hook func()) ManagerOption {
	return func(m *Manager) { m.onRestore = hook }
}

// NewManager creates a manager whose sessions snapshot into backend
// under per-session namespaces.
func NewManager(dir Directory, backend kv.Store, options ...ManagerOption) *Manager {
	m := &Manager{
		entries: make(map[string]*managedEntry),
		dir:     dir,
		backend: backend,
		idleTTL: defaultIdleTTL,
		log:     zerolog.Nop(),
		done:    make(chan struct{}),
	}
	for _, opt := range options {
		opt(m)
	}
	go m.janitor()
	return m
}

// Get returns the session for sid, creating and restoring it when not
// resident.
func (m *Manager) Get(ctx context.Context, sid string) (*Handle, error) {
	m.mu.Lock()
	if entry, ok := m.entries[sid]; ok {
		entry.lastSeen = time.Now()
		handle := entry.handle
		m.mu.Unlock()
		return handle, nil
	}
	m.mu.Unlock()

	doc := theming.NewDocument()
	store, err := NewStore(m.dir, kv.NewScoped(m.backend, "session:"+sid),
		WithApplier(doc),
		WithLogger(m.log.With().Str("sid", sid).Logger()),
	)
	if err != nil {
		return nil, err
	}
	if store.Restore(ctx) && m.onRestore != nil {
		m.onRestore()
	}

	handle := &Handle{ID: sid, Store: store, Document: doc}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have raced us here; keep the first one.
	if entry, ok := m.entries[sid]; ok {
		entry.lastSeen = time.Now()
		return entry.handle, nil
	}
	m.entries[sid] = &managedEntry{handle: handle, lastSeen: time.Now()}
	return handle, nil
}

// Drop evicts a session store. Its snapshots are untouched, so the
// session reappears on the next Get unless it was logged out first.
func (m *Manager) Drop(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sid)
}

// Len reports the number of resident session stores.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close stops the eviction janitor.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.done) })
}

func (m *Manager) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle(time.Now())
		case <-m.done:
			return
		}
	}
}

func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for sid, entry := range m.entries {
		if now.Sub(entry.lastSeen) > m.idleTTL {
			delete(m.entries, sid)
			m.log.Debug().Str("sid", sid).Msg("evicted idle session store")
		}
	}
}
