package masters

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when a record ID has no entry.
var ErrNotFound = errors.New("master record not found")

// Collection is a mutex-guarded in-memory table of one master-data
// record type. Identifier access is parameterised so every entity type
// shares the same CRUD behaviour.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	id    func(*T) string
	setID func(*T, string)
}

// NewCollection creates an empty collection using the given identifier
// accessors.
func NewCollection[T any](id func(*T) string, setID func(*T, string)) *Collection[T] {
	return &Collection[T]{
		items: make(map[string]T),
		id:    id,
		setID: setID,
	}
}

// Create stores a new record, assigning an identifier when the record
// carries none, and returns the stored value.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.id(&item) == "" {
		c.setID(&item, uuid.New().String())
	}
	c.items[c.id(&item)] = item
	return item, nil
}

// Get returns the record with the given ID.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

// Update replaces the record with the given ID.
func (c *Collection[T]) Update(ctx context.Context, id string, item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		var zero T
		return zero, ErrNotFound
	}
	c.setID(&item, id)
	c.items[id] = item
	return item, nil
}

// Delete removes the record with the given ID.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return ErrNotFound
	}
	delete(c.items, id)
	return nil
}

// List returns every record ordered by ID.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.items[id])
	}
	return out, nil
}

// Len reports the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Registry bundles the master-data collections behind the settings
// screens.
type Registry struct {
	Companies  *Collection[Company]
	Buildings  *Collection[Building]
	Branches   *Collection[Branch]
	Menus      *Collection[MenuItem]
	Roles      *Collection[Role]
	StaffTypes *Collection[StaffType]
}

// NewRegistry creates empty collections for every master type.
func NewRegistry() *Registry {
	return &Registry{
		Companies: NewCollection(
			func(c *Company) string { return c.ID },
			func(c *Company, id string) { c.ID = id },
		),
		Buildings: NewCollection(
			func(b *Building) string { return b.ID },
			func(b *Building, id string) { b.ID = id },
		),
		Branches: NewCollection(
			func(b *Branch) string { return b.ID },
			func(b *Branch, id string) { b.ID = id },
		),
		Menus: NewCollection(
			func(m *MenuItem) string { return m.ID },
			func(m *MenuItem, id string) { m.ID = id },
		),
		Roles: NewCollection(
			func(r *Role) string { return r.ID },
			func(r *Role, id string) { r.ID = id },
		),
		StaffTypes: NewCollection(
			func(s *StaffType) string { return s.ID },
			func(s *StaffType, id string) { s.ID = id },
		),
	}
}
