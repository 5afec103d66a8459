package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/recording"
	"github.com/BALASANKARP/Edurecap/internal/store"
)

// Observer receives a copy of the catalog after every committed change.
type Observer func(recs []recording.Recording)

// Catalog is the ordered list of saved recordings. Every mutation is written
// through to the store before it becomes visible in memory.
type Catalog struct {
	mu        sync.Mutex
	store     store.Store
	logger    logger.Logger
	recs      []recording.Recording
	observers map[int]Observer
	nextID    int
}

func New(s store.Store, log logger.Logger) *Catalog {
	return &Catalog{
		store:     s,
		logger:    log,
		observers: make(map[int]Observer),
	}
}

// Load replaces the in-memory list with what the store holds.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	recs, err := c.store.LoadAll(ctx)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.recs = recs
	c.logger.Debug(ctx, "Loaded %d recordings", len(recs))
	c.unlockAndNotify()
	return nil
}

func (c *Catalog) All() []recording.Recording {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.recs)
}

func (c *Catalog) At(i int) (recording.Recording, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.recs) {
		return recording.Recording{}, fmt.Errorf("%w: index %d out of range [0, %d)", recording.ErrValidation, i, len(c.recs))
	}
	return c.recs[i], nil
}

// Contains reports whether a recording with the given name exists.
func (c *Catalog) Contains(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.recs {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (c *Catalog) Append(ctx context.Context, rec recording.Recording) error {
	c.mu.Lock()

	next := make([]recording.Recording, 0, len(c.recs)+1)
	next = append(next, c.recs...)
	next = append(next, rec)

	if err := c.commit(ctx, next); err != nil {
		c.mu.Unlock()
		return err
	}
	c.unlockAndNotify()
	return nil
}

// RemoveAt deletes the entry at index i and returns it; later entries shift left.
func (c *Catalog) RemoveAt(ctx context.Context, i int) (recording.Recording, error) {
	c.mu.Lock()

	if i < 0 || i >= len(c.recs) {
		n := len(c.recs)
		c.mu.Unlock()
		return recording.Recording{}, fmt.Errorf("%w: index %d out of range [0, %d)", recording.ErrValidation, i, n)
	}
	removed := c.recs[i]

	next := make([]recording.Recording, 0, len(c.recs)-1)
	next = append(next, c.recs[:i]...)
	next = append(next, c.recs[i+1:]...)

	if err := c.commit(ctx, next); err != nil {
		c.mu.Unlock()
		return recording.Recording{}, err
	}
	c.unlockAndNotify()
	return removed, nil
}

// Subscribe registers fn and returns a function that removes it.
func (c *Catalog) Subscribe(fn Observer) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// commit must be called with mu held.
func (c *Catalog) commit(ctx context.Context, next []recording.Recording) error {
	if err := c.store.SaveAll(ctx, next); err != nil {
		c.logger.Error(ctx, "Failed to persist catalog: %v", err)
		return err
	}
	c.recs = next
	return nil
}

// unlockAndNotify releases mu and then calls observers, so an observer may
// read the catalog again.
func (c *Catalog) unlockAndNotify() {
	fns := make([]Observer, 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	recs := c.recs
	c.mu.Unlock()

	for _, fn := range fns {
		out := make([]recording.Recording, len(recs))
		copy(out, recs)
		fn(out)
	}
}

func (c *Catalog) snapshot() []recording.Recording {
	out := make([]recording.Recording, len(c.recs))
	copy(out, c.recs)
	return out
}
