// Package store owns the shelf items and user settings and keeps them
// flushed to a Persister after every mutation.
package store

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/entities"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const recordVersion = 0

type (
	State struct {
		Items    []entities.ShelfItem  `json:"items"`
		Settings entities.UserSettings `json:"settings"`
	}

	// record is the persisted layout: {"state":{...},"version":0,"revision":n}.
	// Revision grows by one with every successful flush.
	record struct {
		State    State `json:"state"`
		Version  int   `json:"version"`
		Revision int64 `json:"revision"`
	}

	Option func(*Store)

	Store struct {
		mu        sync.RWMutex
		persister Persister
		state     State
		lastSaved []byte
		revision  int64

		seed bool
		now  func() time.Time

		subsMu  sync.Mutex
		subs    map[int]func(State)
		nextSub int
	}
)

// WithSeedItems makes an empty store start out with the demo shelf.
func WithSeedItems(enabled bool) Option {
	return func(s *Store) {
		s.seed = enabled
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(persister Persister, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		now:       time.Now,
		subs:      make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.initialState()
	return s
}

func (st State) clone() State {
	items := make([]entities.ShelfItem, len(st.Items))
	copy(items, st.Items)
	return State{Items: items, Settings: st.Settings}
}

func (s *Store) initialState() State {
	st := State{
		Items:    []entities.ShelfItem{},
		Settings: entities.DefaultSettings(),
	}
	if s.seed {
		st.Items = SeedItems(s.now())
	}
	return st
}

func decodeRecord(data []byte) (record, error) {
	rec := record{State: State{Settings: entities.DefaultSettings()}}
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("%w: %w", domain.ErrStoreCorrupted, err)
	}
	if rec.State.Items == nil {
		rec.State.Items = []entities.ShelfItem{}
	}
	return rec, nil
}

func encodeRecord(st State, revision int64) ([]byte, error) {
	return json.Marshal(record{State: st, Version: recordVersion, Revision: revision})
}

// Load replaces the in-memory state with the persisted record. When nothing
// has been persisted yet the initial state is written out.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	s.mu.Lock()
	if len(data) == 0 {
		s.state = s.initialState()
		err = s.flushLocked(ctx)
		snap := s.state.clone()
		s.mu.Unlock()
		s.notify(snap)
		return err
	}

	rec, err := decodeRecord(data)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = rec.State
	s.revision = rec.Revision
	s.lastSaved = data
	snap := s.state.clone()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// ApplyExternal adopts a record written by someone else, such as a manual
// edit of the store file. Bytes identical to the last flush are ignored, and
// so is any record older than the current revision: a watcher may deliver
// one of our own earlier flushes after newer ones have landed.
func (s *Store) ApplyExternal(data []byte) (bool, error) {
	if len(data) == 0 {
		return false, nil
	}

	s.mu.Lock()
	if bytes.Equal(data, s.lastSaved) {
		s.mu.Unlock()
		return false, nil
	}
	rec, err := decodeRecord(data)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if rec.Revision < s.revision {
		s.mu.Unlock()
		return false, nil
	}
	s.state = rec.State
	s.revision = rec.Revision
	s.lastSaved = data
	snap := s.state.clone()
	s.mu.Unlock()

	s.notify(snap)
	return true, nil
}

// flushLocked writes the current state; callers hold s.mu for writing.
// The in-memory state is kept even when the write fails.
func (s *Store) flushLocked(ctx context.Context) error {
	next := s.revision + 1
	data, err := encodeRecord(s.state, next)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistFailed, err)
	}
	if err := s.persister.Save(ctx, data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistFailed, err)
	}
	s.revision = next
	s.lastSaved = data
	return nil
}

// mutate runs fn under the write lock and flushes when fn reports a change.
func (s *Store) mutate(ctx context.Context, fn func(st *State) bool) error {
	return s.mutateErr(ctx, func(st *State) (bool, error) {
		return fn(st), nil
	})
}

// mutateErr is mutate for changes that can be refused; a refusal leaves the
// state untouched and skips the flush.
func (s *Store) mutateErr(ctx context.Context, fn func(st *State) (bool, error)) error {
	s.mu.Lock()
	changed, err := fn(&s.state)
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	err = s.flushLocked(ctx)
	snap := s.state.clone()
	s.mu.Unlock()

	s.notify(snap)
	return err
}

// updateActive applies fn to an active item. Missing ids give
// ErrShelfItemNotFound and consumed or discarded items ErrShelfItemNotActive,
// both decided under the same lock as the change itself.
func (s *Store) updateActive(ctx context.Context, id string, fn func(item *entities.ShelfItem)) (entities.ShelfItem, error) {
	var updated entities.ShelfItem
	err := s.mutateErr(ctx, func(st *State) (bool, error) {
		for i := range st.Items {
			if st.Items[i].ID != id {
				continue
			}
			if st.Items[i].Status.Terminal() {
				return false, domain.ErrShelfItemNotActive
			}
			fn(&st.Items[i])
			updated = st.Items[i]
			return true, nil
		}
		return false, domain.ErrShelfItemNotFound
	})
	if err != nil && !errors.Is(err, domain.ErrPersistFailed) {
		return entities.ShelfItem{}, err
	}
	return updated, err
}

func (s *Store) updateByID(ctx context.Context, id string, fn func(item *entities.ShelfItem)) error {
	return s.mutate(ctx, func(st *State) bool {
		for i := range st.Items {
			if st.Items[i].ID == id {
				fn(&st.Items[i])
				return true
			}
		}
		return false
	})
}

// AddItem stores draft under a fresh id at the front of the collection.
func (s *Store) AddItem(ctx context.Context, draft entities.ShelfItem) (entities.ShelfItem, error) {
	draft.ID = uuid.New().String()
	err := s.mutate(ctx, func(st *State) bool {
		items := make([]entities.ShelfItem, 0, len(st.Items)+1)
		items = append(items, draft)
		st.Items = append(items, st.Items...)
		return true
	})
	return draft, err
}

// UpdateItem merges patch into the item with the given id; unknown ids are ignored.
func (s *Store) UpdateItem(ctx context.Context, id string, patch ItemPatch) error {
	return s.updateByID(ctx, id, patch.apply)
}

func (s *Store) RemoveItem(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *State) bool {
		for i := range st.Items {
			if st.Items[i].ID == id {
				st.Items = append(st.Items[:i:i], st.Items[i+1:]...)
				return true
			}
		}
		return false
	})
}

func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) (entities.UserSettings, error) {
	var updated entities.UserSettings
	err := s.mutate(ctx, func(st *State) bool {
		patch.apply(&st.Settings)
		updated = st.Settings
		return true
	})
	return updated, err
}

func consume(item *entities.ShelfItem) {
	item.Status = domain.StatusConsumed
}

func discard(reason string) func(item *entities.ShelfItem) {
	return func(item *entities.ShelfItem) {
		item.Status = domain.StatusDiscarded
		item.DiscardReason = reason
	}
}

// freeze moves the item to the freezer and pushes its expiry out by three
// calendar months from the current value. Every call extends again.
func freeze(item *entities.ShelfItem) {
	item.Storage = domain.StorageFreezer
	item.ExpiryDate = item.ExpiryDate.AddDate(0, domain.FreezeExtensionMonths, 0)
}

func (s *Store) MarkAsConsumed(ctx context.Context, id string) error {
	return s.updateByID(ctx, id, consume)
}

func (s *Store) MarkAsDiscarded(ctx context.Context, id string, reason string) error {
	return s.updateByID(ctx, id, discard(reason))
}

func (s *Store) FreezeItem(ctx context.Context, id string) error {
	return s.updateByID(ctx, id, freeze)
}

// ConsumeActive is MarkAsConsumed for items that are still on the shelf.
func (s *Store) ConsumeActive(ctx context.Context, id string) (entities.ShelfItem, error) {
	return s.updateActive(ctx, id, consume)
}

func (s *Store) DiscardActive(ctx context.Context, id string, reason string) (entities.ShelfItem, error) {
	return s.updateActive(ctx, id, discard(reason))
}

func (s *Store) FreezeActive(ctx context.Context, id string) (entities.ShelfItem, error) {
	return s.updateActive(ctx, id, freeze)
}

// Reset drops everything and starts over from the initial state.
func (s *Store) Reset(ctx context.Context) error {
	return s.mutate(ctx, func(st *State) bool {
		*st = s.initialState()
		return true
	})
}

func (s *Store) Items() []entities.ShelfItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone().Items
}

func (s *Store) Item(id string) (entities.ShelfItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.state.Items {
		if item.ID == id {
			return item, true
		}
	}
	return entities.ShelfItem{}, false
}

func (s *Store) Settings() entities.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Export returns the persisted record for the current state.
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(record{State: s.state, Version: recordVersion, Revision: s.revision}, "", "  ")
}

// Subscribe registers fn to receive a snapshot after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(snap State) {
	s.subsMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap.clone())
	}
}
