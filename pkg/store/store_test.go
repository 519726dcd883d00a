package store

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/entities"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPersister struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	failErr error
}

func (m *memoryPersister) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *memoryPersister) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memoryPersister) decoded(t *testing.T) record {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	var rec record
	require.NoError(t, json.Unmarshal(m.data, &rec))
	return rec
}

var fixedNow = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) (*Store, *memoryPersister) {
	t.Helper()
	p := &memoryPersister{}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s := NewStore(p, opts...)
	require.NoError(t, s.Load(context.Background()))
	return s, p
}

func draft(name string, expiry time.Time) entities.ShelfItem {
	return entities.ShelfItem{
		Name:       name,
		Category:   domain.CategoryProduce,
		Storage:    domain.StorageFridge,
		AddedDate:  fixedNow,
		ExpiryDate: expiry,
		Status:     domain.StatusActive,
	}
}

func TestLoadInitialisesEmptyMedium(t *testing.T) {
	s, p := newTestStore(t)

	assert.Empty(t, s.Items())
	assert.Equal(t, entities.DefaultSettings(), s.Settings())
	assert.Equal(t, 1, p.saves, "initial state is flushed")

	rec := p.decoded(t)
	assert.Equal(t, 0, rec.Version)
	assert.Equal(t, "18:00", rec.State.Settings.ReminderTime)
}

func TestLoadWithSeedItems(t *testing.T) {
	s, _ := newTestStore(t, WithSeedItems(true))

	items := s.Items()
	require.Len(t, items, 6)
	assert.Equal(t, "Milk", items[0].Name)
	assert.Equal(t, fixedNow.Add(5*24*time.Hour), items[0].ExpiryDate)
	assert.Equal(t, domain.StoragePantry, items[5].Storage)
	for _, item := range items {
		assert.Equal(t, domain.StatusActive, item.Status)
		assert.NotEmpty(t, item.ID)
	}
}

func TestLoadExistingRecord(t *testing.T) {
	p := &memoryPersister{data: []byte(`{"state":{"items":[{"id":"x1","name":"Milk","category":"Dairy","storage":"Fridge","addedDate":"2024-01-01T00:00:00Z","expiryDate":"2024-01-08T00:00:00Z","status":"active"}],"settings":{"reminderTime":"07:30"}},"version":0}`)}
	s := NewStore(p)

	require.NoError(t, s.Load(context.Background()))

	item, ok := s.Item("x1")
	require.True(t, ok)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, domain.CategoryDairy, item.Category)

	settings := s.Settings()
	assert.Equal(t, "07:30", settings.ReminderTime)
	assert.Equal(t, "22:00", settings.QuietHoursStart, "missing fields keep their defaults")
	assert.Equal(t, domain.NotificationDigest, settings.NotificationStyle)
	assert.Equal(t, 0, p.saves)
}

func TestLoadCorruptedRecord(t *testing.T) {
	p := &memoryPersister{data: []byte(`{not json`)}
	s := NewStore(p)

	err := s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreCorrupted)
}

func TestAddItemPrependsWithFreshID(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	first, err := s.AddItem(ctx, draft("Spinach", fixedNow.AddDate(0, 0, 5)))
	require.NoError(t, err)
	second, err := s.AddItem(ctx, draft("Milk", fixedNow.AddDate(0, 0, 7)))
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Milk", items[0].Name)
	assert.Equal(t, "Spinach", items[1].Name)

	assert.Len(t, p.decoded(t).State.Items, 2, "every mutation is flushed")
}

func TestUpdateItemMergesFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	item, err := s.AddItem(ctx, draft("Spinach", fixedNow.AddDate(0, 0, 5)))
	require.NoError(t, err)

	name := "Baby spinach"
	require.NoError(t, s.UpdateItem(ctx, item.ID, ItemPatch{Name: &name}))

	got, ok := s.Item(item.ID)
	require.True(t, ok)
	assert.Equal(t, "Baby spinach", got.Name)
	assert.Equal(t, item.ExpiryDate, got.ExpiryDate)
	assert.Equal(t, domain.CategoryProduce, got.Category)
}

func TestMissingIDIsNoOp(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()
	_, err := s.AddItem(ctx, draft("Spinach", fixedNow.AddDate(0, 0, 5)))
	require.NoError(t, err)
	before := s.Snapshot()
	saves := p.saves

	name := "ghost"
	assert.NoError(t, s.UpdateItem(ctx, "missing", ItemPatch{Name: &name}))
	assert.NoError(t, s.RemoveItem(ctx, "missing"))
	assert.NoError(t, s.MarkAsConsumed(ctx, "missing"))
	assert.NoError(t, s.MarkAsDiscarded(ctx, "missing", "Spoiled"))
	assert.NoError(t, s.FreezeItem(ctx, "missing"))

	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, saves, p.saves)
}

func TestRemoveItem(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a, _ := s.AddItem(ctx, draft("A", fixedNow.AddDate(0, 0, 1)))
	b, _ := s.AddItem(ctx, draft("B", fixedNow.AddDate(0, 0, 1)))
	c, _ := s.AddItem(ctx, draft("C", fixedNow.AddDate(0, 0, 1)))

	require.NoError(t, s.RemoveItem(ctx, b.ID))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, c.ID, items[0].ID)
	assert.Equal(t, a.ID, items[1].ID)
	_, ok := s.Item(b.ID)
	assert.False(t, ok)
}

func TestStatusTransitions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	milk, _ := s.AddItem(ctx, draft("Milk", fixedNow.AddDate(0, 0, 7)))
	bread, _ := s.AddItem(ctx, draft("Bread", fixedNow.AddDate(0, 0, 4)))

	require.NoError(t, s.MarkAsConsumed(ctx, milk.ID))
	require.NoError(t, s.MarkAsDiscarded(ctx, bread.ID, "Spoiled"))

	got, _ := s.Item(milk.ID)
	assert.Equal(t, domain.StatusConsumed, got.Status)
	assert.Empty(t, got.DiscardReason)

	got, _ = s.Item(bread.ID)
	assert.Equal(t, domain.StatusDiscarded, got.Status)
	assert.Equal(t, "Spoiled", got.DiscardReason)
}

func TestFreezeExtendsThreeMonthsEachCall(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	expiry := time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC)
	item, _ := s.AddItem(ctx, draft("Chicken", expiry))

	require.NoError(t, s.FreezeItem(ctx, item.ID))
	got, _ := s.Item(item.ID)
	assert.Equal(t, domain.StorageFreezer, got.Storage)
	assert.Equal(t, time.Date(2024, time.April, 6, 0, 0, 0, 0, time.UTC), got.ExpiryDate)
	assert.Equal(t, domain.StatusActive, got.Status)

	require.NoError(t, s.FreezeItem(ctx, item.ID))
	got, _ = s.Item(item.ID)
	assert.Equal(t, domain.StorageFreezer, got.Storage)
	assert.Equal(t, time.Date(2024, time.July, 6, 0, 0, 0, 0, time.UTC), got.ExpiryDate)
}

func TestFreezeMonthOverflowNormalises(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	item, _ := s.AddItem(ctx, draft("Fish", time.Date(2024, time.November, 30, 12, 0, 0, 0, time.UTC)))

	require.NoError(t, s.FreezeItem(ctx, item.ID))

	got, _ := s.Item(item.ID)
	assert.Equal(t, time.Date(2025, time.March, 2, 12, 0, 0, 0, time.UTC), got.ExpiryDate)
}

func TestUpdateSettingsMerges(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	done := true
	style := domain.NotificationAll
	updated, err := s.UpdateSettings(ctx, SettingsPatch{SetupComplete: &done, NotificationStyle: &style})
	require.NoError(t, err)

	assert.True(t, updated.SetupComplete)
	assert.Equal(t, domain.NotificationAll, updated.NotificationStyle)
	assert.Equal(t, "18:00", updated.ReminderTime)
	assert.Equal(t, updated, s.Settings())
	assert.True(t, p.decoded(t).State.Settings.SetupComplete)
}

func TestPersistFailureKeepsInMemoryChange(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()
	p.failErr = errors.New("quota exceeded")

	item, err := s.AddItem(ctx, draft("Milk", fixedNow.AddDate(0, 0, 7)))
	assert.ErrorIs(t, err, domain.ErrPersistFailed)
	assert.ErrorContains(t, err, "quota exceeded")

	got, ok := s.Item(item.ID)
	require.True(t, ok, "in-memory state reflects the attempted change")
	assert.Equal(t, "Milk", got.Name)
}

func TestResetRestoresInitialState(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()
	_, _ = s.AddItem(ctx, draft("Milk", fixedNow.AddDate(0, 0, 7)))
	done := true
	_, _ = s.UpdateSettings(ctx, SettingsPatch{SetupComplete: &done})

	require.NoError(t, s.Reset(ctx))

	assert.Empty(t, s.Items())
	assert.Equal(t, entities.DefaultSettings(), s.Settings())
	assert.Empty(t, p.decoded(t).State.Items)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var got []State
	unsubscribe := s.Subscribe(func(st State) {
		got = append(got, st)
	})

	_, _ = s.AddItem(ctx, draft("Milk", fixedNow.AddDate(0, 0, 7)))
	require.Len(t, got, 1)
	assert.Len(t, got[0].Items, 1)

	got[0].Items[0].Name = "mutated by subscriber"
	assert.Equal(t, "Milk", s.Items()[0].Name, "subscribers get copies")

	unsubscribe()
	_, _ = s.AddItem(ctx, draft("Eggs", fixedNow.AddDate(0, 0, 7)))
	assert.Len(t, got, 1)
}

func TestApplyExternal(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()
	_, _ = s.AddItem(ctx, draft("Milk", fixedNow.AddDate(0, 0, 7)))

	changed, err := s.ApplyExternal(p.data)
	require.NoError(t, err)
	assert.False(t, changed, "own writes are ignored")

	edit := fmt.Sprintf(`{"state":{"items":[],"settings":{"reminderTime":"06:00"}},"version":0,"revision":%d}`, p.decoded(t).Revision)
	changed, err = s.ApplyExternal([]byte(edit))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, s.Items())
	assert.Equal(t, "06:00", s.Settings().ReminderTime)

	_, err = s.ApplyExternal([]byte(`garbage`))
	assert.ErrorIs(t, err, domain.ErrStoreCorrupted)
	assert.Equal(t, "06:00", s.Settings().ReminderTime)
}

func TestExport(t *testing.T) {
	s, _ := newTestStore(t)
	_, _ = s.AddItem(context.Background(), draft("Milk", fixedNow.AddDate(0, 0, 7)))

	data, err := s.Export()
	require.NoError(t, err)

	var rec record
	require.NoError(t, json.Unmarshal(data, &rec))
	require.Len(t, rec.State.Items, 1)
	assert.Equal(t, "Milk", rec.State.Items[0].Name)
	assert.Contains(t, string(data), `"expiryDate"`)
}

func TestConcurrentMutationsDoNotInterleave(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddItem(ctx, draft("Item", fixedNow.AddDate(0, 0, 3)))
		}()
	}
	wg.Wait()

	assert.Len(t, s.Items(), 50)
	assert.Len(t, p.decoded(t).State.Items, 50, "last flush carries every item")
}

func TestRevisionGrowsWithEveryFlush(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()
	assert.EqualValues(t, 1, p.decoded(t).Revision)

	item, _ := s.AddItem(ctx, draft("Milk", fixedNow.AddDate(0, 0, 7)))
	require.NoError(t, s.FreezeItem(ctx, item.ID))
	assert.EqualValues(t, 3, p.decoded(t).Revision)

	require.NoError(t, s.MarkAsConsumed(ctx, "missing"))
	assert.EqualValues(t, 3, p.decoded(t).Revision, "no-ops do not flush")

	p.failErr = errors.New("disk full")
	_, _ = s.AddItem(ctx, draft("Eggs", fixedNow.AddDate(0, 0, 7)))
	p.failErr = nil
	_, err := s.AddItem(ctx, draft("Bread", fixedNow.AddDate(0, 0, 4)))
	require.NoError(t, err)
	assert.EqualValues(t, 4, p.decoded(t).Revision, "failed flushes do not consume a revision")
}

func TestApplyExternalIgnoresEarlierOwnFlush(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	_, _ = s.AddItem(ctx, draft("Milk", fixedNow.AddDate(0, 0, 7)))
	older := append([]byte(nil), p.data...)
	bread, err := s.AddItem(ctx, draft("Bread", fixedNow.AddDate(0, 0, 4)))
	require.NoError(t, err)

	changed, err := s.ApplyExternal(older)
	require.NoError(t, err)
	assert.False(t, changed)

	_, ok := s.Item(bread.ID)
	assert.True(t, ok, "a stale record must not roll the store back")
	assert.Len(t, s.Items(), 2)

	_, err = s.AddItem(ctx, draft("Eggs", fixedNow.AddDate(0, 0, 21)))
	require.NoError(t, err)
	assert.Len(t, p.decoded(t).State.Items, 3)
}

func TestApplyExternalAdoptsNewerRevision(t *testing.T) {
	s, p := newTestStore(t)
	_, _ = s.AddItem(context.Background(), draft("Milk", fixedNow.AddDate(0, 0, 7)))

	next := p.decoded(t).Revision + 5
	changed, err := s.ApplyExternal([]byte(fmt.Sprintf(`{"state":{"items":[]},"version":0,"revision":%d}`, next)))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, s.Items())

	_, err = s.AddItem(context.Background(), draft("Eggs", fixedNow.AddDate(0, 0, 21)))
	require.NoError(t, err)
	assert.Equal(t, next+1, p.decoded(t).Revision)
}

func TestGuardedTransitions(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()
	milk, _ := s.AddItem(ctx, draft("Milk", fixedNow.AddDate(0, 0, 7)))
	bread, _ := s.AddItem(ctx, draft("Bread", fixedNow.AddDate(0, 0, 4)))

	_, err := s.ConsumeActive(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrShelfItemNotFound)

	frozen, err := s.FreezeActive(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StorageFreezer, frozen.Storage)

	consumed, err := s.ConsumeActive(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConsumed, consumed.Status)

	saves := p.saves
	_, err = s.DiscardActive(ctx, milk.ID, "Spoiled")
	assert.ErrorIs(t, err, domain.ErrShelfItemNotActive)
	_, err = s.FreezeActive(ctx, milk.ID)
	assert.ErrorIs(t, err, domain.ErrShelfItemNotActive)
	assert.Equal(t, saves, p.saves, "refused transitions do not flush")

	stored, _ := s.Item(milk.ID)
	assert.Equal(t, domain.StatusConsumed, stored.Status)
	assert.Empty(t, stored.DiscardReason)

	p.failErr = errors.New("disk full")
	discarded, err := s.DiscardActive(ctx, bread.ID, "Forgot")
	assert.ErrorIs(t, err, domain.ErrPersistFailed)
	assert.Equal(t, domain.StatusDiscarded, discarded.Status)
	assert.Equal(t, "Forgot", discarded.DiscardReason)
}
