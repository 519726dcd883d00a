package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePersisterMissingFile(t *testing.T) {
	p := NewFilePersister(filepath.Join(t.TempDir(), "shelf.json"))
	defer p.Close()

	data, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFilePersisterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "shelf.json")
	p := NewFilePersister(path)
	defer p.Close()

	require.NoError(t, p.Save(context.Background(), []byte(`{"version":0}`)))

	data, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":0}`, string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFilePersisterBacksStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelf.json")
	p := NewFilePersister(path)
	defer p.Close()

	st := NewStore(p)
	require.NoError(t, st.Load(context.Background()))
	added, err := st.AddItem(context.Background(), draft("Milk", fixedNow.AddDate(0, 0, 5)))
	require.NoError(t, err)

	reopened := NewStore(NewFilePersister(path))
	require.NoError(t, reopened.Load(context.Background()))
	items := reopened.Items()
	require.Len(t, items, 1)
	assert.Equal(t, added.ID, items[0].ID)
}

func TestFilePersisterWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelf.json")
	p := NewFilePersister(path)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var seen atomic.Value
	require.NoError(t, p.Watch(ctx, func(data []byte) {
		seen.Store(string(data))
	}, nil))

	require.NoError(t, os.WriteFile(path, []byte(`{"version":0,"items":[]}`), 0o644))

	require.Eventually(t, func() bool {
		v, _ := seen.Load().(string)
		return v == `{"version":0,"items":[]}`
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatchDoesNotRevertOwnWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelf.json")
	p := NewFilePersister(path)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := NewStore(p, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, st.Load(ctx))
	require.NoError(t, p.Watch(ctx, func(data []byte) {
		_, _ = st.ApplyExternal(data)
	}, nil))

	const n = 300
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		item, err := st.AddItem(ctx, draft(fmt.Sprintf("item-%d", i), fixedNow.AddDate(0, 0, 5)))
		require.NoError(t, err)
		_, ok := st.Item(item.ID)
		require.True(t, ok, "item %d gone right after AddItem returned", i)
		ids = append(ids, item.ID)
	}

	// let trailing watcher events drain
	time.Sleep(200 * time.Millisecond)

	require.Len(t, st.Items(), n)
	for _, id := range ids {
		_, ok := st.Item(id)
		assert.True(t, ok, "missing %s", id)
	}

	reopened := NewStore(NewFilePersister(path))
	require.NoError(t, reopened.Load(context.Background()))
	assert.Len(t, reopened.Items(), n)
}
