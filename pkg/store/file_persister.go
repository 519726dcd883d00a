package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
)

const (
	lockTimeout       = 3 * time.Second
	lockRetryInterval = 100 * time.Millisecond
)

// FilePersister keeps the record in a JSON file guarded by a sibling lock file.
type FilePersister struct {
	path     string
	fileLock *flock.Flock
	mu       sync.Mutex
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{
		path:     path,
		fileLock: flock.New(path + ".lock"),
	}
}

func (p *FilePersister) Path() string {
	return p.path
}

func (p *FilePersister) lock(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	locked, err := p.fileLock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire file lock")
	}
	return func() { _ = p.fileLock.Unlock() }, nil
}

func (p *FilePersister) Load(ctx context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	unlock, err := p.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Save writes data to a temp file and renames it over the record.
func (p *FilePersister) Save(ctx context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	unlock, err := p.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	tmpFile := p.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, p.path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Watch calls onChange with the file contents whenever the record is
// rewritten, until ctx is done. The directory is watched because saves
// replace the file by rename.
func (p *FilePersister) Watch(ctx context.Context, onChange func(data []byte), onError func(err error)) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(p.path)); err != nil {
		_ = w.Close()
		return err
	}

	target := filepath.Clean(p.path)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				data, err := p.Load(ctx)
				if err != nil {
					if onError != nil {
						onError(err)
					}
					continue
				}
				onChange(data)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			}
		}
	}()
	return nil
}

// Close removes the lock file.
func (p *FilePersister) Close() error {
	_ = os.Remove(p.path + ".lock")
	return nil
}
