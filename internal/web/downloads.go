package web

import (
	"errors"
	"os"
	"sync"

	"github.com/google/uuid"
)

// downloads maps opaque ids to exported files so the browser never sees a
// filesystem path.
type downloads struct {
	mu    sync.Mutex
	files map[string]string
}

func newDownloads() *downloads {
	return &downloads{files: make(map[string]string)}
}

func (d *downloads) add(path string) string {
	id := uuid.NewString()
	d.mu.Lock()
	d.files[id] = path
	d.mu.Unlock()
	return id
}

func (d *downloads) get(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	path, ok := d.files[id]
	return path, ok
}

func (d *downloads) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.files)
}

// removeAll deletes every registered file and forgets its id.
func (d *downloads) removeAll() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var errs []error
	for id, path := range d.files {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
		delete(d.files, id)
	}
	return errors.Join(errs...)
}
