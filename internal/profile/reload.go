package profile

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// ReloadableProfile watches a YAML profile file and atomically republishes
// the parsed Interface when it changes. A profile that fails to parse is
// dropped; the previous value stays current.
type ReloadableProfile struct {
	path      string
	current   atomic.Value // *Interface
	mu        sync.RWMutex
	watchers  []func(old, new *Interface)
	watcher   *fsnotify.Watcher
	stopCh    chan struct{}
	reloading int32
}

// NewReloadable loads path and starts watching it.
func NewReloadable(path string) (*ReloadableProfile, error) {
	iface, err := LoadProfile(path)
	if err != nil {
		return nil, fmt.Errorf("initial profile load: %w", err)
	}

	r := &ReloadableProfile{
		path:   path,
		stopCh: make(chan struct{}),
	}
	r.current.Store(iface)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch profile: %w", err)
	}

	r.watcher = watcher
	go r.watchLoop()

	return r, nil
}

// Get returns the current interface.
func (r *ReloadableProfile) Get() *Interface {
	return r.current.Load().(*Interface)
}

// Watch registers a callback invoked with the old and new interfaces after
// each successful reload.
func (r *ReloadableProfile) Watch(fn func(old, new *Interface)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watchers = append(r.watchers, fn)
}

// Reload forces a reload from disk.
func (r *ReloadableProfile) Reload() error {
	if !atomic.CompareAndSwapInt32(&r.reloading, 0, 1) {
		return fmt.Errorf("reload already in progress")
	}
	defer atomic.StoreInt32(&r.reloading, 0)

	newIface, err := LoadProfile(r.path)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	oldIface := r.Get()
	r.current.Store(newIface)

	r.mu.RLock()
	watchers := make([]func(old, new *Interface), len(r.watchers))
	copy(watchers, r.watchers)
	r.mu.RUnlock()

	for _, fn := range watchers {
		fn(oldIface, newIface)
	}

	return nil
}

// Close stops watching.
func (r *ReloadableProfile) Close() error {
	close(r.stopCh)
	return r.watcher.Close()
}

func (r *ReloadableProfile) watchLoop() {
	for {
		select {
		case <-r.stopCh:
			return
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			// Editors replace files rather than writing in place;
			// re-add the path so the watch survives the rename.
			// Losing the watch here would otherwise be silent.
			if err := r.watcher.Add(r.path); err != nil {
				log.Printf("[profile] re-watch %s: %v", r.path, err)
				continue
			}
			if err := r.Reload(); err != nil {
				log.Printf("[profile] reload failed: %v", err)
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[profile] watch error: %v", err)
		}
	}
}
