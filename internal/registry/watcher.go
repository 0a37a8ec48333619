package registry

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watcher reloads the registry when its backing file changes.
type watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the registry's backing file for changes and reloads
// on write or create events. Reload failures keep the previous contents and
// are reported through onError (which may be nil).
// Returns without error but without watching when the registry has no
// backing file.
func (r *Registry) Watch(onError func(error)) error {
	if r.path == "" {
		return nil
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory, not the file: editors replace files on save,
	// which drops a direct file watch.
	dir := filepath.Dir(r.path)
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return err
	}

	w := &watcher{
		fs:   fs,
		done: make(chan struct{}),
	}
	r.watcher = w

	go r.watchLoop(onError)

	return nil
}

// watchLoop processes file events until Close is called.
func (r *Registry) watchLoop(onError func(error)) {
	target := filepath.Clean(r.path)

	for {
		select {
		case <-r.watcher.done:
			return
		case event, ok := <-r.watcher.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := r.Reload(); err != nil && onError != nil {
				onError(err)
			}
		case <-r.watcher.fs.Errors:
			// Ignore errors, keep watching
		}
	}
}

// Close stops the file watcher, if one is running.
func (r *Registry) Close() {
	if r.watcher == nil {
		return
	}
	close(r.watcher.done)
	r.watcher.fs.Close()
	r.watcher = nil
}
