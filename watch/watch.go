/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package watch re-applies YAML product descriptors to a registry when
// their files change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/descriptor"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a changed file is reloaded.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithOnError registers a callback for load and apply failures.
func WithOnError(fn func(path string, err error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// WithOnApply registers a callback invoked after a file was applied.
func WithOnApply(fn func(path string, products []string)) Option {
	return func(w *Watcher) { w.onApply = fn }
}

// Watcher applies descriptor files and directories to a registry and
// re-applies a file whenever it is written, created or renamed into place.
type Watcher struct {
	reg      apis.Registry
	paths    []string
	debounce time.Duration
	onError  func(string, error)
	onApply  func(string, []string)
}

// New returns a Watcher over paths. Each path is a descriptor file or a
// directory of .yaml/.yml descriptors.
func New(reg apis.Registry, paths []string, opts ...Option) *Watcher {
	w := &Watcher{
		reg:      reg,
		paths:    append([]string(nil), paths...),
		debounce: DefaultDebounce,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// target is one watched location.
type target struct {
	// dir is the directory registered with fsnotify.
	dir string
	// file restricts events to one file; empty means every descriptor in dir.
	file string
}

// Run applies every descriptor once and then reloads changed files until
// ctx is done. Load and apply failures are reported and do not stop Run.
func (w *Watcher) Run(ctx context.Context) error {
	targets, err := w.targets()
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "typemap(watch): creating fsnotify watcher")
	}
	defer func() { _ = fsw.Close() }()

	dirs := map[string]bool{}
	for _, t := range targets {
		if dirs[t.dir] {
			continue
		}
		if err := fsw.Add(t.dir); err != nil {
			return errors.Wrapf(err, "typemap(watch): watching %s", t.dir)
		}
		dirs[t.dir] = true
	}

	for _, p := range w.initialFiles(targets) {
		w.apply(p)
	}
	klog.V(2).InfoS("typemap: watching descriptors", "paths", w.paths)

	var (
		timer   = time.NewTimer(time.Hour)
		pending = map[string]struct{}{}
	)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, targets) {
				continue
			}
			klog.V(4).InfoS("typemap: descriptor event", "path", ev.Name, "op", ev.Op.String())
			pending[filepath.Clean(ev.Name)] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for p := range pending {
				files = append(files, p)
			}
			sort.Strings(files)
			pending = map[string]struct{}{}
			for _, p := range files {
				w.apply(p)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.report("", errors.Wrap(err, "typemap(watch)"))

		case <-ctx.Done():
			return nil
		}
	}
}

// targets resolves the configured paths.
func (w *Watcher) targets() ([]target, error) {
	if len(w.paths) == 0 {
		return nil, errors.New("typemap(watch): no paths to watch")
	}
	out := make([]target, 0, len(w.paths))
	for _, p := range w.paths {
		p = filepath.Clean(p)
		fi, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrap(err, "typemap(watch)")
		}
		if fi.IsDir() {
			out = append(out, target{dir: p})
			continue
		}
		out = append(out, target{dir: filepath.Dir(p), file: p})
	}
	return out, nil
}

// initialFiles lists the descriptor files present at start, in order.
func (w *Watcher) initialFiles(targets []target) []string {
	var out []string
	for _, t := range targets {
		if t.file != "" {
			out = append(out, t.file)
			continue
		}
		entries, err := os.ReadDir(t.dir)
		if err != nil {
			w.report(t.dir, errors.Wrap(err, "typemap(watch)"))
			continue
		}
		for _, e := range entries {
			if !e.IsDir() && descriptor.IsDescriptorFile(e.Name()) {
				out = append(out, filepath.Join(t.dir, e.Name()))
			}
		}
	}
	return out
}

// relevant reports whether ev changes a watched descriptor file.
func relevant(ev fsnotify.Event, targets []target) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	for _, t := range targets {
		if t.file != "" {
			if name == t.file {
				return true
			}
			continue
		}
		if filepath.Dir(name) == t.dir && descriptor.IsDescriptorFile(name) {
			return true
		}
	}
	return false
}

// apply loads path and applies its descriptors. A file renamed away is skipped.
func (w *Watcher) apply(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}
	ps, err := descriptor.LoadFile(path)
	if err != nil {
		w.report(path, err)
		return
	}
	if err := descriptor.ApplyAll(w.reg, ps...); err != nil {
		w.report(path, err)
		return
	}
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	klog.V(2).InfoS("typemap: applied descriptors", "path", path, "products", names, "generation", w.reg.Generation())
	if w.onApply != nil {
		w.onApply(path, names)
	}
}

func (w *Watcher) report(path string, err error) {
	klog.ErrorS(err, "typemap: descriptor reload failed", "path", path)
	if w.onError != nil {
		w.onError(path, err)
	}
}
