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

package typemap

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/builder"
	"dirpx.dev/typemap/config"
	"dirpx.dev/typemap/utils/typeid"
)

// init initializes the global typemap state.
func init() {
	st.Store(defaultState())
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("typemap: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("typemap: builder returned nil resolver")
	// ErrNotFound is returned when no product claims a resource type.
	ErrNotFound = errors.New("typemap: resource type not found")
	// ErrNoHeaders is returned when the owning product has no layout for a type.
	ErrNoHeaders = errors.New("typemap: no headers for resource type")
)

// InitFunc registers metadata into reg. Product packages expose one.
type InitFunc func(reg apis.Registry) error

// Resolve returns the product owning typeID using the global resolver.
func Resolve(typeID string) (apis.Product, error) {
	id, err := typeid.Normalize(typeID)
	if err != nil {
		return apis.Product{}, errors.Wrapf(err, "typemap: resolve %q", typeID)
	}
	p, ok := st.Load().res.Resolve(id)
	if !ok {
		return apis.Product{}, errors.Wrapf(ErrNotFound, "%q", id)
	}
	return p, nil
}

// HeadersFor resolves typeID and returns the column layout its product
// registered for it.
func HeadersFor(typeID string) ([]apis.Column, error) {
	p, err := Resolve(typeID)
	if err != nil {
		return nil, err
	}
	id, _ := typeid.Normalize(typeID)
	cols, ok := st.Load().reg.Headers(p.Name, id)
	if !ok {
		return nil, errors.Wrapf(ErrNoHeaders, "product %q type %q", p.Name, id)
	}
	return cols, nil
}

// OrderedTypes returns the display order of product's types from the global registry.
func OrderedTypes(product string) ([]string, error) {
	return st.Load().reg.OrderedTypes(product)
}

// Init runs inits in order against the global registry and freezes it.
// The first failing InitFunc aborts Init and leaves the registry unfrozen.
func Init(inits ...InitFunc) error {
	reg := st.Load().reg
	for i, fn := range inits {
		if fn == nil {
			continue
		}
		if err := fn(reg); err != nil {
			return errors.Wrapf(err, "typemap: init #%d", i)
		}
	}
	if err := reg.Freeze(); err != nil {
		return errors.Wrap(err, "typemap: freeze")
	}
	klog.V(2).InfoS("typemap: registry initialized", "products", reg.Count(), "generation", reg.Generation())
	return nil
}

// Freeze freezes the global registry.
func Freeze() error {
	return st.Load().reg.Freeze()
}

// Reset installs a fresh default state: default configuration and builder,
// an empty registry and no pins.
func Reset() {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(defaultState())
}

// SetAll explicitly sets all global typemap state components.
//
// Nil arguments leave the corresponding component unchanged, except that
// a nil reg or res is rebuilt by the (possibly new) builder. Explicit reg
// and res become pinned.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	nreg, npreg := reg, reg != nil
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg)
	}

	nres, npres := res, res != nil
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, nreg, old.res)
	}

	publish(&state{cfg: ncfg, reg: nreg, res: nres, bld: nbld, preg: npreg, pres: npres})
}

// Config returns the global typemap configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds the unpinned
// registry and resolver.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.with()
	next.cfg = cfg
	rebuild(next, old)
	publish(next)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry and rebuilds the
// resolver unless it is pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.with()
	next.reg, next.preg = reg, true
	if !old.pres {
		next.res = old.bld.BuildResolver(old.cfg, reg, old.res)
	}
	publish(next)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().with()
	next.res, next.pres = res, true
	publish(next)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds the unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.with()
	next.bld = b
	rebuild(next, old)
	publish(next)
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry keeps the global registry across rebuilds.
func PinRegistry() { setPins(func(s *state) { s.preg = true }) }

// UnpinRegistry lets rebuilds replace the global registry again.
func UnpinRegistry() { setPins(func(s *state) { s.preg = false }) }

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver keeps the global resolver across rebuilds.
func PinResolver() { setPins(func(s *state) { s.pres = true }) }

// UnpinResolver lets rebuilds replace the global resolver again.
func UnpinResolver() { setPins(func(s *state) { s.pres = false }) }

func setPins(fn func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().with()
	fn(next)
	st.Store(next)
}

// rebuild replaces the unpinned layers of next using next.bld and next.cfg.
func rebuild(next, old *state) {
	if !old.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
	}
	if !old.pres {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res)
	}
}

// publish checks s and stores it. Callers hold buildMu.
func publish(s *state) {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(s)
}

func defaultState() *state {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.reg, nil)
	return s
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global typemap state.
var st atomic.Pointer[state]

// state is the global typemap state snapshot.
// Immutable once published via st.Store; writers copy it with with().
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg is the global registry.
	reg apis.Registry
	// res is the global resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether reg is pinned.
	preg bool
	// pres indicates whether res is pinned.
	pres bool
}

// with returns a shallow copy of s for building the next snapshot.
func (s *state) with() *state {
	c := *s
	return &c
}
