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

package resolver

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"k8s.io/klog/v2"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/utils/typeid"
)

// New constructs an apis.Resolver that tries the given strategies in order
// against reg. Nil strategies are ignored.
//
// Results (hits and misses) are memoized per type and tagged with the
// registry generation they were computed at; an entry from an older
// generation is a miss and is overwritten, so the cache holds at most one
// entry per type. cfg.CacheExpiration bounds
// the lifetime of an entry; zero keeps entries until the generation moves,
// and a negative value disables the cache.
func New(reg apis.Registry, cfg apis.Config, strategies ...apis.Strategy) apis.Resolver {
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	r := &chain{reg: reg, strats: out}
	if cfg.CacheExpiration >= 0 {
		exp := cfg.CacheExpiration
		if exp == 0 {
			exp = gocache.NoExpiration
		}
		r.cache = gocache.New(exp, cleanupInterval(exp))
	}
	return r
}

// cleanupInterval returns the janitor period for an expiration.
// Entries that never expire need no janitor.
func cleanupInterval(exp time.Duration) time.Duration {
	if exp <= 0 {
		return 0
	}
	return 2 * exp
}

// chain is an order-preserving resolver over a set of strategies.
type chain struct {
	reg    apis.Registry
	strats []apis.Strategy
	cache  *gocache.Cache
}

// Ensure chain implements apis.Resolver.
var _ apis.Resolver = (*chain)(nil)

// entry is a memoized resolution, including misses.
type entry struct {
	gen     uint64
	product apis.Product
	ok      bool
}

// Resolve runs strategies in order until one handles typeID.
func (r *chain) Resolve(typeID string) (apis.Product, bool) {
	if r.reg == nil {
		return apis.Product{}, false
	}
	id, err := typeid.Normalize(typeID)
	if err != nil {
		return apis.Product{}, false
	}
	if r.cache == nil {
		return r.resolve(id)
	}

	gen := r.reg.Generation()
	if v, found := r.cache.Get(id); found {
		if e := v.(entry); e.gen == gen {
			return e.product, e.ok
		}
	}
	p, ok := r.resolve(id)
	klog.V(4).InfoS("typemap: resolver cache miss", "type", id, "generation", gen, "product", p.Name, "found", ok)
	r.cache.SetDefault(id, entry{gen: gen, product: p, ok: ok})
	return p, ok
}

func (r *chain) resolve(id string) (apis.Product, bool) {
	for _, s := range r.strats {
		if p, ok := s.TryResolve(id, r.reg); ok {
			return p, true
		}
	}
	return apis.Product{}, false
}
