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

package registry

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"k8s.io/klog/v2"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/config"
	"dirpx.dev/typemap/utils/typeid"
)

// New constructs a Registry configured by cfg.
// An out-of-range WeightOrder falls back to the default.
func New(cfg apis.Config) apis.Registry {
	if cfg.WeightOrder != apis.Ascending && cfg.WeightOrder != apis.Descending {
		cfg.WeightOrder = config.DefaultWeightOrder
	}
	return &registry{cfg: cfg, products: make(map[string]*state)}
}

// registry is the default Registry implementation: plain maps under an RWMutex.
type registry struct {
	// cfg is the registry configuration.
	cfg apis.Config
	// mu guards everything below.
	mu sync.RWMutex
	// products maps product name to its accumulated state, declared or not.
	products map[string]*state
	// order lists product names in first-reference order.
	order []string
	// declared lists declared product names in declaration order.
	declared []string
	// frozen rejects mutations once set.
	frozen bool
	// gen counts successful mutations.
	gen atomic.Uint64
}

// state is everything accumulated for one product name.
type state struct {
	product  apis.Product
	declared bool
	basic    []string
	basicIdx map[string]int
	weights  []apis.TypeWeight
	headers  map[string][]apis.Column
}

// stateLocked returns the state for name, creating a placeholder if needed.
// Callers must hold mu for writing.
func (r *registry) stateLocked(name string) *state {
	s, ok := r.products[name]
	if !ok {
		s = &state{basicIdx: make(map[string]int), headers: make(map[string][]apis.Column)}
		r.products[name] = s
		r.order = append(r.order, name)
	}
	return s
}

// writable checks the frozen flag and, in strict mode, that product is declared.
// Callers must hold mu for writing.
func (r *registry) writable(product, op string) error {
	if r.frozen {
		return ErrFrozen
	}
	if r.cfg.StrictReferences {
		if s, ok := r.products[product]; !ok || !s.declared {
			return &InvalidReferenceError{Product: product, Op: op}
		}
	}
	return nil
}

// DeclareProduct inserts or overwrites a product record.
// Re-declaring a name replaces predicate and icon and never errors.
func (r *registry) DeclareProduct(p apis.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid(p.Name, "", -1, "name", "product name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrFrozen
	}
	s := r.stateLocked(p.Name)
	if s.declared {
		klog.V(2).InfoS("Overwriting product declaration", "product", p.Name, "icon", p.Icon)
	} else {
		klog.V(2).InfoS("Declared product", "product", p.Name, "icon", p.Icon)
		r.declared = append(r.declared, p.Name)
	}
	s.product = p
	s.declared = true
	r.gen.Add(1)
	return nil
}

// SetTypeWeight sets the weight of typeID within product.
// A second call with the same (typeID, exact) pair replaces the first.
func (r *registry) SetTypeWeight(product, typeID string, weight int, exact bool) error {
	id, err := typeid.Normalize(typeID)
	if err != nil {
		return invalid(product, typeID, -1, "type", err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.writable(product, "SetTypeWeight"); err != nil {
		return err
	}
	s := r.stateLocked(product)
	w := apis.TypeWeight{Product: product, TypeID: id, Weight: weight, Exact: exact}
	replaced := false
	for i := range s.weights {
		if s.weights[i].TypeID == id && s.weights[i].Exact == exact {
			s.weights[i] = w
			replaced = true
			break
		}
	}
	if !replaced {
		s.weights = append(s.weights, w)
	}
	klog.V(4).InfoS("Set type weight", "product", product, "type", id, "weight", weight, "exact", exact)
	r.gen.Add(1)
	return nil
}

// DeclareBasicTypes appends typeIDs to the product's basic types.
// An identifier that is already present keeps its first position.
// All identifiers are validated before any is stored.
func (r *registry) DeclareBasicTypes(product string, typeIDs ...string) error {
	ids := make([]string, 0, len(typeIDs))
	for _, raw := range typeIDs {
		id, err := typeid.Normalize(raw)
		if err != nil {
			return invalid(product, raw, -1, "type", err.Error())
		}
		ids = append(ids, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.writable(product, "DeclareBasicTypes"); err != nil {
		return err
	}
	s := r.stateLocked(product)
	for _, id := range ids {
		if _, ok := s.basicIdx[id]; ok {
			continue
		}
		s.basicIdx[id] = len(s.basic)
		s.basic = append(s.basic, id)
	}
	klog.V(4).InfoS("Declared basic types", "product", product, "types", ids)
	r.gen.Add(1)
	return nil
}

// SetHeaders validates cols and stores their canonical form for (product, typeID),
// replacing any previous layout.
func (r *registry) SetHeaders(product, typeID string, cols []apis.Column) error {
	id, err := typeid.Normalize(typeID)
	if err != nil {
		return invalid(product, typeID, -1, "type", err.Error())
	}
	canon, err := ValidateColumns(product, id, cols)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.writable(product, "SetHeaders"); err != nil {
		return err
	}
	r.stateLocked(product).headers[id] = canon
	klog.V(4).InfoS("Set headers", "product", product, "type", id, "columns", len(canon))
	r.gen.Add(1)
	return nil
}

// Product returns a declared product by name.
func (r *registry) Product(name string) (apis.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.products[name]; ok && s.declared {
		return s.product, true
	}
	return apis.Product{}, false
}

// Products returns declared products in declaration order.
func (r *registry) Products() []apis.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]apis.Product, 0, len(r.declared))
	for _, name := range r.declared {
		out = append(out, r.products[name].product)
	}
	return out
}

// BasicTypes returns a copy of the basic types of a declared product.
func (r *registry) BasicTypes(product string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.products[product]
	if !ok || !s.declared {
		return nil
	}
	return append([]string(nil), s.basic...)
}

// Headers returns a copy of the layout of typeID within a declared product.
func (r *registry) Headers(product, typeID string) ([]apis.Column, bool) {
	id, err := typeid.Normalize(typeID)
	if err != nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.products[product]
	if !ok || !s.declared {
		return nil, false
	}
	cols, ok := s.headers[id]
	if !ok {
		return nil, false
	}
	return cloneColumns(cols), true
}

// Weight returns the weight that applies to typeID within product.
// An exact entry wins; otherwise the longest non-exact prefix entry applies.
func (r *registry) Weight(product, typeID string) (apis.TypeWeight, bool) {
	id, err := typeid.Normalize(typeID)
	if err != nil {
		return apis.TypeWeight{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.products[product]
	if !ok || !s.declared {
		return apis.TypeWeight{}, false
	}
	return s.weightOf(id)
}

func (s *state) weightOf(id string) (apis.TypeWeight, bool) {
	var best apis.TypeWeight
	found := false
	for _, w := range s.weights {
		if w.Exact {
			if w.TypeID == id {
				return w, true
			}
			continue
		}
		if typeid.HasPrefix(id, w.TypeID) && (!found || len(w.TypeID) > len(best.TypeID)) {
			best, found = w, true
		}
	}
	return best, found
}

// OrderedTypes returns basic types and exactly-weighted types of product in
// display order: by weight (per cfg.WeightOrder), then basic-type declaration
// order, then name. Unweighted types count as weight 0.
func (r *registry) OrderedTypes(product string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.products[product]
	if !ok || !s.declared {
		return nil, &InvalidReferenceError{Product: product, Op: "OrderedTypes"}
	}

	ids := append([]string(nil), s.basic...)
	for _, w := range s.weights {
		if _, isBasic := s.basicIdx[w.TypeID]; w.Exact && !isBasic && !contains(ids, w.TypeID) {
			ids = append(ids, w.TypeID)
		}
	}

	weight := make(map[string]int, len(ids))
	for _, id := range ids {
		w, _ := s.weightOf(id)
		weight[id] = w.Weight
	}
	desc := r.cfg.WeightOrder == apis.Descending
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if weight[a] != weight[b] {
			if desc {
				return weight[a] > weight[b]
			}
			return weight[a] < weight[b]
		}
		ai, aBasic := s.basicIdx[a]
		bi, bBasic := s.basicIdx[b]
		switch {
		case aBasic && bBasic:
			return ai < bi
		case aBasic != bBasic:
			return aBasic
		}
		return a < b
	})
	return ids, nil
}

// Validate reports every product that was referenced but never declared.
func (r *registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.validateLocked()
}

func (r *registry) validateLocked() error {
	var errs []error
	for _, name := range r.order {
		if !r.products[name].declared {
			errs = append(errs, &InvalidReferenceError{Product: name, Op: "Validate"})
		}
	}
	return errors.Join(errs...)
}

// Freeze validates the registry and then rejects every further mutation.
func (r *registry) Freeze() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return nil
	}
	if err := r.validateLocked(); err != nil {
		return err
	}
	r.frozen = true
	klog.V(2).InfoS("Registry frozen", "products", len(r.declared))
	return nil
}

// Frozen reports whether Freeze succeeded.
func (r *registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Generation increments on every successful mutation.
func (r *registry) Generation() uint64 {
	return r.gen.Load()
}

// Snapshot returns a deep copy of all product states: declared products in
// declaration order, then forward references in first-reference order.
func (r *registry) Snapshot() apis.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := append([]string(nil), r.declared...)
	for _, name := range r.order {
		if !r.products[name].declared {
			names = append(names, name)
		}
	}
	snap := apis.Snapshot{Products: make([]apis.ProductState, 0, len(names))}
	for _, name := range names {
		s := r.products[name]
		ps := apis.ProductState{
			Product:    s.product,
			Declared:   s.declared,
			BasicTypes: append([]string(nil), s.basic...),
			Weights:    append([]apis.TypeWeight(nil), s.weights...),
			Headers:    make(map[string][]apis.Column, len(s.headers)),
		}
		if !s.declared {
			ps.Product = apis.Product{Name: name}
		}
		for id, cols := range s.headers {
			ps.Headers[id] = cloneColumns(cols)
		}
		snap.Products = append(snap.Products, ps)
	}
	return snap
}

// Restore replaces the registry contents with snap.
// Declared products keep their snapshot order as declaration order.
func (r *registry) Restore(snap apis.Snapshot) error {
	fresh := make(map[string]*state, len(snap.Products))
	var order, declared []string
	for _, ps := range snap.Products {
		name := ps.Product.Name
		if strings.TrimSpace(name) == "" {
			return invalid(name, "", -1, "name", "product name is required")
		}
		if _, dup := fresh[name]; dup {
			return invalid(name, "", -1, "name", "duplicate product in snapshot")
		}
		s := &state{
			product:  ps.Product,
			declared: ps.Declared,
			basicIdx: make(map[string]int, len(ps.BasicTypes)),
			weights:  append([]apis.TypeWeight(nil), ps.Weights...),
			headers:  make(map[string][]apis.Column, len(ps.Headers)),
		}
		for _, id := range ps.BasicTypes {
			if _, ok := s.basicIdx[id]; !ok {
				s.basicIdx[id] = len(s.basic)
				s.basic = append(s.basic, id)
			}
		}
		for id, cols := range ps.Headers {
			s.headers[id] = cloneColumns(cols)
		}
		fresh[name] = s
		order = append(order, name)
		if ps.Declared {
			declared = append(declared, name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrFrozen
	}
	r.products, r.order, r.declared = fresh, order, declared
	r.gen.Add(1)
	return nil
}

// Count returns the number of declared products.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.declared)
}

// Reset clears all state, including the frozen flag.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = make(map[string]*state)
	r.order = nil
	r.declared = nil
	r.frozen = false
	r.gen.Add(1)
}

func cloneColumns(cols []apis.Column) []apis.Column {
	out := make([]apis.Column, len(cols))
	for i, c := range cols {
		out[i] = c.Canonical()
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
