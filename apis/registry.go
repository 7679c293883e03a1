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

package apis

// Predicate decides whether an API group belongs to a product.
type Predicate interface {
	// Match reports whether group (the API group of a resource type) matches.
	Match(group string) bool
	// String describes the predicate for diagnostics and docs.
	String() string
}

// Product is a named domain of resource types.
type Product struct {
	// Name is the unique product key.
	Name string
	// Predicate selects resource types by API group. May be nil.
	Predicate Predicate
	// Icon is a symbolic icon reference.
	Icon string
}

// Matches reports whether the product's predicate accepts group.
// A product without a predicate matches nothing.
func (p Product) Matches(group string) bool {
	return p.Predicate != nil && p.Predicate.Match(group)
}

// TypeWeight assigns an ordering weight to a type (or type prefix) of a product.
type TypeWeight struct {
	// Product is the owning product name.
	Product string
	// TypeID is the resource-type identifier (or prefix when Exact is false).
	TypeID string
	// Weight is the ordering key.
	Weight int
	// Exact restricts the weight to the literal TypeID.
	Exact bool
}

// ProductState is everything registered for a single product.
type ProductState struct {
	// Product is the declared record. Declared is false for forward references.
	Product Product
	// Declared reports whether DeclareProduct has been called for this name.
	Declared bool
	// BasicTypes is the ordered basic-type list.
	BasicTypes []string
	// Weights lists type weights in registration order.
	Weights []TypeWeight
	// Headers maps a type identifier to its column layout.
	Headers map[string][]Column
}

// Snapshot is a deep copy of a registry, in product registration order.
type Snapshot struct {
	Products []ProductState
}

// Registry accumulates product and type metadata and serves it to readers.
// Implementations must be safe for concurrent use.
type Registry interface {
	// DeclareProduct inserts or overwrites a product record.
	DeclareProduct(p Product) error
	// SetTypeWeight sets the ordering weight of typeID within product.
	SetTypeWeight(product, typeID string, weight int, exact bool) error
	// DeclareBasicTypes appends basic types to product, keeping first positions.
	DeclareBasicTypes(product string, typeIDs ...string) error
	// SetHeaders replaces the column layout of typeID within product.
	SetHeaders(product, typeID string, cols []Column) error

	// Product returns a declared product by name.
	Product(name string) (Product, bool)
	// Products returns declared products in declaration order.
	Products() []Product
	// BasicTypes returns the basic types of product.
	BasicTypes(product string) []string
	// Headers returns the column layout of typeID within product.
	Headers(product, typeID string) ([]Column, bool)
	// Weight returns the weight that applies to typeID within product.
	Weight(product, typeID string) (TypeWeight, bool)
	// OrderedTypes returns the product's types in display order.
	OrderedTypes(product string) ([]string, error)

	// Validate reports references to undeclared products.
	Validate() error
	// Freeze validates and then rejects further mutation.
	Freeze() error
	// Frozen reports whether Freeze succeeded.
	Frozen() bool
	// Generation increments on every successful mutation.
	Generation() uint64

	// Snapshot returns a deep copy of the registry contents.
	Snapshot() Snapshot
	// Restore replaces the registry contents with s.
	Restore(s Snapshot) error
	// Count returns the number of declared products.
	Count() int
	// Reset clears all state, including the frozen flag.
	Reset()
}
