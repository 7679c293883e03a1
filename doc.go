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

// Package typemap provides a process-wide registry of product and
// resource-type metadata for a cluster-management UI.
//
// typemap answers three questions about a resource type identifier such as
// "resources.cattle.io.backup": which product owns it, in what order the
// product lists its types, and which columns a list view of it shows.
// Product packages (see product/backup) contribute that metadata through
// registration functions; readers query it at any time.
//
// # Design
//
// The core of typemap is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: rules for the registry and resolver (strict forward
//     references, weight order, resolver cache lifetime).
//
//   - Registry: products, basic types, type weights and header layouts.
//     Registration code always receives it as an explicit argument.
//
//   - Resolver: answers "which product owns this type?". The default
//     resolver tries, in priority order:
//     1. explicit membership: the first product listing the type as a
//     basic type;
//     2. implicit membership: the first product whose predicate matches
//     the type's API group.
//     Answers are cached per registry generation.
//
//   - Builder: constructs Registry and Resolver for a Config, migrating
//     the contents of the previous registry on rebuild.
//
// All of these live inside a single immutable struct called state.
// Readers load the current pointer and never mutate it. Writers build a
// brand-new state and atomically swap it in, so lookups are lock-free:
//
//	p, err := typemap.Resolve("resources.cattle.io.backup")
//	cols, err := typemap.HeadersFor("resources.cattle.io.backup")
//
// # Global API
//
//  1. Read helpers:
//
//     Resolve(typeID string) (apis.Product, error)
//     HeadersFor(typeID string) ([]apis.Column, error)
//     OrderedTypes(product string) ([]string, error)
//     Config(), Registry(), Resolver(), Builder()
//
//  2. Mutation helpers:
//
//     SetConfig, SetBuilder, SetRegistry, SetResolver, SetAll
//     PinRegistry/UnpinRegistry, PinResolver/UnpinResolver
//
//     Each acquires an internal build lock, derives a new snapshot
//     (rebuilding or reusing Registry / Resolver as needed), and then
//     atomically publishes it. SetRegistry and SetResolver pin the layer
//     they install; a pinned layer is not rebuilt until it is unpinned.
//
//  3. Lifecycle:
//
//     Init(inits ...InitFunc) error
//     Freeze() error
//     Reset()
//
//     Init runs registration functions against the current registry and
//     freezes it, after which writes fail with registry.ErrFrozen. Reset
//     installs a fresh default snapshot; tests use it for isolation.
//
// # Usage pattern in a binary
//
//	if err := typemap.Init(product.InitAll); err != nil {
//		klog.Fatal(err)
//	}
//	p, err := typemap.Resolve(typeID)
//
// typemap does not render anything. Column specs describe where values come
// from and how they are formatted; presentation belongs to the caller.
package typemap
