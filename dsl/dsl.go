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

// Package dsl offers a product-scoped registration handle, so product
// packages can describe themselves without repeating the product name.
//
//	p := dsl.For(reg, "backup")
//	_ = p.Product(predicate.MustGroupSuffix("resources.cattle.io"), "backup")
//	_ = p.WeightType("resources.cattle.io.backup", 99, true)
package dsl

import "dirpx.dev/typemap/apis"

// Product is a registration handle bound to one product of a registry.
type Product struct {
	reg  apis.Registry
	name string
}

// For returns a handle for product name in reg.
func For(reg apis.Registry, name string) Product {
	return Product{reg: reg, name: name}
}

// Name returns the product name the handle is bound to.
func (p Product) Name() string { return p.name }

// Product declares (or overwrites) the product record.
func (p Product) Product(pred apis.Predicate, icon string) error {
	return p.reg.DeclareProduct(apis.Product{Name: p.name, Predicate: pred, Icon: icon})
}

// BasicType appends basic types.
func (p Product) BasicType(typeIDs ...string) error {
	return p.reg.DeclareBasicTypes(p.name, typeIDs...)
}

// WeightType sets the ordering weight of typeID.
func (p Product) WeightType(typeID string, weight int, exact bool) error {
	return p.reg.SetTypeWeight(p.name, typeID, weight, exact)
}

// Headers sets the column layout of typeID.
func (p Product) Headers(typeID string, cols ...apis.Column) error {
	return p.reg.SetHeaders(p.name, typeID, cols)
}
