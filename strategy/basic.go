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

package strategy

import (
	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/utils/typeid"
)

// NewBasicTypeStrategy creates an apis.Strategy that resolves a type to the
// first declared product listing it as a basic type.
func NewBasicTypeStrategy() apis.Strategy {
	return &basicTypeStrategy{}
}

// basicTypeStrategy is the explicit-membership fast path: a product that
// declared typeID as a basic type owns it, regardless of predicates.
type basicTypeStrategy struct{}

// Ensure basicTypeStrategy implements apis.Strategy.
var _ apis.Strategy = (*basicTypeStrategy)(nil)

// TryResolve scans declared products in declaration order.
func (*basicTypeStrategy) TryResolve(typeID string, reg apis.Registry) (apis.Product, bool) {
	if reg == nil {
		return apis.Product{}, false
	}
	id, err := typeid.Normalize(typeID)
	if err != nil {
		return apis.Product{}, false
	}
	for _, p := range reg.Products() {
		for _, t := range reg.BasicTypes(p.Name) {
			if t == id {
				return p, true
			}
		}
	}
	return apis.Product{}, false
}
