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

// NewPredicateStrategy creates an apis.Strategy that resolves a type to the
// first declared product whose predicate matches the type's API group.
func NewPredicateStrategy() apis.Strategy {
	return predicateStrategy{}
}

// predicateStrategy is the implicit-membership fallback. It parses the
// identifier into group and kind and asks each product's predicate.
type predicateStrategy struct{}

// Ensure predicateStrategy implements apis.Strategy.
var _ apis.Strategy = (*predicateStrategy)(nil)

// TryResolve tests predicates in product declaration order.
func (predicateStrategy) TryResolve(typeID string, reg apis.Registry) (apis.Product, bool) {
	if reg == nil {
		return apis.Product{}, false
	}
	gk, err := typeid.Parse(typeID)
	if err != nil {
		return apis.Product{}, false
	}
	for _, p := range reg.Products() {
		if p.Matches(gk.Group) {
			return p, true
		}
	}
	return apis.Product{}, false
}
