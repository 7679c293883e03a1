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

import "time"

// Order selects how type weights translate into display order.
type Order int

const (
	// Descending places higher weights first. This is the default.
	Descending Order = iota
	// Ascending places lower weights first.
	Ascending
)

// String returns the lowercase name of the order.
func (o Order) String() string {
	if o == Ascending {
		return "ascending"
	}
	return "descending"
}

// Config carries read-only registry knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// StrictReferences makes weight, basic-type and header writes fail with an
	// InvalidReferenceError when the product has not been declared yet.
	// When false, forward references are accepted and checked by Validate.
	StrictReferences bool

	// WeightOrder controls how OrderedTypes sorts weighted types.
	WeightOrder Order

	// CacheExpiration bounds how long a resolution result is memoized.
	// Zero keeps results until the registry changes; negative disables the cache.
	CacheExpiration time.Duration
}
