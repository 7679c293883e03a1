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

package config

import (
	"time"

	"dirpx.dev/typemap/apis"
)

const (
	// DefaultStrictReferences represents the default for StrictReferences.
	// Forward references to products are accepted and validated later.
	DefaultStrictReferences = false
	// DefaultWeightOrder represents the default for WeightOrder.
	// Higher weights are displayed first.
	DefaultWeightOrder = apis.Descending
	// DefaultCacheExpiration represents the default for CacheExpiration.
	// Zero keeps resolution results until the registry changes.
	DefaultCacheExpiration time.Duration = 0
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure WeightOrder is valid.
	if cfg.WeightOrder != apis.Ascending && cfg.WeightOrder != apis.Descending {
		cfg.WeightOrder = DefaultWeightOrder
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		StrictReferences: DefaultStrictReferences,
		WeightOrder:      DefaultWeightOrder,
		CacheExpiration:  DefaultCacheExpiration,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithStrictReferences sets the StrictReferences option.
func WithStrictReferences(strict bool) Option {
	return func(c *apis.Config) {
		c.StrictReferences = strict
	}
}

// WithWeightOrder sets the WeightOrder option.
func WithWeightOrder(o apis.Order) Option {
	return func(c *apis.Config) {
		c.WeightOrder = o
	}
}

// WithCacheExpiration sets the CacheExpiration option.
// A negative value disables resolution caching.
func WithCacheExpiration(d time.Duration) Option {
	return func(c *apis.Config) {
		c.CacheExpiration = d
	}
}

// ParseOrder maps "ascending"/"asc" and "descending"/"desc" to an apis.Order.
// The empty string yields the default.
func ParseOrder(s string) (apis.Order, bool) {
	switch s {
	case "":
		return DefaultWeightOrder, true
	case "ascending", "asc":
		return apis.Ascending, true
	case "descending", "desc":
		return apis.Descending, true
	}
	return DefaultWeightOrder, false
}
