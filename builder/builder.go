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

package builder

import (
	"k8s.io/klog/v2"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/registry"
	"dirpx.dev/typemap/resolver"
	"dirpx.dev/typemap/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// Ensure builder implements apis.Builder.
var _ apis.Builder = (*builder)(nil)

// BuildRegistry builds a new apis.Registry for cfg. If prev is non-nil its
// contents are migrated through a snapshot, and a frozen prev yields a
// frozen result.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if prev == nil {
		return nreg
	}
	if err := nreg.Restore(prev.Snapshot()); err != nil {
		klog.ErrorS(err, "typemap: registry migration failed, starting empty")
		return registry.New(cfg)
	}
	if prev.Frozen() {
		if err := nreg.Freeze(); err != nil {
			klog.ErrorS(err, "typemap: migrated registry could not be frozen")
		}
	}
	return nreg
}

// BuildResolver builds a resolver over reg: basic-type membership first,
// then group predicates. The previous resolver holds only a cache keyed by
// registry generation, so it is not reused.
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver) apis.Resolver {
	return resolver.New(reg, cfg,
		strategy.NewBasicTypeStrategy(),
		strategy.NewPredicateStrategy(),
	)
}
