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

package strategy_test

import (
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/config"
	"dirpx.dev/typemap/predicate"
	"dirpx.dev/typemap/registry"
	"dirpx.dev/typemap/strategy"
)

// newRegistry returns a registry with two products: "backup" owns
// resources.cattle.io by predicate and "fleet" lists one of its types as basic.
func newRegistry(t *testing.T) apis.Registry {
	t.Helper()
	reg := registry.New(config.DefaultConfig())
	steps := []error{
		reg.DeclareProduct(apis.Product{Name: "backup", Predicate: predicate.MustGroupSuffix("resources.cattle.io")}),
		reg.DeclareProduct(apis.Product{Name: "fleet", Predicate: predicate.MustGroupSuffix("fleet.cattle.io")}),
		reg.DeclareBasicTypes("backup", "resources.cattle.io.backup", "resources.cattle.io.restore"),
		reg.DeclareBasicTypes("fleet", "fleet.cattle.io.bundle", "resources.cattle.io.restore"),
	}
	for _, err := range steps {
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return reg
}

func TestBasicTypeStrategy_Resolve(t *testing.T) {
	reg := newRegistry(t)
	s := strategy.NewBasicTypeStrategy()

	cases := []struct {
		name string
		id   string
		want string
		ok   bool
	}{
		{"basic", "resources.cattle.io.backup", "backup", true},
		{"normalized", "  Resources.Cattle.IO.Backup ", "backup", true},
		{"first_declared_wins", "resources.cattle.io.restore", "backup", true},
		{"other_product", "fleet.cattle.io.bundle", "fleet", true},
		{"predicate_only", "resources.cattle.io.resourceset", "", false},
		{"unknown", "apps.deployment", "", false},
		{"malformed", "a..b", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(tc.id, reg)
			if ok != tc.ok || got.Name != tc.want {
				t.Fatalf("TryResolve(%q) = (%q,%v), want (%q,%v)", tc.id, got.Name, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestBasicTypeStrategy_NilRegistry(t *testing.T) {
	if _, ok := strategy.NewBasicTypeStrategy().TryResolve("resources.cattle.io.backup", nil); ok {
		t.Fatal("nil registry must miss")
	}
}

// A small concurrency smoke test against a registry being written to.
func TestBasicTypeStrategy_Concurrent(t *testing.T) {
	reg := newRegistry(t)
	s := strategy.NewBasicTypeStrategy()

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers + 1)
	errCh := make(chan string, workers)

	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = reg.DeclareBasicTypes("fleet", "fleet.cattle.io.gitrepo")
		}
	}()
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if got, ok := s.TryResolve("resources.cattle.io.backup", reg); !ok || got.Name != "backup" {
					errCh <- got.Name
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for got := range errCh {
		t.Fatalf("concurrent TryResolve returned %q", got)
	}
}
