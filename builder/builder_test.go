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

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/builder"
	"dirpx.dev/typemap/config"
	"dirpx.dev/typemap/predicate"
	"dirpx.dev/typemap/registry"
)

func seed(t *testing.T, reg apis.Registry) {
	t.Helper()
	require.NoError(t, reg.DeclareProduct(apis.Product{Name: "backup", Predicate: predicate.MustGroupSuffix("resources.cattle.io"), Icon: "backup"}))
	require.NoError(t, reg.DeclareBasicTypes("backup", "resources.cattle.io.backup", "resources.cattle.io.restore"))
	require.NoError(t, reg.SetTypeWeight("backup", "resources.cattle.io.backup", 99, true))
	require.NoError(t, reg.SetHeaders("backup", "resources.cattle.io.backup", []apis.Column{apis.Ref(apis.RefState), apis.Ref(apis.RefName)}))
}

// TestBuildRegistry_Empty asserts that a nil prev still yields a working registry.
func TestBuildRegistry_Empty(t *testing.T) {
	reg := builder.New().BuildRegistry(config.DefaultConfig(), nil)
	require.NotNil(t, reg)
	assert.Equal(t, 0, reg.Count())
	require.NoError(t, reg.DeclareProduct(apis.Product{Name: "p"}))
	assert.Equal(t, 1, reg.Count())
}

// TestBuildRegistry_Migrates asserts that prev contents survive a rebuild
// under a different configuration, and that prev stays independent.
func TestBuildRegistry_Migrates(t *testing.T) {
	prev := registry.New(config.DefaultConfig())
	seed(t, prev)

	next := builder.New().BuildRegistry(config.NewConfig(config.WithWeightOrder(apis.Ascending)), prev)
	assert.Equal(t, prev.Snapshot(), next.Snapshot())

	require.NoError(t, next.DeclareBasicTypes("backup", "resources.cattle.io.resourceset"))
	assert.Len(t, prev.BasicTypes("backup"), 2)
	assert.Len(t, next.BasicTypes("backup"), 3)

	got, err := next.OrderedTypes("backup")
	require.NoError(t, err)
	assert.Equal(t, []string{"resources.cattle.io.restore", "resources.cattle.io.resourceset", "resources.cattle.io.backup"}, got)
}

func TestBuildRegistry_KeepsFrozen(t *testing.T) {
	prev := registry.New(config.DefaultConfig())
	seed(t, prev)
	require.NoError(t, prev.Freeze())

	next := builder.New().BuildRegistry(config.DefaultConfig(), prev)
	assert.True(t, next.Frozen())
	require.ErrorIs(t, next.DeclareProduct(apis.Product{Name: "x"}), registry.ErrFrozen)
}

func TestBuildResolver_Chain(t *testing.T) {
	b := builder.New()
	reg := b.BuildRegistry(config.DefaultConfig(), nil)
	seed(t, reg)
	require.NoError(t, reg.DeclareProduct(apis.Product{Name: "explorer"}))
	require.NoError(t, reg.DeclareBasicTypes("explorer", "resources.cattle.io.resourceset"))

	res := b.BuildResolver(config.DefaultConfig(), reg, nil)
	require.NotNil(t, res)

	p, ok := res.Resolve("resources.cattle.io.resourceset")
	require.True(t, ok)
	assert.Equal(t, "explorer", p.Name, "basic types win over predicates")

	p, ok = res.Resolve("resources.cattle.io.unknownkind")
	require.True(t, ok)
	assert.Equal(t, "backup", p.Name)

	_, ok = res.Resolve("apps.deployment")
	assert.False(t, ok)
}
