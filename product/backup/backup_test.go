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

package backup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/builder"
	"dirpx.dev/typemap/config"
	"dirpx.dev/typemap/descriptor"
	"dirpx.dev/typemap/product/backup"
	"dirpx.dev/typemap/registry"
)

func initialized(t *testing.T, opts ...config.Option) apis.Registry {
	t.Helper()
	reg := registry.New(config.NewConfig(opts...))
	require.NoError(t, backup.Init(reg))
	return reg
}

func TestInit_Product(t *testing.T) {
	reg := initialized(t)

	p, ok := reg.Product(backup.Name)
	require.True(t, ok)
	assert.Equal(t, "backup", p.Icon)
	assert.Equal(t, 1, reg.Count())
	assert.Equal(t, []string{backup.TypeBackup, backup.TypeRestore, backup.TypeResourceSet}, reg.BasicTypes(backup.Name))
	require.NoError(t, reg.Validate())
}

func TestInit_BackupOrdersBeforeRestore(t *testing.T) {
	reg := initialized(t)

	got, err := reg.OrderedTypes(backup.Name)
	require.NoError(t, err)
	assert.Equal(t, []string{backup.TypeBackup, backup.TypeRestore, backup.TypeResourceSet}, got)

	w, ok := reg.Weight(backup.Name, backup.TypeBackup)
	require.True(t, ok)
	assert.Equal(t, apis.TypeWeight{Product: backup.Name, TypeID: backup.TypeBackup, Weight: 99, Exact: true}, w)
}

func TestInit_BackupHeaders(t *testing.T) {
	reg := initialized(t)

	cols, ok := reg.Headers(backup.Name, backup.TypeBackup)
	require.True(t, ok)

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name()
	}
	assert.Equal(t, []string{"state", "Status", "name", "ResourceSet", "Location", "Type", "Latest-Backup", "age"}, names)

	rs := cols[3]
	require.False(t, rs.IsRef())
	assert.Equal(t, "Resource Set", rs.Spec.Label)
	assert.Equal(t, "spec.resourceSetName", rs.Spec.Value)
	assert.Equal(t, apis.FormatterResourceSetLink, rs.Spec.Formatter)
	assert.Equal(t, []apis.SortKey{"spec.resourceSetName"}, rs.Spec.Sort)
}

func TestInit_RestoreHeaders(t *testing.T) {
	reg := initialized(t)

	cols, ok := reg.Headers(backup.Name, backup.TypeRestore)
	require.True(t, ok)
	assert.Equal(t, []apis.Column{
		apis.Ref(apis.RefState),
		apis.Ref("Status"),
		apis.Ref(apis.RefName),
		apis.Ref("Backup-Source"),
		apis.Ref("Backup-File"),
		apis.Ref(apis.RefAge),
	}, cols)

	_, ok = reg.Headers(backup.Name, backup.TypeResourceSet)
	assert.False(t, ok)
}

func TestInit_Resolve(t *testing.T) {
	reg := initialized(t)
	res := builder.New().BuildResolver(config.DefaultConfig(), reg, nil)

	cases := []struct {
		id string
		ok bool
	}{
		{backup.TypeBackup, true},
		{backup.TypeResourceSet, true},
		{"resources.cattle.io.somethingnew", true},
		{"sub.resources.cattle.io.thing", true},
		{"fleet.cattle.io.bundle", false},
		{"myresources.cattle.io.thing", false},
	}
	for _, tc := range cases {
		p, ok := res.Resolve(tc.id)
		assert.Equal(t, tc.ok, ok, tc.id)
		if tc.ok {
			assert.Equal(t, backup.Name, p.Name, tc.id)
		}
	}
}

func TestInit_Idempotent(t *testing.T) {
	reg := initialized(t)
	first := reg.Snapshot()
	require.NoError(t, backup.Init(reg))
	assert.Equal(t, first, reg.Snapshot())
}

func TestInit_StrictAndFrozen(t *testing.T) {
	initialized(t, config.WithStrictReferences(true))

	reg := registry.New(config.DefaultConfig())
	require.NoError(t, reg.Freeze())
	require.ErrorIs(t, backup.Init(reg), registry.ErrFrozen)
}

func TestDescriptor_MatchesYAML(t *testing.T) {
	ps, err := descriptor.LoadFile("testdata/backup.yaml")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, backup.Descriptor(), ps[0])
}
