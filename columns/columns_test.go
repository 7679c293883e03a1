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

package columns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/columns"
	"dirpx.dev/typemap/registry"
)

func TestLookup_Predefined(t *testing.T) {
	for _, ref := range []apis.ColumnRef{"state", "NAME", " Age "} {
		s, ok := columns.Lookup(ref)
		require.True(t, ok, "ref %q", ref)
		assert.Equal(t, string(ref.Canonical()), s.Name)
	}

	age, _ := columns.Lookup(apis.RefAge)
	assert.Equal(t, "Age", age.Label)
	assert.Equal(t, apis.FormatterLiveDate, age.Formatter)
	require.Len(t, age.Sort, 1)
	assert.True(t, age.Sort[0].Descending())
	assert.Equal(t, "metadata.creationTimestamp", age.Sort[0].Path())

	_, ok := columns.Lookup("Location")
	assert.False(t, ok)
}

func TestLookup_ReturnsCopies(t *testing.T) {
	s, _ := columns.Lookup(apis.RefState)
	s.Sort[0] = "mutated"
	again, _ := columns.Lookup(apis.RefState)
	assert.Equal(t, apis.SortKey("stateSort"), again.Sort[0])
}

func TestExpand(t *testing.T) {
	spec := apis.ColumnSpec{Name: "ResourceSet", Label: "Resource Set", Value: "spec.resourceSetName"}

	cases := []struct {
		name string
		col  apis.Column
		want apis.ColumnSpec
	}{
		{"spec", apis.Col(spec), spec},
		{"open ref", apis.Ref("Latest-Backup"), apis.ColumnSpec{Name: "Latest-Backup", Label: "Latest-Backup", Value: "latestBackup"}},
		{"single word", apis.Ref("Status"), apis.ColumnSpec{Name: "Status", Label: "Status", Value: "status"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, columns.Expand(tc.col))
		})
	}

	name := columns.Expand(apis.Ref("Name"))
	assert.Equal(t, apis.FormatterLinkDetail, name.Formatter)
}

func TestFieldName(t *testing.T) {
	cases := map[string]string{
		"Backup-Source": "backupSource",
		"Backup-File":   "backupFile",
		"Location":      "location",
		"last_run time": "lastRunTime",
		"":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, columns.FieldName(in), "FieldName(%q)", in)
	}
}

// Every expansion is itself a valid header column.
func TestExpandAll_Valid(t *testing.T) {
	cols := []apis.Column{apis.Ref(apis.RefState), apis.Ref("Status"), apis.Ref(apis.RefName), apis.Ref("Backup-File"), apis.Ref(apis.RefAge)}
	specs := columns.ExpandAll(cols)
	require.Len(t, specs, len(cols))

	expanded := make([]apis.Column, len(specs))
	for i, s := range specs {
		expanded[i] = apis.Col(s)
	}
	_, err := registry.ValidateColumns("backup", "resources.cattle.io.restore", expanded)
	require.NoError(t, err)
}

func TestValue(t *testing.T) {
	obj := map[string]any{
		"metadata": map[string]any{"name": "nightly"},
		"spec":     map[string]any{"resourceSetName": "rancher-resource-set"},
		"status":   "Completed",
	}

	v, err := columns.Value(apis.Col(apis.ColumnSpec{Name: "ResourceSet", Label: "Resource Set", Value: "spec.resourceSetName"}), obj)
	require.NoError(t, err)
	assert.Equal(t, "rancher-resource-set", v)

	v, err = columns.Value(apis.Ref("Status"), obj)
	require.NoError(t, err)
	assert.Equal(t, "Completed", v)

	_, err = columns.Value(apis.Ref(apis.RefState), obj)
	assert.Error(t, err, "stateDisplay is computed by the host")
}
