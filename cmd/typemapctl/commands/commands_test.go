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

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typemap"
	"dirpx.dev/typemap/internal/presentation"
	"dirpx.dev/typemap/product/backup"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(typemap.Reset)
	var out bytes.Buffer
	cmd := Root(context.Background(), &out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProducts(t *testing.T) {
	out, err := run(t, "products", "--descriptors", "testdata/fleet.yaml")
	require.NoError(t, err)

	var ps []presentation.Product
	require.NoError(t, json.Unmarshal([]byte(out), &ps))
	require.Len(t, ps, 2)
	assert.Equal(t, backup.Name, ps[0].Name)
	assert.Equal(t, "fleet", ps[1].Name)
	assert.True(t, typemap.Registry().Frozen())
}

func TestTypes_YAML(t *testing.T) {
	out, err := run(t, "types", backup.Name, "-o", "yaml")
	require.NoError(t, err)
	assert.YAMLEq(t, `
- type: resources.cattle.io.backup
  weight: 99
  exact: true
- type: resources.cattle.io.restore
  weight: 98
  exact: true
- type: resources.cattle.io.resourceset
  weight: 0
`, out)

	_, err = run(t, "types", "nope")
	require.Error(t, err)
}

func TestHeaders(t *testing.T) {
	out, err := run(t, "headers", backup.TypeRestore, "--expand")
	require.NoError(t, err)

	var h presentation.Headers
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.Equal(t, backup.Name, h.Product)
	require.Len(t, h.Columns, 6)
	assert.Equal(t, "State", h.Columns[0].Label)
	assert.Equal(t, "backupFile", h.Columns[4].Value)

	out, err = run(t, "headers", backup.TypeBackup, "--object", "testdata/backup-object.yaml")
	require.NoError(t, err)
	h = presentation.Headers{}
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.Equal(t, map[string]any{"ResourceSet": "rancher-resource-set", "Status": "Completed"}, h.Values)

	_, err = run(t, "headers", backup.TypeResourceSet)
	require.ErrorIs(t, err, typemap.ErrNoHeaders)
}

func TestResolve(t *testing.T) {
	out, err := run(t, "resolve", "resources.cattle.io.somethingnew")
	require.NoError(t, err)
	var r presentation.Resolution
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, backup.Name, r.Product)
	assert.Equal(t, "somethingnew", r.Kind)

	_, err = run(t, "resolve", "apps.deployment")
	require.ErrorIs(t, err, typemap.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "typemap.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("builtins: false\nweight_order: ascending\noutput: yaml\ndescriptors: [testdata/fleet.yaml]\n"), 0o644))

	out, err := run(t, "--config", cfg, "types", "fleet")
	require.NoError(t, err)
	assert.YAMLEq(t, `
- type: fleet.cattle.io.bundle
  weight: 0
- type: fleet.cattle.io.gitrepo
  weight: 5
  exact: true
`, out)
	assert.Equal(t, 1, typemap.Registry().Count())

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("weight_order: sideways\n"), 0o644))
	_, err = run(t, "--config", bad, "products")
	require.Error(t, err)

	_, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "products")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", "testdata/fleet.yaml")
	require.NoError(t, err)
	var report []presentation.Validation
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report, 1)
	assert.Equal(t, []string{"fleet"}, report[0].Products)

	out, err = run(t, "validate", "testdata/fleet.yaml", "testdata/broken.yaml")
	require.ErrorIs(t, err, ErrValidationFailed)
	report = nil
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report, 2)
	assert.Empty(t, report[0].Error)
	assert.Contains(t, report[1].Error, "label is required")

	_, err = run(t, "validate")
	require.Error(t, err)
}
