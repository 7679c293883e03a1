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

package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typemap"
	"dirpx.dev/typemap/product"
	"dirpx.dev/typemap/product/backup"
)

func TestInitAll_Global(t *testing.T) {
	typemap.Reset()
	t.Cleanup(typemap.Reset)

	require.NoError(t, typemap.Init(product.InitAll))
	assert.True(t, typemap.Registry().Frozen())

	p, err := typemap.Resolve(backup.TypeBackup)
	require.NoError(t, err)
	assert.Equal(t, backup.Name, p.Name)

	_, err = typemap.Resolve("apps.example.io.deployment")
	require.ErrorIs(t, err, typemap.ErrNotFound)

	cols, err := typemap.HeadersFor(backup.TypeBackup)
	require.NoError(t, err)
	assert.Equal(t, "ResourceSet", cols[3].Name())

	got, err := typemap.OrderedTypes(backup.Name)
	require.NoError(t, err)
	assert.Equal(t, backup.TypeBackup, got[0])
}

func TestBuiltins(t *testing.T) {
	typemap.Reset()
	t.Cleanup(typemap.Reset)

	require.NoError(t, typemap.Init(product.Builtins()...))
	assert.Equal(t, len(product.Builtins()), typemap.Registry().Count())
}
