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

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/config"
)

func readViper(t *testing.T, body string) *viper.Viper {
	t.Helper()
	path := filepath.Join(t.TempDir(), "typemap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	return v
}

func TestLoad_Defaults(t *testing.T) {
	f, err := config.Load(viper.New())
	require.NoError(t, err)
	require.Equal(t, config.DefaultFile().Builtins, f.Builtins)
	require.Equal(t, "json", f.Output)
	require.Empty(t, f.Descriptors)
	require.Equal(t, config.DefaultConfig(), f.Config())
}

func TestLoad_FromYAML(t *testing.T) {
	v := readViper(t, `
strict: true
weight_order: ascending
cache_expiration: 90s
builtins: false
descriptors:
  - ./products
  - extra.yaml
output: yaml
`)

	f, err := config.Load(v)
	require.NoError(t, err)
	require.True(t, f.Strict)
	require.False(t, f.Builtins)
	require.Equal(t, []string{"./products", "extra.yaml"}, f.Descriptors)
	require.Equal(t, "yaml", f.Output)

	cfg := f.Config()
	require.True(t, cfg.StrictReferences)
	require.Equal(t, apis.Ascending, cfg.WeightOrder)
	require.Equal(t, 90*time.Second, cfg.CacheExpiration)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	_, err := config.Load(readViper(t, "weight_order: sideways\n"))
	require.ErrorContains(t, err, "weight_order")

	_, err = config.Load(readViper(t, "output: xml\n"))
	require.ErrorContains(t, err, "output")
}
