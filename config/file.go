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

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"dirpx.dev/typemap/apis"
)

// File is the on-disk configuration of the typemapctl tool.
type File struct {
	// Strict maps to apis.Config.StrictReferences.
	Strict bool `mapstructure:"strict"`
	// WeightOrder is "descending" (default) or "ascending".
	WeightOrder string `mapstructure:"weight_order"`
	// CacheExpiration maps to apis.Config.CacheExpiration.
	CacheExpiration time.Duration `mapstructure:"cache_expiration"`
	// Builtins registers the compiled-in products before descriptors.
	Builtins bool `mapstructure:"builtins"`
	// Descriptors lists descriptor files or directories to apply.
	Descriptors []string `mapstructure:"descriptors"`
	// Output is the default output format ("json" or "yaml").
	Output string `mapstructure:"output"`
}

// DefaultFile returns the configuration used when no file is present.
func DefaultFile() File {
	return File{
		Strict:          DefaultStrictReferences,
		WeightOrder:     DefaultWeightOrder.String(),
		CacheExpiration: DefaultCacheExpiration,
		Builtins:        true,
		Output:          "json",
	}
}

// SetDefaults registers the File defaults on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultFile()
	v.SetDefault("strict", d.Strict)
	v.SetDefault("weight_order", d.WeightOrder)
	v.SetDefault("cache_expiration", d.CacheExpiration)
	v.SetDefault("builtins", d.Builtins)
	v.SetDefault("descriptors", []string{})
	v.SetDefault("output", d.Output)
}

// Load applies defaults to v and unmarshals it into a File.
// The caller is responsible for reading the config file into v.
func Load(v *viper.Viper) (File, error) {
	SetDefaults(v)
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return File{}, errors.Wrap(err, "typemap(config): decoding configuration")
	}
	if _, ok := ParseOrder(f.WeightOrder); !ok {
		return File{}, errors.Errorf("typemap(config): invalid weight_order %q", f.WeightOrder)
	}
	switch f.Output {
	case "json", "yaml":
	default:
		return File{}, errors.Errorf("typemap(config): invalid output %q", f.Output)
	}
	return f, nil
}

// Config maps the file settings onto an apis.Config.
func (f File) Config() apis.Config {
	order, _ := ParseOrder(f.WeightOrder)
	return NewConfig(
		WithStrictReferences(f.Strict),
		WithWeightOrder(order),
		WithCacheExpiration(f.CacheExpiration),
	)
}
