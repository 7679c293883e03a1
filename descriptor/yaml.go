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

package descriptor

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"dirpx.dev/typemap/apis"
)

// Column is a header column in YAML form: a scalar is a reference and a
// mapping is a structured spec.
//
//	columns:
//	  - state
//	  - name: ResourceSet
//	    label: Resource Set
//	    value: spec.resourceSetName
type Column apis.Column

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Column) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var ref string
		if err := n.Decode(&ref); err != nil {
			return err
		}
		*c = Column(apis.Ref(apis.ColumnRef(ref)))
		return nil
	case yaml.MappingNode:
		spec, err := decodeSpec(n)
		if err != nil {
			return errors.Wrapf(err, "typemap(descriptor): line %d", n.Line)
		}
		*c = Column(apis.Col(spec))
		return nil
	}
	return errors.Errorf("typemap(descriptor): line %d: column must be a string or a mapping", n.Line)
}

// decodeSpec decodes a column mapping, rejecting unknown fields.
// Node.Decode does not inherit KnownFields from the outer decoder, so the
// node is re-encoded and decoded strictly.
func decodeSpec(n *yaml.Node) (apis.ColumnSpec, error) {
	var spec apis.ColumnSpec
	data, err := yaml.Marshal(n)
	if err != nil {
		return spec, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return spec, err
	}
	return spec, nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Column) MarshalYAML() (any, error) {
	if c.Spec != nil {
		return c.Spec, nil
	}
	return string(c.Ref), nil
}

// IsDescriptorFile reports whether path has a YAML extension.
func IsDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load decodes every YAML document of r as a Product. Unknown fields are rejected.
func Load(r io.Reader) ([]Product, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var out []Product
	for {
		var p Product
		err := dec.Decode(&p)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "typemap(descriptor): document %d", len(out))
		}
		out = append(out, p)
	}
}

// LoadFile loads the descriptors in path.
func LoadFile(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "typemap(descriptor)")
	}
	ps, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return ps, nil
}

// LoadDir loads every .yaml and .yml file directly under dir, in file name order.
func LoadDir(dir string) ([]Product, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "typemap(descriptor)")
	}
	var out []Product
	for _, e := range entries {
		if e.IsDir() || !IsDescriptorFile(e.Name()) {
			continue
		}
		ps, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}

// LoadPaths loads each path as a file or, for directories, with LoadDir.
func LoadPaths(paths ...string) ([]Product, error) {
	var out []Product
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrap(err, "typemap(descriptor)")
		}
		load := LoadFile
		if fi.IsDir() {
			load = LoadDir
		}
		ps, err := load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}

// Encode writes ps to w as a YAML document stream.
func Encode(w io.Writer, ps ...Product) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, p := range ps {
		if err := enc.Encode(p); err != nil {
			return errors.Wrap(err, "typemap(descriptor)")
		}
	}
	return enc.Close()
}
