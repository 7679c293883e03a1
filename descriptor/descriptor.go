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

// Package descriptor holds static, pure-data product descriptions and
// applies them to a registry. Descriptors can be written in Go or loaded
// from YAML documents.
package descriptor

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/dsl"
	"dirpx.dev/typemap/predicate"
	"dirpx.dev/typemap/registry"
	"dirpx.dev/typemap/utils/typeid"
)

// ErrInvalid is the cause of every descriptor validation failure.
var ErrInvalid = errors.New("typemap(descriptor): invalid descriptor")

// Product describes everything a product registers.
type Product struct {
	// Name is the product key.
	Name string `yaml:"name"`
	// GroupSuffix selects API groups equal to or ending in ".<suffix>".
	GroupSuffix string `yaml:"groupSuffix,omitempty"`
	// GroupPattern selects API groups by regular expression.
	// Mutually exclusive with GroupSuffix.
	GroupPattern string `yaml:"groupPattern,omitempty"`
	// Icon is a symbolic icon reference.
	Icon string `yaml:"icon,omitempty"`
	// Weights are applied in order.
	Weights []Weight `yaml:"weights,omitempty"`
	// BasicTypes are declared in order.
	BasicTypes []string `yaml:"basicTypes,omitempty"`
	// Headers are applied in order; a later set for the same type wins.
	Headers []HeaderSet `yaml:"headers,omitempty"`
}

// Weight is one SetTypeWeight call.
type Weight struct {
	Type   string `yaml:"type"`
	Weight int    `yaml:"weight"`
	Exact  bool   `yaml:"exact,omitempty"`
}

// HeaderSet is one SetHeaders call.
type HeaderSet struct {
	Type    string   `yaml:"type"`
	Columns []Column `yaml:"columns"`
}

// Cols converts the header set to registry columns.
func (h HeaderSet) Cols() []apis.Column {
	out := make([]apis.Column, len(h.Columns))
	for i, c := range h.Columns {
		out[i] = apis.Column(c)
	}
	return out
}

// Headers builds a HeaderSet from registry columns.
func Headers(typeID string, cols ...apis.Column) HeaderSet {
	h := HeaderSet{Type: typeID, Columns: make([]Column, len(cols))}
	for i, c := range cols {
		h.Columns[i] = Column(c)
	}
	return h
}

// Predicate builds the product predicate. It returns nil when neither
// GroupSuffix nor GroupPattern is set.
func (p Product) Predicate() (apis.Predicate, error) {
	switch {
	case p.GroupSuffix != "" && p.GroupPattern != "":
		return nil, errors.Wrap(ErrInvalid, "groupSuffix and groupPattern are mutually exclusive")
	case p.GroupSuffix != "":
		return predicate.GroupSuffix(p.GroupSuffix)
	case p.GroupPattern != "":
		return predicate.GroupRegexp(p.GroupPattern)
	}
	return nil, nil
}

// Validate checks the descriptor without touching a registry.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Wrap(ErrInvalid, "product name is required")
	}
	if _, err := p.Predicate(); err != nil {
		return errors.Wrapf(err, "product %q: predicate", p.Name)
	}
	for i, w := range p.Weights {
		if _, err := typeid.Normalize(w.Type); err != nil {
			return p.invalid(fmt.Sprintf("weights[%d]: %v", i, err))
		}
	}
	for i, id := range p.BasicTypes {
		if _, err := typeid.Normalize(id); err != nil {
			return p.invalid(fmt.Sprintf("basicTypes[%d]: %v", i, err))
		}
	}
	for i, h := range p.Headers {
		id, err := typeid.Normalize(h.Type)
		if err != nil {
			return p.invalid(fmt.Sprintf("headers[%d]: %v", i, err))
		}
		if _, err := registry.ValidateColumns(p.Name, id, h.Cols()); err != nil {
			return errors.Wrapf(err, "product %q: headers[%d]", p.Name, i)
		}
	}
	return nil
}

func (p Product) invalid(reason string) error {
	return errors.Wrapf(ErrInvalid, "product %q: %s", p.Name, reason)
}

// Apply registers p into reg: the product record, then weights, basic
// types and header sets. The first failure aborts and is returned wrapped
// with the product name and step.
func Apply(reg apis.Registry, p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	pred, _ := p.Predicate()
	h := dsl.For(reg, p.Name)
	if err := h.Product(pred, p.Icon); err != nil {
		return errors.Wrapf(err, "product %q: declare", p.Name)
	}
	for _, w := range p.Weights {
		if err := h.WeightType(w.Type, w.Weight, w.Exact); err != nil {
			return errors.Wrapf(err, "product %q: weight %s", p.Name, w.Type)
		}
	}
	if len(p.BasicTypes) > 0 {
		if err := h.BasicType(p.BasicTypes...); err != nil {
			return errors.Wrapf(err, "product %q: basic types", p.Name)
		}
	}
	for _, hs := range p.Headers {
		if err := h.Headers(hs.Type, hs.Cols()...); err != nil {
			return errors.Wrapf(err, "product %q: headers %s", p.Name, hs.Type)
		}
	}
	return nil
}

// ApplyAll applies descriptors in order and stops at the first error.
func ApplyAll(reg apis.Registry, ps ...Product) error {
	for _, p := range ps {
		if err := Apply(reg, p); err != nil {
			return err
		}
	}
	return nil
}
