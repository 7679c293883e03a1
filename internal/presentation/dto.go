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

// Package presentation converts registry data into output records and
// renders them as JSON or YAML.
package presentation

import (
	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/columns"
	"dirpx.dev/typemap/utils/typeid"
)

// Product is the output record of a product.
type Product struct {
	Name       string   `json:"name" yaml:"name"`
	Icon       string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Predicate  string   `json:"predicate,omitempty" yaml:"predicate,omitempty"`
	BasicTypes []string `json:"basicTypes,omitempty" yaml:"basicTypes,omitempty"`
}

// Type is one entry of a product's ordered type list.
type Type struct {
	Type   string `json:"type" yaml:"type"`
	Weight int    `json:"weight" yaml:"weight"`
	Exact  bool   `json:"exact,omitempty" yaml:"exact,omitempty"`
}

// Column is the output record of a header column. Ref is set for
// unexpanded reference columns only.
type Column struct {
	Ref       string   `json:"ref,omitempty" yaml:"ref,omitempty"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Label     string   `json:"label,omitempty" yaml:"label,omitempty"`
	Value     string   `json:"value,omitempty" yaml:"value,omitempty"`
	Formatter string   `json:"formatter,omitempty" yaml:"formatter,omitempty"`
	Sort      []string `json:"sort,omitempty" yaml:"sort,omitempty"`
	Width     int      `json:"width,omitempty" yaml:"width,omitempty"`
	Align     string   `json:"align,omitempty" yaml:"align,omitempty"`
}

// Headers is the header layout of a resolved type.
type Headers struct {
	Type    string   `json:"type" yaml:"type"`
	Product string   `json:"product" yaml:"product"`
	Columns []Column `json:"columns" yaml:"columns"`
	// Values maps column names to values extracted from a sample object.
	Values map[string]any `json:"values,omitempty" yaml:"values,omitempty"`
}

// Resolution is the answer to a resolve query.
type Resolution struct {
	Type    string `json:"type" yaml:"type"`
	Group   string `json:"group" yaml:"group"`
	Kind    string `json:"kind" yaml:"kind"`
	Product string `json:"product" yaml:"product"`
	Icon    string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Validation reports the outcome of validating one descriptor source.
type Validation struct {
	Path     string   `json:"path" yaml:"path"`
	Products []string `json:"products,omitempty" yaml:"products,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Products lists the declared products of reg.
func Products(reg apis.Registry) []Product {
	ps := reg.Products()
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = Product{Name: p.Name, Icon: p.Icon, BasicTypes: reg.BasicTypes(p.Name)}
		if p.Predicate != nil {
			out[i].Predicate = p.Predicate.String()
		}
	}
	return out
}

// Types lists product's types in display order with their effective weights.
func Types(reg apis.Registry, product string) ([]Type, error) {
	ids, err := reg.OrderedTypes(product)
	if err != nil {
		return nil, err
	}
	out := make([]Type, len(ids))
	for i, id := range ids {
		out[i] = Type{Type: id}
		if w, ok := reg.Weight(product, id); ok {
			out[i].Weight, out[i].Exact = w.Weight, w.Exact
		}
	}
	return out, nil
}

// Columns converts cols. When expand is set, references are replaced by
// their full records.
func Columns(cols []apis.Column, expand bool) []Column {
	out := make([]Column, len(cols))
	for i, c := range cols {
		if c.IsRef() && !expand {
			out[i] = Column{Ref: string(c.Ref)}
			continue
		}
		out[i] = fromSpec(columns.Expand(c))
	}
	return out
}

func fromSpec(s apis.ColumnSpec) Column {
	c := Column{
		Name:      s.Name,
		Label:     s.Label,
		Value:     s.Value,
		Formatter: string(s.Formatter),
		Width:     s.Width,
		Align:     s.Align,
	}
	for _, k := range s.Sort {
		c.Sort = append(c.Sort, string(k))
	}
	return c
}

// Resolve builds the resolution record of typeID owned by p.
func Resolve(typeID string, p apis.Product) Resolution {
	gk, _ := typeid.Parse(typeID)
	return Resolution{Type: typeid.Format(gk), Group: gk.Group, Kind: gk.Kind, Product: p.Name, Icon: p.Icon}
}

// Values extracts the value of every column of cols from obj. Columns whose
// path is absent from obj are left out.
func Values(cols []apis.Column, obj any) map[string]any {
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		if v, err := columns.Value(c, obj); err == nil {
			out[c.Name()] = v
		}
	}
	return out
}
