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

package apis

import "strings"

// ColumnRef is a symbolic reference to a column defined outside the header set.
//
// The predefined references (RefState, RefName, RefAge) form a closed set that
// the column table knows how to expand. Any other non-empty reference is passed
// through verbatim and resolved by the host.
type ColumnRef string

const (
	// RefState is the state indicator column.
	RefState ColumnRef = "state"
	// RefName is the resource name column.
	RefName ColumnRef = "name"
	// RefAge is the creation age column.
	RefAge ColumnRef = "age"
)

// Canonical returns the canonical spelling of r. Predefined references are
// matched case-insensitively and returned lowercase; others are trimmed only.
func (r ColumnRef) Canonical() ColumnRef {
	s := strings.TrimSpace(string(r))
	switch ColumnRef(strings.ToLower(s)) {
	case RefState:
		return RefState
	case RefName:
		return RefName
	case RefAge:
		return RefAge
	}
	return ColumnRef(s)
}

// Predefined reports whether r names one of the predefined columns.
func (r ColumnRef) Predefined() bool {
	switch r.Canonical() {
	case RefState, RefName, RefAge:
		return true
	}
	return false
}

// Formatter is a symbolic reference to a cell rendering strategy.
type Formatter string

const (
	// FormatterResourceSetLink links a backup to its resource set.
	FormatterResourceSetLink Formatter = "ResourceSetLink"
	// FormatterBadgeState renders a state badge.
	FormatterBadgeState Formatter = "BadgeState"
	// FormatterLinkDetail renders a link to the resource detail page.
	FormatterLinkDetail Formatter = "LinkDetail"
	// FormatterLiveDate renders a relative, live-updating timestamp.
	FormatterLiveDate Formatter = "LiveDate"
)

// Known reports whether f is one of the formatters defined in this package.
// Unknown formatters are still valid; they are resolved by the host.
func (f Formatter) Known() bool {
	switch f {
	case FormatterResourceSetLink, FormatterBadgeState, FormatterLinkDetail, FormatterLiveDate:
		return true
	}
	return false
}

// SortKey is a field path used as a sort key, optionally suffixed with ":desc".
type SortKey string

// descSuffix marks a descending sort key.
const descSuffix = ":desc"

// Path returns the field path without the direction suffix.
func (k SortKey) Path() string {
	return strings.TrimSuffix(string(k), descSuffix)
}

// Descending reports whether the key sorts in descending order.
func (k SortKey) Descending() bool {
	return strings.HasSuffix(string(k), descSuffix)
}

// ColumnSpec is a structured column definition.
type ColumnSpec struct {
	// Name is unique within a header set.
	Name string `json:"name" yaml:"name"`
	// Label is the human-readable header text.
	Label string `json:"label" yaml:"label"`
	// Value is a dot-separated field path into the resource object.
	Value string `json:"value" yaml:"value"`
	// Formatter optionally selects a rendering strategy.
	Formatter Formatter `json:"formatter,omitempty" yaml:"formatter,omitempty"`
	// Sort lists sort keys in priority order. Nil means not sortable.
	Sort []SortKey `json:"sort,omitempty" yaml:"sort,omitempty"`
	// Width is an optional width hint in pixels.
	Width int `json:"width,omitempty" yaml:"width,omitempty"`
	// Align is an optional alignment hint ("left", "center", "right").
	Align string `json:"align,omitempty" yaml:"align,omitempty"`
}

// Clone returns a deep copy of s.
func (s ColumnSpec) Clone() ColumnSpec {
	if s.Sort != nil {
		s.Sort = append([]SortKey(nil), s.Sort...)
	}
	return s
}

// Column is one entry of a header set: either a reference or a structured spec.
// Exactly one of Ref or Spec is set.
type Column struct {
	Ref  ColumnRef
	Spec *ColumnSpec
}

// Ref builds a reference column.
func Ref(r ColumnRef) Column {
	return Column{Ref: r}
}

// Col builds a structured column.
func Col(s ColumnSpec) Column {
	return Column{Spec: &s}
}

// IsRef reports whether c is a reference column.
func (c Column) IsRef() bool {
	return c.Spec == nil
}

// Name returns the column's unique name: the canonical reference or the spec name.
func (c Column) Name() string {
	if c.Spec != nil {
		return c.Spec.Name
	}
	return string(c.Ref.Canonical())
}

// Canonical returns a deep copy of c with its reference canonicalized.
func (c Column) Canonical() Column {
	if c.Spec != nil {
		s := c.Spec.Clone()
		return Column{Spec: &s}
	}
	return Column{Ref: c.Ref.Canonical()}
}

// String implements fmt.Stringer.
func (c Column) String() string {
	if c.Spec != nil {
		return "spec(" + c.Spec.Name + ")"
	}
	return "ref(" + string(c.Ref) + ")"
}
