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

// Package columns is the table of predefined header columns. It expands
// column references into full specs for hosts that render header sets.
package columns

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/utils/fieldpath"
)

// predefined holds the records behind apis.RefState, apis.RefName and apis.RefAge.
var predefined = map[apis.ColumnRef]apis.ColumnSpec{
	apis.RefState: {
		Name:      string(apis.RefState),
		Label:     "State",
		Value:     "stateDisplay",
		Formatter: apis.FormatterBadgeState,
		Sort:      []apis.SortKey{"stateSort", "nameSort"},
		Width:     100,
	},
	apis.RefName: {
		Name:      string(apis.RefName),
		Label:     "Name",
		Value:     "nameDisplay",
		Formatter: apis.FormatterLinkDetail,
		Sort:      []apis.SortKey{"nameSort"},
	},
	apis.RefAge: {
		Name:      string(apis.RefAge),
		Label:     "Age",
		Value:     "metadata.creationTimestamp",
		Formatter: apis.FormatterLiveDate,
		Sort:      []apis.SortKey{"metadata.creationTimestamp:desc"},
		Width:     100,
		Align:     "right",
	},
}

// Lookup returns the predefined record for ref.
func Lookup(ref apis.ColumnRef) (apis.ColumnSpec, bool) {
	s, ok := predefined[ref.Canonical()]
	if !ok {
		return apis.ColumnSpec{}, false
	}
	return s.Clone(), true
}

// Expand returns the full spec of col. Predefined references expand to their
// records; other references expand to a column named and labelled after the
// reference whose value is its lower-camel field name ("Latest-Backup"
// becomes "latestBackup"). Specs are returned as copies.
func Expand(col apis.Column) apis.ColumnSpec {
	if col.Spec != nil {
		return col.Spec.Clone()
	}
	if s, ok := Lookup(col.Ref); ok {
		return s
	}
	ref := string(col.Ref.Canonical())
	return apis.ColumnSpec{Name: ref, Label: ref, Value: FieldName(ref)}
}

// ExpandAll expands every column of cols.
func ExpandAll(cols []apis.Column) []apis.ColumnSpec {
	out := make([]apis.ColumnSpec, len(cols))
	for i, c := range cols {
		out[i] = Expand(c)
	}
	return out
}

// FieldName converts a display reference to a lower-camel field name.
// Words are separated by anything that is not a letter or digit.
func FieldName(ref string) string {
	words := strings.FieldsFunc(ref, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	lower, title := cases.Lower(language.Und), cases.Title(language.Und)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(lower.String(w))
			continue
		}
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Value evaluates the value path of col against an unstructured resource
// object, as decoded from JSON or YAML.
func Value(col apis.Column, obj any) (any, error) {
	return fieldpath.Get(obj, Expand(col).Value)
}
