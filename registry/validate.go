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

package registry

import (
	"fmt"
	"strings"

	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/utils/fieldpath"
)

// ValidateColumns checks a header set and returns its canonical copy.
//
// Rules:
//   - the set has at least one column;
//   - a reference is non-blank;
//   - a spec has non-blank Name, Label and Value, and Value is a valid field path;
//   - a non-nil Sort lists at least one key and every key is a valid field path;
//   - column names (canonical reference or spec name) are unique.
//
// product and typeID are only used to annotate errors.
func ValidateColumns(product, typeID string, cols []apis.Column) ([]apis.Column, error) {
	if len(cols) == 0 {
		return nil, invalid(product, typeID, -1, "columns", "at least one column is required")
	}

	out := make([]apis.Column, len(cols))
	seen := make(map[string]int, len(cols))
	for i, c := range cols {
		if c.Ref != "" && c.Spec != nil {
			return nil, invalid(product, typeID, i, "ref", "column sets both a reference and a spec")
		}
		canon := c.Canonical()
		if canon.Spec == nil {
			if canon.Ref == "" {
				return nil, invalid(product, typeID, i, "ref", "empty column reference")
			}
		} else if err := validateSpec(product, typeID, i, canon.Spec); err != nil {
			return nil, err
		}

		name := canon.Name()
		if prev, dup := seen[name]; dup {
			return nil, invalid(product, typeID, i, "name", fmt.Sprintf("duplicate column name %q (also column %d)", name, prev))
		}
		seen[name] = i
		out[i] = canon
	}
	return out, nil
}

func validateSpec(product, typeID string, i int, s *apis.ColumnSpec) error {
	if strings.TrimSpace(s.Name) == "" {
		return invalid(product, typeID, i, "name", "name is required")
	}
	if strings.TrimSpace(s.Label) == "" {
		return invalid(product, typeID, i, "label", "label is required")
	}
	if strings.TrimSpace(s.Value) == "" {
		return invalid(product, typeID, i, "value", "value is required")
	}
	if err := fieldpath.Validate(s.Value); err != nil {
		return invalid(product, typeID, i, "value", fmt.Sprintf("malformed field path %q", s.Value))
	}
	if s.Sort != nil && len(s.Sort) == 0 {
		return invalid(product, typeID, i, "sort", "sort must list at least one field path")
	}
	for j, k := range s.Sort {
		if err := fieldpath.Validate(k.Path()); err != nil {
			return invalid(product, typeID, i, fmt.Sprintf("sort[%d]", j), fmt.Sprintf("malformed field path %q", string(k)))
		}
	}
	return nil
}
