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

// Package fieldpath validates and evaluates dot-separated field paths such as
// "spec.resourceSetName" against unstructured resource objects.
package fieldpath

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

var (
	// ErrEmptyPath is returned when an empty path is provided.
	ErrEmptyPath = errors.New("fieldpath: empty field path")
	// ErrMalformedPath indicates a path with an empty or invalid segment.
	ErrMalformedPath = errors.New("fieldpath: malformed field path")
)

// Validate checks that path is a non-empty sequence of dot-separated segments
// made of [A-Za-z0-9_-]. Such a path always maps onto a valid Expression.
func Validate(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	for _, seg := range strings.Split(path, ".") {
		if !validSegment(seg) {
			return ErrMalformedPath
		}
	}
	return nil
}

// Expression converts a field path into a bracket-notation JSONPath expression.
// Canonical non-negative integer segments become array indexes.
func Expression(path string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range strings.Split(path, ".") {
		if n, err := strconv.Atoi(seg); err == nil && n >= 0 && strconv.Itoa(n) == seg {
			b.WriteString("[" + seg + "]")
			continue
		}
		b.WriteString(`["` + seg + `"]`)
	}
	return b.String()
}

// Get evaluates path against obj (typically map[string]any decoded from JSON).
func Get(obj any, path string) (any, error) {
	if err := Validate(path); err != nil {
		return nil, err
	}
	return jsonpath.Get(Expression(path), obj)
}

func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}
