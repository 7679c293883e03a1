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

// Package typeid parses and normalizes resource-type identifiers of the
// shape "<api-group>.<kind>", e.g. "resources.cattle.io.backup".
package typeid

import (
	"strings"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/validation"
)

var (
	// ErrEmptyTypeID is returned when an empty identifier is provided.
	ErrEmptyTypeID = errors.New("typeid: empty resource-type identifier")
	// ErrMalformedTypeID indicates an identifier whose group or kind is invalid.
	ErrMalformedTypeID = errors.New("typeid: malformed resource-type identifier")
)

// Normalize trims and lowercases id and checks it against the Kubernetes
// naming rules: the group is a DNS-1123 subdomain and the kind a DNS-1123
// label.
//
// Normalization policy:
//   - surrounding whitespace is removed;
//   - ASCII letters are lowercased;
//   - the kind is the last dot-separated segment, the group everything before it;
//   - "a..b", ".a" and "a." are rejected (empty segment);
//   - groups longer than 253 and kinds longer than 63 characters are rejected;
//   - any character outside [a-z0-9.-], or a segment starting or ending
//     with '-', is rejected.
func Normalize(id string) (string, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return "", ErrEmptyTypeID
	}
	group, kind := split(id)
	if msgs := validation.IsDNS1123Label(kind); len(msgs) > 0 {
		return "", errors.Wrapf(ErrMalformedTypeID, "%q: kind: %s", id, strings.Join(msgs, "; "))
	}
	if group == "" && len(kind) < len(id) {
		return "", errors.Wrapf(ErrMalformedTypeID, "%q: empty group", id)
	}
	if group != "" {
		if msgs := validation.IsDNS1123Subdomain(group); len(msgs) > 0 {
			return "", errors.Wrapf(ErrMalformedTypeID, "%q: group: %s", id, strings.Join(msgs, "; "))
		}
	}
	return id, nil
}

// Parse normalizes id and splits it into API group and kind.
// The kind is the last segment; a single-segment id has an empty group.
func Parse(id string) (schema.GroupKind, error) {
	n, err := Normalize(id)
	if err != nil {
		return schema.GroupKind{}, err
	}
	group, kind := split(n)
	return schema.GroupKind{Group: group, Kind: kind}, nil
}

func split(id string) (group, kind string) {
	if i := strings.LastIndexByte(id, '.'); i >= 0 {
		return id[:i], id[i+1:]
	}
	return "", id
}

// Group returns the API group of id, or "" if id is malformed or has no group.
func Group(id string) string {
	gk, err := Parse(id)
	if err != nil {
		return ""
	}
	return gk.Group
}

// Format joins a GroupKind back into "<group>.<kind>" form.
func Format(gk schema.GroupKind) string {
	if gk.Group == "" {
		return gk.Kind
	}
	return gk.Group + "." + gk.Kind
}

// HasPrefix reports whether id equals prefix or is a dot-separated descendant of it.
// Both arguments must already be normalized.
func HasPrefix(id, prefix string) bool {
	return id == prefix || strings.HasPrefix(id, prefix+".")
}
