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

// Package predicate provides apis.Predicate implementations that decide
// product membership from a resource type's API group.
package predicate

import (
	"errors"
	"regexp"
	"strings"

	"dirpx.dev/typemap/apis"
)

// ErrEmptySuffix is returned when GroupSuffix is given an empty suffix.
var ErrEmptySuffix = errors.New("typemap(predicate): empty group suffix")

// GroupSuffix matches suffix itself and any group ending in "."+suffix,
// i.e. zero or more leading dot-separated segments.
func GroupSuffix(suffix string) (apis.Predicate, error) {
	suffix = strings.ToLower(strings.Trim(strings.TrimSpace(suffix), "."))
	if suffix == "" {
		return nil, ErrEmptySuffix
	}
	return groupSuffix(suffix), nil
}

// MustGroupSuffix is like GroupSuffix but panics on error.
func MustGroupSuffix(suffix string) apis.Predicate {
	p, err := GroupSuffix(suffix)
	if err != nil {
		panic(err)
	}
	return p
}

type groupSuffix string

// Ensure groupSuffix implements apis.Predicate.
var _ apis.Predicate = groupSuffix("")

func (s groupSuffix) Match(group string) bool {
	suffix := string(s)
	return group == suffix || strings.HasSuffix(group, "."+suffix)
}

func (s groupSuffix) String() string {
	return "group-suffix:" + string(s)
}

// GroupRegexp matches groups against a regular expression, e.g.
// `^(.*\.)*resources\.cattle\.io$`.
func GroupRegexp(expr string) (apis.Predicate, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return groupRegexp{re: re}, nil
}

type groupRegexp struct {
	re *regexp.Regexp
}

// Ensure groupRegexp implements apis.Predicate.
var _ apis.Predicate = groupRegexp{}

func (p groupRegexp) Match(group string) bool {
	return p.re.MatchString(group)
}

func (p groupRegexp) String() string {
	return "group-regexp:" + p.re.String()
}

// Func adapts a function to apis.Predicate. desc is returned by String.
func Func(desc string, fn func(group string) bool) apis.Predicate {
	return funcPredicate{desc: desc, fn: fn}
}

type funcPredicate struct {
	desc string
	fn   func(string) bool
}

func (p funcPredicate) Match(group string) bool {
	return p.fn != nil && p.fn(group)
}

func (p funcPredicate) String() string {
	return "func:" + p.desc
}
