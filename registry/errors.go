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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("typemap(registry): validation failed")
	// ErrInvalidReference matches every *InvalidReferenceError via errors.Is.
	ErrInvalidReference = errors.New("typemap(registry): reference to undeclared product")
	// ErrFrozen is returned by mutations after Freeze.
	ErrFrozen = errors.New("typemap(registry): registry is frozen")
)

// ValidationError reports malformed registration input.
type ValidationError struct {
	// Product is the product being registered.
	Product string
	// TypeID is the resource type involved, if any.
	TypeID string
	// Column is the index of the offending column, or -1.
	Column int
	// Field names the offending field ("name", "label", "value", "sort", ...).
	Field string
	// Reason is a short human-readable explanation.
	Reason string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("typemap(registry): invalid")
	if e.Product != "" {
		fmt.Fprintf(&b, " product %q", e.Product)
	}
	if e.TypeID != "" {
		fmt.Fprintf(&b, " type %q", e.TypeID)
	}
	if e.Column >= 0 {
		fmt.Fprintf(&b, " column %d", e.Column)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %s", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidReferenceError reports an operation on a product that was never declared.
type InvalidReferenceError struct {
	// Product is the undeclared product name.
	Product string
	// Op is the operation that referenced it.
	Op string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("typemap(registry): %s references undeclared product %q", e.Op, e.Product)
}

// Is makes errors.Is(err, ErrInvalidReference) true.
func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

func invalid(product, typeID string, column int, field, reason string) error {
	return &ValidationError{Product: product, TypeID: typeID, Column: column, Field: field, Reason: reason}
}
