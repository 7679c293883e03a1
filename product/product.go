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

// Package product lists the built-in products.
package product

import (
	"dirpx.dev/typemap"
	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/product/backup"
)

// Builtins returns the registration functions of the built-in products,
// in registration order.
func Builtins() []typemap.InitFunc {
	return []typemap.InitFunc{
		backup.Init,
	}
}

// InitAll registers every built-in product into reg.
func InitAll(reg apis.Registry) error {
	for _, fn := range Builtins() {
		if err := fn(reg); err != nil {
			return err
		}
	}
	return nil
}
