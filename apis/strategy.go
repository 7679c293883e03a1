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

// Strategy is a pluggable resolution step. A Resolver chains strategies in
// order (e.g., BasicType -> Predicate) and the first one that handles wins.
type Strategy interface {
	// TryResolve attempts to find the product of typeID in reg.
	// It returns (product, true) if handled; otherwise (Product{}, false) to fall through.
	TryResolve(typeID string, reg Registry) (Product, bool)
}
