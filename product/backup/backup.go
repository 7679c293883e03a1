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

// Package backup registers the Backup & Restore product: its resource
// types, their navigation order and the list-view headers of backups and
// restores.
package backup

import (
	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/descriptor"
)

const (
	// Name is the product key.
	Name = "backup"
	// ChartName is the Helm chart that installs the product.
	ChartName = "backup-restore"

	// Group is the API group of the product's resources.
	Group = "resources.cattle.io"

	// TypeBackup is the Backup resource type.
	TypeBackup = Group + ".backup"
	// TypeRestore is the Restore resource type.
	TypeRestore = Group + ".restore"
	// TypeResourceSet is the ResourceSet resource type.
	TypeResourceSet = Group + ".resourceset"
)

// Descriptor returns the product's registration payload.
func Descriptor() descriptor.Product {
	return descriptor.Product{
		Name:        Name,
		GroupSuffix: Group,
		Icon:        "backup",
		Weights: []descriptor.Weight{
			{Type: TypeBackup, Weight: 99, Exact: true},
			{Type: TypeRestore, Weight: 98, Exact: true},
		},
		BasicTypes: []string{TypeBackup, TypeRestore, TypeResourceSet},
		Headers: []descriptor.HeaderSet{
			descriptor.Headers(TypeBackup,
				apis.Ref(apis.RefState),
				apis.Ref("Status"),
				apis.Ref(apis.RefName),
				apis.Col(apis.ColumnSpec{
					Name:      "ResourceSet",
					Label:     "Resource Set",
					Value:     "spec.resourceSetName",
					Formatter: apis.FormatterResourceSetLink,
					Sort:      []apis.SortKey{"spec.resourceSetName"},
				}),
				apis.Ref("Location"),
				apis.Ref("Type"),
				apis.Ref("Latest-Backup"),
				apis.Ref(apis.RefAge),
			),
			descriptor.Headers(TypeRestore,
				apis.Ref(apis.RefState),
				apis.Ref("Status"),
				apis.Ref(apis.RefName),
				apis.Ref("Backup-Source"),
				apis.Ref("Backup-File"),
				apis.Ref(apis.RefAge),
			),
		},
	}
}

// Init registers the product into reg.
func Init(reg apis.Registry) error {
	return descriptor.Apply(reg, Descriptor())
}
