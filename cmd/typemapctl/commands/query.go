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

package commands

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/typemap"
	"dirpx.dev/typemap/internal/presentation"
	"dirpx.dev/typemap/utils/typeid"
)

func productsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List declared products in declaration order",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := e.setup(true); err != nil {
				return err
			}
			return e.write(presentation.Products(typemap.Registry()))
		},
	}
}

func typesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "types <product>",
		Short: "List a product's types in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := e.setup(true); err != nil {
				return err
			}
			types, err := presentation.Types(typemap.Registry(), args[0])
			if err != nil {
				return err
			}
			return e.write(types)
		},
	}
}

func headersCommand(e *env) *cobra.Command {
	var (
		expand bool
		object string
	)
	cmd := &cobra.Command{
		Use:   "headers <type>",
		Short: "Show the list-view columns of a resource type",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := e.setup(true); err != nil {
				return err
			}
			p, err := typemap.Resolve(args[0])
			if err != nil {
				return err
			}
			cols, err := typemap.HeadersFor(args[0])
			if err != nil {
				return err
			}
			id, _ := typeid.Normalize(args[0])
			h := presentation.Headers{Type: id, Product: p.Name, Columns: presentation.Columns(cols, expand)}
			if object != "" {
				obj, err := readObject(object)
				if err != nil {
					return err
				}
				h.Values = presentation.Values(cols, obj)
			}
			return e.write(h)
		},
	}
	cmd.Flags().BoolVar(&expand, "expand", false, "expand column references into full records")
	cmd.Flags().StringVar(&object, "object", "", "YAML or JSON resource to extract column values from")
	return cmd
}

func resolveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <type>",
		Short: "Show the product owning a resource type",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := e.setup(true); err != nil {
				return err
			}
			p, err := typemap.Resolve(args[0])
			if err != nil {
				return err
			}
			return e.write(presentation.Resolve(args[0], p))
		},
	}
}

// readObject decodes a resource from a YAML (or JSON) file.
func readObject(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading object")
	}
	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return obj, nil
}
