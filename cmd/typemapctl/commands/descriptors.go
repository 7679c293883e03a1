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
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"dirpx.dev/typemap"
	"dirpx.dev/typemap/builder"
	"dirpx.dev/typemap/descriptor"
	"dirpx.dev/typemap/internal/presentation"
	"dirpx.dev/typemap/product"
	"dirpx.dev/typemap/watch"
)

// ErrValidationFailed is returned by validate when any source is rejected.
var ErrValidationFailed = errors.New("validation failed")

func (e *env) paths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(e.file.Descriptors) > 0 {
		return e.file.Descriptors, nil
	}
	return nil, errors.New("no descriptor paths given")
}

func validateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Load and apply descriptors into a scratch registry and report errors",
		RunE: func(_ *cobra.Command, args []string) error {
			paths, err := e.paths(args)
			if err != nil {
				return err
			}

			reg := builder.New().BuildRegistry(e.file.Config(), nil)
			if e.file.Builtins {
				if err := product.InitAll(reg); err != nil {
					return err
				}
			}

			var (
				report []presentation.Validation
				failed bool
			)
			for _, p := range paths {
				v := presentation.Validation{Path: p}
				ds, err := descriptor.LoadPaths(p)
				if err == nil {
					err = descriptor.ApplyAll(reg, ds...)
				}
				if err != nil {
					v.Error, failed = err.Error(), true
				} else {
					for _, d := range ds {
						v.Products = append(v.Products, d.Name)
					}
				}
				report = append(report, v)
			}
			if err := reg.Validate(); err != nil {
				report = append(report, presentation.Validation{Path: "(registry)", Error: err.Error()})
				failed = true
			}

			if err := e.write(report); err != nil {
				return err
			}
			if failed {
				return ErrValidationFailed
			}
			return nil
		},
	}
}

func watchCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Apply descriptors and re-apply them on change until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := e.paths(args)
			if err != nil {
				return err
			}

			typemap.Reset()
			typemap.SetConfig(e.file.Config())
			reg := typemap.Registry()
			if e.file.Builtins {
				if err := product.InitAll(reg); err != nil {
					return err
				}
			}

			// Callbacks run on the Run goroutine.
			emit := func(v presentation.Validation) { _ = e.write(v) }
			w := watch.New(reg, paths,
				watch.WithOnApply(func(path string, products []string) {
					emit(presentation.Validation{Path: path, Products: products})
				}),
				watch.WithOnError(func(path string, err error) {
					emit(presentation.Validation{Path: path, Error: err.Error()})
				}),
			)
			return w.Run(cmd.Context())
		},
	}
}
