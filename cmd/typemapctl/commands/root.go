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

// Package commands implements the typemapctl command tree.
package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"dirpx.dev/typemap"
	"dirpx.dev/typemap/apis"
	"dirpx.dev/typemap/config"
	"dirpx.dev/typemap/descriptor"
	"dirpx.dev/typemap/internal/presentation"
	"dirpx.dev/typemap/product"
)

// env is the state shared by subcommands once configuration is loaded.
type env struct {
	out     io.Writer
	cfgFile string
	v       *viper.Viper
	file    config.File
}

// Root returns the typemapctl root command writing results to out.
func Root(ctx context.Context, out io.Writer) *cobra.Command {
	e := &env{out: out, v: viper.New()}

	cmd := &cobra.Command{
		Use:           "typemapctl",
		Short:         "Inspect product and resource-type metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(ctx)
			return e.loadConfig()
		},
	}
	cmd.SetOut(out)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&e.cfgFile, "config", "c", "", "config file (default: ./typemap.yaml if present)")
	flags.StringP("output", "o", "", "output format: json or yaml")
	flags.Bool("strict", false, "reject writes that reference undeclared products")
	flags.StringSlice("descriptors", nil, "descriptor files or directories to apply")
	_ = e.v.BindPFlag("output", flags.Lookup("output"))
	_ = e.v.BindPFlag("strict", flags.Lookup("strict"))
	_ = e.v.BindPFlag("descriptors", flags.Lookup("descriptors"))

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	flags.AddGoFlagSet(klogFlags)

	cmd.AddCommand(productsCommand(e))
	cmd.AddCommand(typesCommand(e))
	cmd.AddCommand(headersCommand(e))
	cmd.AddCommand(resolveCommand(e))
	cmd.AddCommand(validateCommand(e))
	cmd.AddCommand(watchCommand(e))

	return cmd
}

// loadConfig reads the config file (if any), the environment and flags.
func (e *env) loadConfig() error {
	e.v.SetEnvPrefix("TYPEMAP")
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()

	if e.cfgFile != "" {
		e.v.SetConfigFile(e.cfgFile)
	} else {
		e.v.SetConfigName("typemap")
		e.v.SetConfigType("yaml")
		e.v.AddConfigPath(".")
	}
	if err := e.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if e.cfgFile != "" || !errors.As(err, &notFound) {
			return errors.Wrap(err, "reading config")
		}
	}

	f, err := config.Load(e.v)
	if err != nil {
		return err
	}
	e.file = f
	klog.V(2).InfoS("typemapctl: configuration loaded", "file", e.v.ConfigFileUsed(), "strict", f.Strict, "weightOrder", f.WeightOrder)
	return nil
}

// inits returns the registration functions the configuration asks for.
func (e *env) inits() ([]typemap.InitFunc, error) {
	var out []typemap.InitFunc
	if e.file.Builtins {
		out = append(out, product.Builtins()...)
	}
	if len(e.file.Descriptors) > 0 {
		ds, err := descriptor.LoadPaths(e.file.Descriptors...)
		if err != nil {
			return nil, err
		}
		out = append(out, func(reg apis.Registry) error {
			return descriptor.ApplyAll(reg, ds...)
		})
	}
	return out, nil
}

// setup installs the configured state into the global typemap and, when
// freeze is set, freezes it through typemap.Init.
func (e *env) setup(freeze bool) error {
	typemap.Reset()
	typemap.SetConfig(e.file.Config())

	inits, err := e.inits()
	if err != nil {
		return err
	}
	if freeze {
		return typemap.Init(inits...)
	}
	reg := typemap.Registry()
	for _, fn := range inits {
		if err := fn(reg); err != nil {
			return err
		}
	}
	return nil
}

func (e *env) write(v any) error {
	f, err := presentation.ParseFormat(e.file.Output)
	if err != nil {
		return err
	}
	return presentation.NewFormatter(e.out, f).Format(v)
}
