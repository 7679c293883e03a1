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

package presentation

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case JSON, YAML:
		return f, nil
	}
	return "", errors.Errorf("unsupported output format %q (want json or yaml)", s)
}

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format Format
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, format Format) *Formatter {
	return &Formatter{writer: writer, format: format}
}

// Format encodes v as one JSON value or YAML document.
func (f *Formatter) Format(v any) error {
	switch f.format {
	case YAML:
		encoder := yaml.NewEncoder(f.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return encoder.Close()
	case JSON, "":
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(v), "encoding json")
	}
	return errors.Errorf("unsupported output format %q", f.format)
}
