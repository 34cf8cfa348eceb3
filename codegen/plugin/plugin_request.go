// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package plugin

import (
	"fmt"

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/schema"
)

type Request struct {
	Source        string           `json:"source"`
	PackageName   string           `json:"package_name"`
	RuntimeImport string           `json:"runtime_import"`
	BaseName      string           `json:"base_name"`
	Directives    []string         `json:"directives"`
	Messages      []RequestMessage `json:"messages"`
}

type RequestMessage struct {
	Name    string         `json:"name"`
	Line    int            `json:"line"`
	MaxTags uint32         `json:"max_tags"`
	Fields  []RequestField `json:"fields"`
}

type RequestField struct {
	Name string `json:"name"`
	Line int    `json:"line"`
	Tag  uint32 `json:"tag"`

	// Kind is one of "int", "string", "fixed_bytes", "bytes" and "struct".
	Kind     string `json:"kind"`
	Length   uint32 `json:"length,omitempty"`
	Ref      string `json:"ref,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Array    bool   `json:"array,omitempty"`
}

type Response struct {
	Error          string            `json:"error,omitempty"`
	Declarations   *ResponseArtifact `json:"declarations,omitempty"`
	Implementation *ResponseArtifact `json:"implementation,omitempty"`
}

type ResponseArtifact struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// NewRequest flattens a validated schema into its plugin request form.
func NewRequest(file *schema.File, options *codegen.Options) *Request {
	req := &Request{
		Source:        file.Name(),
		PackageName:   options.PackageName(),
		RuntimeImport: options.RuntimeImport(),
		BaseName:      options.BaseName(),
		Directives:    []string{},
		Messages:      []RequestMessage{},
	}
	for _, d := range file.Directives() {
		req.Directives = append(req.Directives, d.Text)
	}
	for msg := range file.Messages() {
		reqMsg := RequestMessage{
			Name:    msg.Name(),
			Line:    msg.Line(),
			MaxTags: msg.MaxTag(),
			Fields:  []RequestField{},
		}
		for field := range msg.Fields() {
			reqField := RequestField{
				Name:     field.Name(),
				Line:     field.Line(),
				Tag:      field.Tag(),
				Optional: field.Optional(),
				Array:    field.Array(),
			}
			switch kind := field.Kind().(type) {
			case schema.Integer:
				reqField.Kind = "int"
			case schema.String:
				reqField.Kind = "string"
			case schema.FixedBytes:
				reqField.Kind = "fixed_bytes"
				reqField.Length = kind.Len
			case schema.VariableBytes:
				reqField.Kind = "bytes"
			case schema.NestedMessage:
				reqField.Kind = "struct"
				reqField.Ref = kind.Ref
			}
			reqMsg.Fields = append(reqMsg.Fields, reqField)
		}
		req.Messages = append(req.Messages, reqMsg)
	}
	return req
}

// Schema rebuilds the schema carried by a request, running the same
// validation as the parser. Plugins call it on the request they receive.
func (req *Request) Schema() (*schema.File, error) {
	file := schema.NewFile(req.Source)
	for _, text := range req.Directives {
		file.AddDirective(text, 0)
	}
	for _, reqMsg := range req.Messages {
		msg := schema.NewMessage(reqMsg.Name, reqMsg.Line)
		if err := file.AddMessage(msg); err != nil {
			return nil, err
		}
		for _, reqField := range reqMsg.Fields {
			kind, err := reqField.kind()
			if err != nil {
				return nil, err
			}
			var mods schema.Modifiers
			if reqField.Optional {
				mods |= schema.Optional
			}
			if reqField.Array {
				mods |= schema.Array
			}
			field := schema.NewField(reqField.Name, kind, reqField.Tag, mods, reqField.Line)
			if err := msg.AddField(field); err != nil {
				return nil, err
			}
		}
	}
	if err := file.Resolve(); err != nil {
		return nil, err
	}
	return file, nil
}

// Options returns the generator options the host resolved for the request.
func (req *Request) Options() []codegen.Option {
	var opts []codegen.Option
	if req.PackageName != "" {
		opts = append(opts, codegen.WithPackageName(req.PackageName))
	}
	if req.RuntimeImport != "" {
		opts = append(opts, codegen.WithRuntimeImport(req.RuntimeImport))
	}
	if req.BaseName != "" {
		opts = append(opts, codegen.WithBaseName(req.BaseName))
	}
	return opts
}

func (f *RequestField) kind() (schema.Kind, error) {
	switch f.Kind {
	case "int":
		return schema.Integer{}, nil
	case "string":
		return schema.String{}, nil
	case "fixed_bytes":
		return schema.FixedBytes{Len: f.Length}, nil
	case "bytes":
		return schema.VariableBytes{}, nil
	case "struct":
		return schema.NestedMessage{Ref: f.Ref}, nil
	}
	return nil, fmt.Errorf("Field '%s' has unknown kind %q", f.Name, f.Kind)
}
