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

// Package gogen generates Go message types backed by the evtag runtime.
//
// For a schema "regress.rpc" the declarations artifact "regress.gen.go" holds
// tag constants and struct types, and "regress_impl.gen.go" holds their
// methods. Both are formatted with golang.org/x/tools/imports.
package gogen

import (
	"context"
	"fmt"
	"go/token"
	"path"

	"golang.org/x/tools/imports"

	"go.evrpc.dev/evrpc/codegen"
	"go.evrpc.dev/evrpc/schema"
)

type Generator struct{}

var _ codegen.Generator = (*Generator)(nil)

func New() *Generator {
	return &Generator{}
}

func (*Generator) Language() string {
	return "go"
}

func (*Generator) Generate(
	ctx context.Context,
	file *schema.File,
	opts ...codegen.Option,
) (*codegen.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options := codegen.NewOptions(file, opts...)
	pkg := options.PackageName()
	if pkg == "_" || !token.IsIdentifier(pkg) || token.IsKeyword(pkg) {
		return nil, codegen.ErrPackageName(pkg)
	}
	names, err := assignNames(file)
	if err != nil {
		return nil, err
	}

	gen := &fileGen{
		file:    file,
		options: options,
		names:   names,
	}
	base := options.BaseName()
	declName := base + ".gen.go"
	implName := base + "_impl.gen.go"

	decl, err := formatSource(declName, gen.declarations())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	impl, err := formatSource(implName, gen.implementation())
	if err != nil {
		return nil, err
	}
	return &codegen.Output{
		Declarations:   codegen.Artifact{Name: declName, Content: decl},
		Implementation: codegen.Artifact{Name: implName, Content: impl},
		Warnings:       codegen.ArrayWarnings(file),
	}, nil
}

var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

func formatSource(name string, src []byte) ([]byte, error) {
	out, err := imports.Process(name, src, formatOptions)
	if err != nil {
		return nil, codegen.ErrFormat(name, err)
	}
	return out, nil
}

type fileGen struct {
	file    *schema.File
	options *codegen.Options
	names   *names
}

func (g *fileGen) header(w *codegen.Writer) {
	w.Linef("// Code generated by evrpcgen from %s. DO NOT EDIT.", path.Base(g.file.Name()))
	w.Blank()
	w.Linef("package %s", g.options.PackageName())
}

// runtimeImport renders the import spec of the runtime package, which
// generated code always refers to as "evtag".
func (g *fileGen) runtimeImport() string {
	importPath := g.options.RuntimeImport()
	if path.Base(importPath) == "evtag" {
		return fmt.Sprintf("%q", importPath)
	}
	return fmt.Sprintf("evtag %q", importPath)
}

func (g *fileGen) goType(field *schema.Field) string {
	switch kind := field.Kind().(type) {
	case schema.Integer:
		return "uint32"
	case schema.String:
		return "string"
	case schema.FixedBytes:
		return fmt.Sprintf("[%d]byte", kind.Len)
	case schema.VariableBytes:
		return "[]byte"
	case schema.NestedMessage:
		return "*" + g.names.messages[g.file.Message(kind.Ref)].typeName
	}
	panic(fmt.Sprintf("gogen: unknown kind %T", field.Kind()))
}

func zeroValue(field *schema.Field) string {
	switch kind := field.Kind().(type) {
	case schema.Integer:
		return "0"
	case schema.String:
		return `""`
	case schema.FixedBytes:
		return fmt.Sprintf("[%d]byte{}", kind.Len)
	}
	return "nil"
}
